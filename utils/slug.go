package utils

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// IsValidSlug reports whether s is lowercase, hyphen-separated and URL-safe.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a slug from a display name: lowercased, runs of
// non-alphanumerics collapsed to single hyphens.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
