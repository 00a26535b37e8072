package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidSlug(t *testing.T) {
	valid := []string{"electronics", "home-garden", "tv-4k", "a", "123"}
	for _, s := range valid {
		assert.True(t, IsValidSlug(s), s)
	}

	invalid := []string{"", "Electronics", "home_garden", "-leading", "trailing-", "double--hyphen", "with space", "café"}
	for _, s := range invalid {
		assert.False(t, IsValidSlug(s), s)
	}
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "home-garden", Slugify("Home & Garden"))
	assert.Equal(t, "tv-4k", Slugify("  TV 4K  "))
	assert.Equal(t, "electronics", Slugify("Electronics"))
	assert.Equal(t, "", Slugify("!!!"))

	// Every slugified name is itself a valid slug, except the empty case.
	for _, name := range []string{"Home & Garden", "TV/Audio", "Kids' Toys"} {
		assert.True(t, IsValidSlug(Slugify(name)), name)
	}
}
