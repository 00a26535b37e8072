package utils

import (
	"context"
	"io"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/devsmahesh/e-commerce-backend-sub001/internal/config"
)

// UploadToCloudinary streams a file to Cloudinary and returns its secure URL.
// folder namespaces the asset (e.g. "shop/categories", "shop/banners").
func UploadToCloudinary(cfg *config.Config, file io.Reader, filename, folder string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return "", err
	}

	uniqueFilename := true
	uploadResult, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       filename,
		Folder:         folder,
		UniqueFilename: &uniqueFilename,
	})
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
