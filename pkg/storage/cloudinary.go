package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryUploader uploads images to Cloudinary and returns their
// secure delivery URLs.
type CloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloudinary client: %w", err)
	}
	return &CloudinaryUploader{cld: cld, folder: folder}, nil
}

func (u *CloudinaryUploader) Upload(ctx context.Context, filename string, data io.Reader) (string, error) {
	result, err := u.cld.Upload.Upload(ctx, data, uploader.UploadParams{
		Folder:       u.folder,
		ResourceType: "auto",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload %s: %s", filename, result.Error.Message)
	}
	if result.SecureURL == "" {
		return "", errors.New("upload returned no URL")
	}

	return result.SecureURL, nil
}
