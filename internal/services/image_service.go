package services

import (
	"context"
	"errors"
	"io"

	"shopcart/pkg/cloudinary"

	"go.uber.org/zap"
)

// ImageUploader stores an image and returns where it can be fetched.
type ImageUploader interface {
	Upload(ctx context.Context, r io.Reader, filename string) (cloudinary.Result, error)
}

// UploadedImage is returned to clients after a successful upload.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// ImageService delegates product image uploads.
type ImageService struct {
	uploader ImageUploader
	log      *zap.Logger
}

// NewImageService creates a new ImageService. uploader may be nil when no
// image backend is configured; uploads then fail with ErrInternal.
func NewImageService(uploader ImageUploader, log *zap.Logger) *ImageService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImageService{uploader: uploader, log: log}
}

// Upload stores the image read from r.
func (s *ImageService) Upload(ctx context.Context, r io.Reader, filename string) (*UploadedImage, error) {
	if r == nil {
		return nil, invalidInput("No image file provided")
	}
	if s.uploader == nil {
		return nil, internal("Error uploading image", errImageBackend)
	}
	res, err := s.uploader.Upload(ctx, r, filename)
	if err != nil {
		s.log.Error("image upload failed", zap.String("filename", filename), zap.Error(err))
		return nil, internal("Error uploading image", err)
	}
	return &UploadedImage{URL: res.URL, PublicID: res.PublicID}, nil
}

var errImageBackend = errors.New("image upload is not configured")
