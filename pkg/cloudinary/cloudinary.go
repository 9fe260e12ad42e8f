package cloudinary

import (
	"context"
	"fmt"
	"io"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// Config holds Cloudinary account credentials.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Result describes an uploaded asset.
type Result struct {
	URL      string
	PublicID string
}

// Client uploads images to Cloudinary.
type Client struct {
	cld *cld.Cloudinary
}

// NewClient creates a new Cloudinary client that returns https URLs.
func NewClient(cfg Config) (*Client, error) {
	c, err := cld.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	c.Config.URL.Secure = true
	zap.S().Infof("Cloudinary client configured for cloud %s", cfg.CloudName)
	return &Client{cld: c}, nil
}

// Upload sends the image read from r. filename is used only for errors.
func (c *Client) Upload(ctx context.Context, r io.Reader, filename string) (Result, error) {
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		ResourceType: "image",
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload %s: %w", filename, err)
	}
	if resp.Error.Message != "" {
		return Result{}, fmt.Errorf("failed to upload %s: %s", filename, resp.Error.Message)
	}
	return Result{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}
