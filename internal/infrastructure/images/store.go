// Package images provides the image CDN backends behind ports.ImageStore.
package images

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// ErrNotConfigured is returned by uploads when no backend credentials are set.
var ErrNotConfigured = domain.NotConfigured("Image upload service not configured. Please contact administrator.")

// disabledStore refuses uploads and ignores deletes.
type disabledStore struct{}

func (disabledStore) Upload(context.Context, *ports.Upload, string) (string, error) {
	return "", ErrNotConfigured
}

func (disabledStore) Delete(context.Context, string) error { return nil }

func (disabledStore) Owns(string) bool { return false }

// NewStore selects the configured backend, falling back to a disabled store
// when its credentials are missing.
func NewStore(cfg *configs.ImageConfig, logger *logrus.Logger) ports.ImageStore {
	switch cfg.Backend {
	case "s3":
		if cfg.S3Bucket != "" && cfg.S3AccessKey != "" && cfg.S3SecretKey != "" && cfg.S3PublicBaseURL != "" {
			s3cfg := S3Config{
				Endpoint:      cfg.S3Endpoint,
				Region:        cfg.S3Region,
				Bucket:        cfg.S3Bucket,
				AccessKey:     cfg.S3AccessKey,
				SecretKey:     cfg.S3SecretKey,
				PublicBaseURL: cfg.S3PublicBaseURL,
			}
			return NewS3Store(NewS3Client(s3cfg), s3cfg, logger)
		}
	default:
		if cfg.CloudinaryCloudName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
			return NewCloudinaryStore(CloudinaryConfig{
				CloudName: cfg.CloudinaryCloudName,
				APIKey:    cfg.CloudinaryAPIKey,
				APISecret: cfg.CloudinaryAPISecret,
				BaseURL:   cfg.CloudinaryBaseURL,
			}, logger)
		}
	}
	if logger != nil {
		logger.WithField("backend", cfg.Backend).Warn("image store credentials not configured; uploads disabled")
	}
	return disabledStore{}
}
