package services

import (
	"context"
	"path"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

// Image folders under the configured root.
const (
	FolderLogos   = "logos"
	FolderHero    = "hero"
	FolderAbout   = "about"
	FolderRooms   = "rooms"
	FolderGallery = "gallery"
)

var (
	ErrNoFile        = domain.Invalid("No file provided")
	ErrFileType      = domain.Invalid("Invalid file type. Only JPEG, PNG, and WebP are allowed.")
	ErrFileTooLarge  = domain.Invalid("File too large. Maximum size is 5MB.")
	allowedImageMIME = []string{"image/jpeg", "image/png", "image/webp"}
)

type ImageService struct {
	store      ports.ImageStore
	rootFolder string
	maxBytes   int64
	logger     *logrus.Logger
}

func NewImageService(store ports.ImageStore, rootFolder string, maxBytes int64, logger *logrus.Logger) *ImageService {
	if maxBytes <= 0 {
		maxBytes = 5 * 1024 * 1024
	}
	return &ImageService{store: store, rootFolder: rootFolder, maxBytes: maxBytes, logger: logger}
}

var _ ports.ImageService = (*ImageService)(nil)

// Validate sniffs the content type from the bytes; the client-declared type is ignored.
func (s *ImageService) Validate(up *ports.Upload) error {
	if up == nil || len(up.Data) == 0 {
		return ErrNoFile
	}
	mt := mimetype.Detect(up.Data)
	if !mimetype.EqualsAny(mt.String(), allowedImageMIME...) {
		return ErrFileType
	}
	if int64(len(up.Data)) > s.maxBytes {
		return ErrFileTooLarge
	}
	up.ContentType = mt.String()
	return nil
}

// Store validates up and uploads it under rootFolder/folder.
func (s *ImageService) Store(ctx context.Context, up *ports.Upload, folder string) (string, error) {
	if err := s.Validate(up); err != nil {
		return "", err
	}
	url, err := s.store.Upload(ctx, up, path.Join(s.rootFolder, folder))
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"folder": folder, "filename": up.Filename}).WithError(err).Error("image upload failed")
		}
		return "", err
	}
	return url, nil
}

// Replace uploads up and then removes oldURL. The old image is deleted only
// after the new one is stored.
func (s *ImageService) Replace(ctx context.Context, oldURL string, up *ports.Upload, folder string) (string, error) {
	url, err := s.Store(ctx, up, folder)
	if err != nil {
		return "", err
	}
	if oldURL != "" && oldURL != url {
		s.Remove(ctx, oldURL)
	}
	return url, nil
}

// Remove deletes url from the store. Failures are logged and ignored.
func (s *ImageService) Remove(ctx context.Context, url string) {
	if url == "" || !s.store.Owns(url) {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"url": url}).WithError(err).Warn("failed to delete image")
	}
}
