package ports

import "context"

// Upload is an in-memory file taken from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ImageStore persists images and returns their public URL.
type ImageStore interface {
	Upload(ctx context.Context, up *Upload, folder string) (string, error)
	// Delete removes the image behind url. URLs the store does not own are ignored.
	Delete(ctx context.Context, url string) error
	Owns(url string) bool
}

// ImageService validates uploads and stores them under a named folder.
type ImageService interface {
	Store(ctx context.Context, up *Upload, folder string) (string, error)
	Replace(ctx context.Context, oldURL string, up *Upload, folder string) (string, error)
	Remove(ctx context.Context, url string)
}
