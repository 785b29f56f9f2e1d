package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	impl "github.com/simpleoutings/homestay/internal/application/services"
	"github.com/simpleoutings/homestay/internal/core/ports"
	"github.com/simpleoutings/homestay/internal/mocks"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 64)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}, make([]byte, 64)...)
)

func pngUpload(name string) *ports.Upload {
	return &ports.Upload{Filename: name, ContentType: "application/octet-stream", Data: pngBytes}
}

func TestImageService_Validate(t *testing.T) {
	svc := impl.NewImageService(&mocks.ImageStoreMock{}, "root", 100, nil)

	up := pngUpload("a.png")
	require.NoError(t, svc.Validate(up))
	assert.Equal(t, "image/png", up.ContentType, "content type comes from the bytes")

	require.NoError(t, svc.Validate(&ports.Upload{Filename: "b.jpg", Data: jpegBytes}))

	assert.ErrorIs(t, svc.Validate(nil), impl.ErrNoFile)
	assert.ErrorIs(t, svc.Validate(&ports.Upload{Filename: "empty.png"}), impl.ErrNoFile)

	// Declared as an image but the bytes are text.
	fake := &ports.Upload{Filename: "x.png", ContentType: "image/png", Data: []byte("hello, this is not an image")}
	assert.ErrorIs(t, svc.Validate(fake), impl.ErrFileType)

	big := &ports.Upload{Filename: "big.png", Data: append(append([]byte{}, pngBytes...), make([]byte, 200)...)}
	assert.ErrorIs(t, svc.Validate(big), impl.ErrFileTooLarge)
}

func TestImageService_StoreUsesRootFolder(t *testing.T) {
	store := &mocks.ImageStoreMock{}
	svc := impl.NewImageService(store, "homestay-saas", 0, nil)

	url, err := svc.Store(context.Background(), pngUpload("hero.png"), impl.FolderHero)
	require.NoError(t, err)
	assert.Contains(t, url, "homestay-saas/hero/")
	assert.Len(t, store.Uploaded, 1)
}

func TestImageService_StoreFailure(t *testing.T) {
	store := &mocks.ImageStoreMock{UploadErr: errors.New("cdn down")}
	svc := impl.NewImageService(store, "r", 0, nil)

	_, err := svc.Store(context.Background(), pngUpload("a.png"), impl.FolderGallery)
	assert.EqualError(t, err, "cdn down")
}

func TestImageService_ReplaceRemovesOldAfterUpload(t *testing.T) {
	store := &mocks.ImageStoreMock{}
	svc := impl.NewImageService(store, "r", 0, nil)
	old := mocks.ImageStoreBaseURL + "r/rooms/old.png"

	url, err := svc.Replace(context.Background(), old, pngUpload("new.png"), impl.FolderRooms)
	require.NoError(t, err)
	assert.NotEqual(t, old, url)
	assert.Equal(t, []string{old}, store.Deleted)
}

func TestImageService_ReplaceKeepsOldOnFailure(t *testing.T) {
	store := &mocks.ImageStoreMock{}
	svc := impl.NewImageService(store, "r", 0, nil)
	old := mocks.ImageStoreBaseURL + "r/rooms/old.png"

	_, err := svc.Replace(context.Background(), old, &ports.Upload{Filename: "bad", Data: []byte("text")}, impl.FolderRooms)
	require.ErrorIs(t, err, impl.ErrFileType)
	assert.Empty(t, store.Deleted)
}

func TestImageService_RemoveIgnoresForeignAndErrors(t *testing.T) {
	store := &mocks.ImageStoreMock{DeleteErr: errors.New("boom")}
	svc := impl.NewImageService(store, "r", 0, nil)

	svc.Remove(context.Background(), "")
	svc.Remove(context.Background(), "/uploads/local.png")
	assert.Empty(t, store.Deleted)

	svc.Remove(context.Background(), mocks.ImageStoreBaseURL+"r/gallery/1.png")
	assert.Len(t, store.Deleted, 1)
}
