package images

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simpleoutings/homestay/configs"
	"github.com/simpleoutings/homestay/internal/core/domain"
	"github.com/simpleoutings/homestay/internal/core/ports"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	bodies  [][]byte
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, _ := io.ReadAll(in.Body)
	f.puts = append(f.puts, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

var s3cfg = S3Config{Bucket: "homestay-media", PublicBaseURL: "https://media.simpleoutings.com/"}

func TestS3Store_Upload(t *testing.T) {
	fake := &fakeS3{}
	s := NewS3Store(fake, s3cfg, nil)

	url, err := s.Upload(context.Background(), &ports.Upload{Filename: "hero.jpeg", ContentType: "image/jpeg", Data: []byte("jpg")}, "homestay/hero")
	require.NoError(t, err)
	require.Len(t, fake.puts, 1)

	key := aws.ToString(fake.puts[0].Key)
	assert.True(t, strings.HasPrefix(key, "homestay/hero/"), key)
	assert.True(t, strings.HasSuffix(key, ".jpg"), key)
	assert.Equal(t, "homestay-media", aws.ToString(fake.puts[0].Bucket))
	assert.Equal(t, "image/jpeg", aws.ToString(fake.puts[0].ContentType))
	assert.Equal(t, []byte("jpg"), fake.bodies[0])
	assert.Equal(t, "https://media.simpleoutings.com/"+key, url)
	assert.True(t, s.Owns(url))
}

func TestS3Store_UploadError(t *testing.T) {
	s := NewS3Store(&fakeS3{err: errors.New("access denied")}, s3cfg, nil)

	_, err := s.Upload(context.Background(), &ports.Upload{Filename: "a.png", ContentType: "image/png"}, "homestay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3Store_Delete(t *testing.T) {
	fake := &fakeS3{}
	s := NewS3Store(fake, s3cfg, nil)

	require.NoError(t, s.Delete(context.Background(), "https://media.simpleoutings.com/homestay/rooms/r1.png"))
	require.NoError(t, s.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/x.png"))
	require.Len(t, fake.deletes, 1)
	assert.Equal(t, "homestay/rooms/r1.png", aws.ToString(fake.deletes[0].Key))
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".png", extensionFor(&ports.Upload{ContentType: "image/png", Filename: "a.jpg"}))
	assert.Equal(t, ".webp", extensionFor(&ports.Upload{ContentType: "image/webp"}))
	assert.Equal(t, ".gif", extensionFor(&ports.Upload{ContentType: "image/gif", Filename: "anim.gif"}))
}

func TestNewStore(t *testing.T) {
	disabled := NewStore(&configs.ImageConfig{Backend: "cloudinary", CloudinaryCloudName: "demo"}, nil)
	_, err := disabled.Upload(context.Background(), &ports.Upload{}, "x")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
	assert.NoError(t, disabled.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/x.png"))
	assert.False(t, disabled.Owns("https://res.cloudinary.com/demo/image/upload/v1/x.png"))

	cl := NewStore(&configs.ImageConfig{CloudinaryCloudName: "demo", CloudinaryAPIKey: "k", CloudinaryAPISecret: "s"}, nil)
	assert.IsType(t, &CloudinaryStore{}, cl)

	s3store := NewStore(&configs.ImageConfig{
		Backend: "s3", S3Region: "ap-southeast-1", S3Bucket: "b", S3AccessKey: "k", S3SecretKey: "s",
		S3PublicBaseURL: "https://media.example.com",
	}, nil)
	assert.IsType(t, &S3Store{}, s3store)

	partial := NewStore(&configs.ImageConfig{Backend: "s3", S3Bucket: "b"}, nil)
	assert.False(t, partial.Owns("https://media.example.com/a.png"))
}
