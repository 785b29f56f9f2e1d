package images

import (
	"bytes"
	"context"
	"crypto/sha1" //nolint:gosec // Cloudinary request signatures are defined as SHA-1.
	"encoding/hex"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/simpleoutings/homestay/internal/core/ports"
)

// uploadTransformation asks Cloudinary to store an automatically optimised
// rendition: good automatic quality and the best format per browser.
const uploadTransformation = "q_auto:good,f_auto"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// CloudinaryStore uploads images through Cloudinary's signed REST API.
type CloudinaryStore struct {
	client *resty.Client
	// uploads never retries: the multipart file reader is consumed by the
	// first attempt.
	uploads   *resty.Client
	cloudName string
	apiKey    string
	apiSecret string
	logger    *logrus.Logger
	now       func() time.Time
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	// BaseURL defaults to https://api.cloudinary.com/v1_1
	BaseURL string
}

func NewCloudinaryStore(cfg CloudinaryConfig, logger *logrus.Logger) *CloudinaryStore {
	base := cfg.BaseURL
	if base == "" {
		base = "https://api.cloudinary.com/v1_1"
	}
	base = strings.TrimRight(base, "/") + "/" + cfg.CloudName

	return &CloudinaryStore{
		client:    newCloudinaryClient(base, 2),
		uploads:   newCloudinaryClient(base, 0),
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		logger:    logger,
		now:       time.Now,
	}
}

func newCloudinaryClient(baseURL string, retries int) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60*time.Second).
		SetRetryCount(retries).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")
}

var _ ports.ImageStore = (*CloudinaryStore)(nil)

type cloudinaryUploadResponse struct {
	PublicID  string `json:"public_id"`
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type cloudinaryDestroyResponse struct {
	Result string `json:"result"`
}

func (s *CloudinaryStore) Upload(ctx context.Context, up *ports.Upload, folder string) (string, error) {
	params := map[string]string{
		"folder":         folder,
		"timestamp":      strconv.FormatInt(s.now().Unix(), 10),
		"transformation": uploadTransformation,
	}
	form := s.signed(params)

	var out cloudinaryUploadResponse
	resp, err := s.uploads.R().
		SetContext(ctx).
		SetFormData(form).
		SetFileReader("file", up.Filename, bytes.NewReader(up.Data)).
		SetResult(&out).
		SetError(&out).
		Post("/image/upload")
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.IsError() || out.SecureURL == "" {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", fmt.Errorf("cloudinary upload failed: %s", msg)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"public_id": out.PublicID, "folder": folder}).Info("cloudinary: image uploaded")
	}
	return out.SecureURL, nil
}

// Delete destroys the asset behind imageURL. Assets already gone count as deleted.
func (s *CloudinaryStore) Delete(ctx context.Context, imageURL string) error {
	if !s.Owns(imageURL) {
		return nil
	}
	publicID, err := PublicID(imageURL)
	if err != nil {
		return err
	}

	var out cloudinaryDestroyResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(s.signed(map[string]string{
			"public_id": publicID,
			"timestamp": strconv.FormatInt(s.now().Unix(), 10),
		})).
		SetResult(&out).
		Post("/image/destroy")
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if resp.IsError() || (out.Result != "ok" && out.Result != "not found") {
		return fmt.Errorf("cloudinary destroy failed: %s %s", resp.Status(), out.Result)
	}
	return nil
}

// Owns reports whether imageURL is served by Cloudinary.
func (s *CloudinaryStore) Owns(imageURL string) bool {
	u, err := url.Parse(imageURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return host == "cloudinary.com" || strings.HasSuffix(host, ".cloudinary.com")
}

// signed adds api_key and the request signature to params.
func (s *CloudinaryStore) signed(params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+2)
	for k, v := range params {
		out[k] = v
	}
	out["signature"] = Sign(params, s.apiSecret)
	out["api_key"] = s.apiKey
	return out
}

// Sign computes a Cloudinary API signature: the SHA-1 of the
// alphabetically sorted key=value pairs joined by '&', followed by the secret.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, len(keys))
	for i, k := range keys {
		pairs[i] = k + "=" + params[k]
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret)) //nolint:gosec
	return hex.EncodeToString(sum[:])
}

// PublicID extracts the asset id from a delivery URL: the path after
// "/upload/" without the version segment and the file extension.
func PublicID(imageURL string) (string, error) {
	_, rest, ok := strings.Cut(imageURL, "/upload/")
	if !ok || rest == "" {
		return "", fmt.Errorf("could not parse Cloudinary URL %q", imageURL)
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	var parts []string
	for _, p := range strings.Split(rest, "/") {
		if p == "" || versionSegment.MatchString(p) {
			continue
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("could not parse Cloudinary URL %q", imageURL)
	}
	id := strings.Join(parts, "/")
	return strings.TrimSuffix(id, path.Ext(id)), nil
}
