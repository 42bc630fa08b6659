package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"pinboard/pinboard/config"

	"github.com/google/uuid"
)

// ImageStore is the upload adapter: it takes an image stream and returns a
// durable public URL for it.
type ImageStore interface {
	Upload(ctx context.Context, ownerID uuid.UUID, filename, contentType string, body io.Reader, size int64) (string, error)
}

// NewImageStore builds the store selected by cfg.UploadDriver.
func NewImageStore(ctx context.Context, cfg config.Config) (ImageStore, error) {
	switch cfg.UploadDriver {
	case "", "minio":
		return NewMinIOClient(ctx, cfg)
	case "s3":
		return NewS3Client(ctx, cfg)
	case "memory":
		return NewMemoryStore(cfg.PublicURL), nil
	default:
		return nil, fmt.Errorf("unknown upload driver %q", cfg.UploadDriver)
	}
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ObjectKey places every upload under images/<owner>/ with a random prefix so
// two uploads of the same file never collide.
func ObjectKey(ownerID uuid.UUID, filename string) string {
	name := unsafeChars.ReplaceAllString(path.Base(filename), "_")
	name = strings.Trim(name, "._")
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("images/%s/%s_%s", ownerID, uuid.NewString(), name)
}

// PublicURL renders the public template for key. Without a template the key
// is returned as a relative path.
func PublicURL(template, key string) string {
	var raw string
	if template == "" {
		raw = "/" + key
	} else {
		raw = fmt.Sprintf(template, key)
	}
	return CleanURL(raw)
}

func CleanURL(urlStr string) string {
	urlStr = strings.ReplaceAll(urlStr, " ", "%20")
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return urlStr
	}
	return parsedURL.String()
}
