package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix under which stored images are served.
const PublicPrefix = "/media/"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// FileStore persists uploaded place images on local disk.
type FileStore struct {
	dir string
}

// NewFileStore ensures the upload directory exists.
func NewFileStore(dir string) (*FileStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: abs}, nil
}

// Dir returns the absolute upload directory, for static file serving.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// SavePlaceImage writes the image and returns its public URL. Only
// jpeg/png/webp content types are accepted.
func (fs *FileStore) SavePlaceImage(contentType string, r io.Reader) (string, error) {
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", contentType)
	}

	name := uuid.NewString() + ext
	target := filepath.Join(fs.dir, name)

	f, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return PublicPrefix + name, nil
}

// DeleteByPublicURL removes a previously stored image. Unknown URLs are
// ignored so callers can pass whatever the record holds.
func (fs *FileStore) DeleteByPublicURL(imageURL string) {
	if !strings.HasPrefix(imageURL, PublicPrefix) {
		return
	}
	name := filepath.Base(strings.TrimPrefix(imageURL, PublicPrefix))
	_ = os.Remove(filepath.Join(fs.dir, name))
}
