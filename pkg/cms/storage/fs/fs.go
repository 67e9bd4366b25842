package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// Backend is a filesystem implementation of the cms.BlobStore interface.
// Objects live under BaseDir and are referenced by server-relative paths
// such as "/uploads/<name>".
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing files
	URLPrefix string // Prefix prepended to object keys in references (default "/")
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	prefix := config.URLPrefix
	if prefix == "" {
		prefix = "/"
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: prefix,
	}, nil
}

// Upload stores the object under the given key.
func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Download opens the object for reading.
func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	filePath, err := b.path(objectKey)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filePath)
	if os.IsNotExist(err) {
		return nil, cms.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete removes the object from the filesystem.
func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	filePath, err := b.path(objectKey)
	if err != nil {
		return err
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return cms.ErrBlobNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// Reference returns the server-relative path for an object key.
func (b *Backend) Reference(objectKey string) string {
	return b.urlPrefix + objectKey
}

// ObjectKey reports the key behind a reference produced by this backend.
// Only keys under uploads/ are owned; other absolute paths are external.
func (b *Backend) ObjectKey(reference string) (string, bool) {
	key, ok := strings.CutPrefix(reference, b.urlPrefix)
	if !ok || !strings.HasPrefix(key, "uploads/") {
		return "", false
	}
	return key, true
}

// UploadURL is unsupported: filesystem uploads go through the server.
func (b *Backend) UploadURL(ctx context.Context, objectKey, contentType string) (string, error) {
	return "", errors.New("direct upload required for filesystem backend")
}

// path resolves an object key under baseDir, rejecting traversal outside it.
func (b *Backend) path(objectKey string) (string, error) {
	filePath := filepath.Join(b.baseDir, filepath.FromSlash(objectKey))
	if rel, err := filepath.Rel(b.baseDir, filePath); err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", objectKey)
	}
	return filePath, nil
}
