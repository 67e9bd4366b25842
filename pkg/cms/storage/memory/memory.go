package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// Backend is an in-memory implementation of the cms.BlobStore interface,
// used by tests. References mirror the filesystem backend ("/<key>").
type Backend struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		objects: make(map[string][]byte),
	}
}

func (b *Backend) Upload(ctx context.Context, objectKey string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[objectKey] = data
	return nil
}

func (b *Backend) Download(ctx context.Context, objectKey string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.objects[objectKey]
	if !exists {
		return nil, cms.ErrBlobNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (b *Backend) Delete(ctx context.Context, objectKey string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.objects[objectKey]; !exists {
		return cms.ErrBlobNotFound
	}
	delete(b.objects, objectKey)
	return nil
}

func (b *Backend) Reference(objectKey string) string {
	return "/" + objectKey
}

func (b *Backend) ObjectKey(reference string) (string, bool) {
	key, ok := strings.CutPrefix(reference, "/")
	if !ok || !strings.HasPrefix(key, "uploads/") {
		return "", false
	}
	return key, true
}

func (b *Backend) UploadURL(ctx context.Context, objectKey, contentType string) (string, error) {
	return "", errors.New("direct upload required for memory backend")
}

// Exists reports whether an object is currently stored. Test helper.
func (b *Backend) Exists(objectKey string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, exists := b.objects[objectKey]
	return exists
}

// Keys returns the keys of all stored objects. Test helper.
func (b *Backend) Keys() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	return keys
}
