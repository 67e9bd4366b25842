package cms

import (
	"context"
	"io"
)

// Repository defines the persistence contract for posts and the about
// singleton. Implementations return typed values so that row-to-object
// mapping lives in exactly one place per backend.
type Repository interface {
	// CreatePost inserts a post and fills in its ID and Timestamp.
	CreatePost(ctx context.Context, post *Post) error

	// GetPost returns a post by id, or ErrPostNotFound.
	GetPost(ctx context.Context, id int64) (*Post, error)

	// ListPosts returns posts ordered by timestamp descending. When
	// onlyVisible is set, hidden posts are excluded.
	ListPosts(ctx context.Context, onlyVisible bool) ([]*Post, error)

	// UpdatePost overwrites the full row, or returns ErrPostNotFound.
	UpdatePost(ctx context.Context, post *Post) error

	// DeletePost removes a post, or returns ErrPostNotFound.
	DeletePost(ctx context.Context, id int64) error

	// GetAbout returns the singleton about row, or ErrAboutNotFound.
	GetAbout(ctx context.Context) (*About, error)

	// UpdateAbout overwrites header and body on the singleton row and
	// refreshes last_updated.
	UpdateAbout(ctx context.Context, header, body string) (*About, error)
}

// BlobStore defines the media storage contract. Object keys look like
// "uploads/<32 hex>.<ext>"; references are the publicly resolvable form
// of a key (a URL for remote stores, a path for local ones).
type BlobStore interface {
	// Upload stores the object under the given key.
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// Download returns a reader for the object, or ErrBlobNotFound.
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing object returns
	// ErrBlobNotFound.
	Delete(ctx context.Context, objectKey string) error

	// Reference returns the public reference for an object key.
	Reference(objectKey string) string

	// ObjectKey is the inverse of Reference. It reports false when the
	// reference was not produced by this store.
	ObjectKey(reference string) (string, bool)

	// UploadURL returns a URL a client can PUT the object to directly.
	// Stores without presign support return an error.
	UploadURL(ctx context.Context, objectKey, contentType string) (string, error)
}
