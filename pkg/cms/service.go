package cms

import "context"

// Service defines the main interface for the cms library.
type Service interface {
	// Post operations
	ListPosts(ctx context.Context, includeHidden bool) ([]*Post, error)
	GetPost(ctx context.Context, id int64) (*Post, error)
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)
	UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error)
	DeletePost(ctx context.Context, id int64) error

	// About operations
	GetAbout(ctx context.Context) (*About, error)
	UpdateAbout(ctx context.Context, header, body string) (*About, error)

	// Media operations
	NewUploadKey(filename string) (string, error)
	MediaStore() BlobStore
}
