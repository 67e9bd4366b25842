package cms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// service implements the Service interface
type service struct {
	repository Repository
	mediaStore BlobStore
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the media blob store for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.mediaStore = store
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.mediaStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	return s, nil
}

// MediaStore exposes the configured blob store for serving and presigning.
func (s *service) MediaStore() BlobStore {
	return s.mediaStore
}

// NewUploadKey validates the filename extension against the allow-list
// and returns a fresh collision-resistant object key for it.
func (s *service) NewUploadKey(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := AllowedExtensions[ext]; !ok {
		return "", ErrInvalidExtension
	}
	return fmt.Sprintf("uploads/%x.%s", uuid.New(), ext), nil
}

// Post operations

func (s *service) ListPosts(ctx context.Context, includeHidden bool) ([]*Post, error) {
	posts, err := s.repository.ListPosts(ctx, !includeHidden)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (s *service) GetPost(ctx context.Context, id int64) (*Post, error) {
	return s.repository.GetPost(ctx, id)
}

func (s *service) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	mediaType := req.MediaType
	mediaHref := req.MediaHref

	var storedKey string
	if req.File != nil {
		key, err := s.NewUploadKey(req.File.Filename)
		if err != nil {
			return nil, err
		}
		if err := s.mediaStore.Upload(ctx, key, req.File.Reader); err != nil {
			return nil, &StorageError{Key: key, Op: "upload", Err: err}
		}
		storedKey = key
		mediaHref = s.mediaStore.Reference(key)
		if mediaType == "" || mediaType == MediaTypeNone {
			ext := strings.TrimPrefix(filepath.Ext(key), ".")
			mediaType = AllowedExtensions[ext]
		}
	}
	if mediaType == "" {
		mediaType = MediaTypeNone
	}

	if err := validatePost(req.Title, req.Blurb, req.Writeup, mediaType, mediaHref); err != nil {
		// Never leave an orphaned blob behind a rejected request.
		if storedKey != "" {
			s.deleteBlob(ctx, storedKey)
		}
		return nil, err
	}

	post := &Post{
		Title:     req.Title,
		Blurb:     req.Blurb,
		Writeup:   req.Writeup,
		MediaType: mediaType,
		MediaHref: mediaHref,
		IsVisible: true,
	}
	if req.IsVisible != nil {
		post.IsVisible = *req.IsVisible
	}

	if err := s.repository.CreatePost(ctx, post); err != nil {
		if storedKey != "" {
			s.deleteBlob(ctx, storedKey)
		}
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

func (s *service) UpdatePost(ctx context.Context, id int64, req UpdatePostRequest) (*Post, error) {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	oldHref := post.MediaHref

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Blurb != nil {
		post.Blurb = *req.Blurb
	}
	if req.Writeup != nil {
		post.Writeup = *req.Writeup
	}
	if req.MediaType != nil {
		post.MediaType = *req.MediaType
	}
	if req.MediaHref != nil {
		post.MediaHref = *req.MediaHref
	}
	if req.IsVisible != nil {
		post.IsVisible = *req.IsVisible
	}

	if err := s.repository.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	// The row update must commit before the old blob goes away; a failed
	// update with the blob already deleted would dangle the only reference.
	if oldHref != "" && oldHref != post.MediaHref {
		s.deleteOwnedReference(ctx, oldHref)
	}

	return post, nil
}

func (s *service) DeletePost(ctx context.Context, id int64) error {
	post, err := s.repository.GetPost(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repository.DeletePost(ctx, id); err != nil {
		return err
	}

	if post.MediaHref != "" {
		s.deleteOwnedReference(ctx, post.MediaHref)
	}

	return nil
}

// About operations

func (s *service) GetAbout(ctx context.Context) (*About, error) {
	return s.repository.GetAbout(ctx)
}

func (s *service) UpdateAbout(ctx context.Context, header, body string) (*About, error) {
	if header == "" || body == "" {
		return nil, ErrMissingFields
	}
	return s.repository.UpdateAbout(ctx, header, body)
}

// validatePost enforces the create rule: a title plus at least one of
// blurb, writeup, or a typed media reference.
func validatePost(title, blurb, writeup string, mediaType MediaType, mediaHref string) error {
	if title == "" {
		return ErrMissingFields
	}
	if blurb != "" || writeup != "" {
		return nil
	}
	if mediaType != MediaTypeNone && mediaHref != "" {
		return nil
	}
	return ErrMissingFields
}

// deleteOwnedReference removes the blob behind a reference when it was
// produced by our store. External links are left alone.
func (s *service) deleteOwnedReference(ctx context.Context, reference string) {
	key, ok := s.mediaStore.ObjectKey(reference)
	if !ok {
		return
	}
	s.deleteBlob(ctx, key)
}

// deleteBlob is best effort: failures are logged, never propagated, so
// that the primary database mutation always wins.
func (s *service) deleteBlob(ctx context.Context, key string) {
	if err := s.mediaStore.Delete(ctx, key); err != nil && !errors.Is(err, ErrBlobNotFound) {
		slog.Warn("failed to delete media blob", "key", key, "err", err)
	}
}
