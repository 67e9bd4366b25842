package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// Repository is an in-memory implementation of cms.Repository, used by
// tests and local development.
type Repository struct {
	mu     sync.RWMutex
	nextID int64
	posts  map[int64]*cms.Post
	about  cms.About
}

// New creates a new in-memory repository with the about singleton seeded.
func New() *Repository {
	return &Repository{
		nextID: 1,
		posts:  make(map[int64]*cms.Post),
		about: cms.About{
			ID:          1,
			LastUpdated: time.Now().UTC(),
		},
	}
}

func (r *Repository) CreatePost(ctx context.Context, post *cms.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post.ID = r.nextID
	r.nextID++
	post.Timestamp = time.Now().UTC()

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*cms.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, cms.ErrPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *Repository) ListPosts(ctx context.Context, onlyVisible bool) ([]*cms.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*cms.Post, 0, len(r.posts))
	for _, post := range r.posts {
		if onlyVisible && !post.IsVisible {
			continue
		}
		copied := *post
		posts = append(posts, &copied)
	}

	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Timestamp.Equal(posts[j].Timestamp) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})

	return posts, nil
}

func (r *Repository) UpdatePost(ctx context.Context, post *cms.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[post.ID]
	if !ok {
		return cms.ErrPostNotFound
	}

	// Timestamp is immutable.
	post.Timestamp = existing.Timestamp
	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return cms.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *Repository) GetAbout(ctx context.Context) (*cms.About, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	about := r.about
	return &about, nil
}

func (r *Repository) UpdateAbout(ctx context.Context, header, body string) (*cms.About, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.about.Header = header
	r.about.Body = body
	r.about.LastUpdated = time.Now().UTC()

	about := r.about
	return &about, nil
}
