package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements cms.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

// Migrate creates the posts and about tables idempotently and seeds the
// about singleton with an empty row when the table is empty.
func (r *Repository) Migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			id SERIAL PRIMARY KEY,
			title TEXT NOT NULL,
			blurb TEXT NOT NULL DEFAULT '',
			writeup TEXT NOT NULL DEFAULT '',
			media_type TEXT NOT NULL DEFAULT 'none',
			media_href TEXT NOT NULL DEFAULT '',
			timestamp TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_visible BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE INDEX IF NOT EXISTS posts_timestamp_idx ON posts (timestamp DESC)`,
		`CREATE INDEX IF NOT EXISTS posts_visibility_idx ON posts (is_visible)`,
		`CREATE TABLE IF NOT EXISTS about (
			id SERIAL PRIMARY KEY,
			header TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			last_updated TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM about`).Scan(&count); err != nil {
		return fmt.Errorf("migrate: count about rows: %w", err)
	}
	if count == 0 {
		if _, err := r.db.Exec(ctx, `INSERT INTO about (header, body) VALUES ('', '')`); err != nil {
			return fmt.Errorf("migrate: seed about row: %w", err)
		}
	}

	return nil
}

// Post operations

func (r *Repository) CreatePost(ctx context.Context, post *cms.Post) error {
	query := `
		INSERT INTO posts (title, blurb, writeup, media_type, media_href, is_visible)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, timestamp`

	err := r.db.QueryRow(ctx, query,
		post.Title, post.Blurb, post.Writeup,
		post.MediaType, post.MediaHref, post.IsVisible).
		Scan(&post.ID, &post.Timestamp)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	return nil
}

func (r *Repository) GetPost(ctx context.Context, id int64) (*cms.Post, error) {
	query := `
		SELECT id, title, blurb, writeup, media_type, media_href, timestamp, is_visible
		FROM posts WHERE id = $1`

	var post cms.Post
	err := r.db.QueryRow(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Blurb, &post.Writeup,
		&post.MediaType, &post.MediaHref, &post.Timestamp, &post.IsVisible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrPostNotFound
		}
		return nil, fmt.Errorf("select post: %w", err)
	}

	return &post, nil
}

func (r *Repository) ListPosts(ctx context.Context, onlyVisible bool) ([]*cms.Post, error) {
	query := `
		SELECT id, title, blurb, writeup, media_type, media_href, timestamp, is_visible
		FROM posts`
	if onlyVisible {
		query += ` WHERE is_visible`
	}
	query += ` ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer rows.Close()

	var posts []*cms.Post
	for rows.Next() {
		var post cms.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Blurb, &post.Writeup,
			&post.MediaType, &post.MediaHref, &post.Timestamp, &post.IsVisible); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

func (r *Repository) UpdatePost(ctx context.Context, post *cms.Post) error {
	query := `
		UPDATE posts SET
			title = $2, blurb = $3, writeup = $4,
			media_type = $5, media_href = $6, is_visible = $7
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query,
		post.ID, post.Title, post.Blurb, post.Writeup,
		post.MediaType, post.MediaHref, post.IsVisible)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrPostNotFound
	}

	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return cms.ErrPostNotFound
	}

	return nil
}

// About operations

func (r *Repository) GetAbout(ctx context.Context) (*cms.About, error) {
	query := `SELECT id, header, body, last_updated FROM about ORDER BY id LIMIT 1`

	var about cms.About
	err := r.db.QueryRow(ctx, query).Scan(
		&about.ID, &about.Header, &about.Body, &about.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrAboutNotFound
		}
		return nil, fmt.Errorf("select about: %w", err)
	}

	return &about, nil
}

func (r *Repository) UpdateAbout(ctx context.Context, header, body string) (*cms.About, error) {
	query := `
		UPDATE about SET header = $1, body = $2, last_updated = CURRENT_TIMESTAMP
		WHERE id = (SELECT id FROM about ORDER BY id LIMIT 1)
		RETURNING id, header, body, last_updated`

	var about cms.About
	err := r.db.QueryRow(ctx, query, header, body).Scan(
		&about.ID, &about.Header, &about.Body, &about.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cms.ErrAboutNotFound
		}
		return nil, fmt.Errorf("update about: %w", err)
	}

	return &about, nil
}
