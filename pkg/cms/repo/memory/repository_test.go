package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackrabbitrecords/backend/pkg/cms"
)

func TestRepository_PostLifecycle(t *testing.T) {
	repo := New()
	ctx := context.Background()

	post := &cms.Post{
		Title:     "First",
		Blurb:     "blurb",
		MediaType: cms.MediaTypeNone,
		IsVisible: true,
	}
	if err := repo.CreatePost(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if post.Timestamp.IsZero() {
		t.Fatal("expected assigned timestamp")
	}

	got, err := repo.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	if got.Title != "First" {
		t.Fatalf("unexpected title %q", got.Title)
	}

	got.Title = "Renamed"
	if err := repo.UpdatePost(ctx, got); err != nil {
		t.Fatalf("update post: %v", err)
	}
	again, err := repo.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("get post after update: %v", err)
	}
	if again.Title != "Renamed" {
		t.Fatalf("update not applied, title %q", again.Title)
	}
	if !again.Timestamp.Equal(post.Timestamp) {
		t.Fatal("timestamp must not change on update")
	}

	if err := repo.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := repo.GetPost(ctx, post.ID); !errors.Is(err, cms.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestRepository_NotFoundErrors(t *testing.T) {
	repo := New()
	ctx := context.Background()

	if _, err := repo.GetPost(ctx, 99); !errors.Is(err, cms.ErrPostNotFound) {
		t.Fatalf("get: expected ErrPostNotFound, got %v", err)
	}
	if err := repo.UpdatePost(ctx, &cms.Post{ID: 99}); !errors.Is(err, cms.ErrPostNotFound) {
		t.Fatalf("update: expected ErrPostNotFound, got %v", err)
	}
	if err := repo.DeletePost(ctx, 99); !errors.Is(err, cms.ErrPostNotFound) {
		t.Fatalf("delete: expected ErrPostNotFound, got %v", err)
	}
}

func TestRepository_ListOrderingAndVisibility(t *testing.T) {
	repo := New()
	ctx := context.Background()

	for _, p := range []*cms.Post{
		{Title: "oldest", IsVisible: true},
		{Title: "hidden", IsVisible: false},
		{Title: "newest", IsVisible: true},
	} {
		if err := repo.CreatePost(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := repo.ListPosts(ctx, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Timestamp.After(all[i-1].Timestamp) {
			t.Fatal("posts not in descending timestamp order")
		}
	}
	if all[0].Title != "newest" {
		t.Fatalf("expected newest first, got %q", all[0].Title)
	}

	visible, err := repo.ListPosts(ctx, true)
	if err != nil {
		t.Fatalf("list visible: %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible posts, got %d", len(visible))
	}
	for _, p := range visible {
		if !p.IsVisible {
			t.Fatalf("hidden post %q leaked into visible listing", p.Title)
		}
	}
}

func TestRepository_AboutSingleton(t *testing.T) {
	repo := New()
	ctx := context.Background()

	about, err := repo.GetAbout(ctx)
	if err != nil {
		t.Fatalf("get about: %v", err)
	}
	if about.Header != "" || about.Body != "" {
		t.Fatal("expected empty seeded about row")
	}

	before := about.LastUpdated
	time.Sleep(time.Millisecond)

	updated, err := repo.UpdateAbout(ctx, "H", "B")
	if err != nil {
		t.Fatalf("update about: %v", err)
	}
	if updated.Header != "H" || updated.Body != "B" {
		t.Fatalf("unexpected about %+v", updated)
	}
	if !updated.LastUpdated.After(before) {
		t.Fatal("last_updated not refreshed")
	}

	got, err := repo.GetAbout(ctx)
	if err != nil {
		t.Fatalf("get about after update: %v", err)
	}
	if got.Header != "H" || got.Body != "B" {
		t.Fatalf("update not persisted: %+v", got)
	}
}
