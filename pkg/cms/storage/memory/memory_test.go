package memory

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/jackrabbitrecords/backend/pkg/cms"
)

func TestBackend_RoundTrip(t *testing.T) {
	backend := New()
	ctx := context.Background()
	key := "uploads/abc.mp3"

	if err := backend.Upload(ctx, key, bytes.NewReader([]byte("audio"))); err != nil {
		t.Fatalf("upload: %v", err)
	}

	rc, err := backend.Download(ctx, key)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "audio" {
		t.Fatalf("download mismatch: %q", string(data))
	}

	if err := backend.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := backend.Delete(ctx, key); !errors.Is(err, cms.ErrBlobNotFound) {
		t.Fatalf("expected ErrBlobNotFound, got %v", err)
	}
}

func TestBackend_ObjectKeyOwnership(t *testing.T) {
	backend := New()

	key, ok := backend.ObjectKey(backend.Reference("uploads/abc.png"))
	if !ok || key != "uploads/abc.png" {
		t.Fatalf("round trip failed: key=%q ok=%v", key, ok)
	}

	for _, ref := range []string{
		"https://example.com/uploads/abc.png",
		"/static/logo.png",
		"/",
	} {
		if _, ok := backend.ObjectKey(ref); ok {
			t.Fatalf("reference %q must not be treated as owned", ref)
		}
	}
}
