package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeYouTube stands in for both the Data API and the oEmbed endpoint.
type fakeYouTube struct {
	metadataBody   string
	metadataStatus int
	oembedStatus   int

	metadataCalls int
	oembedCalls   int
}

func (f *fakeYouTube) servers(t *testing.T) (metadata, oembed *httptest.Server) {
	t.Helper()

	metadata = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.metadataCalls++
		if r.URL.Query().Get("part") != "status,contentDetails" {
			t.Errorf("unexpected part param %q", r.URL.Query().Get("part"))
		}
		status := f.metadataStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		fmt.Fprint(w, f.metadataBody)
	}))
	t.Cleanup(metadata.Close)

	oembed = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.oembedCalls++
		status := f.oembedStatus
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		fmt.Fprint(w, `{"title":"a video"}`)
	}))
	t.Cleanup(oembed.Close)

	return metadata, oembed
}

func newTestClient(t *testing.T, f *fakeYouTube) *Client {
	t.Helper()
	metadata, oembed := f.servers(t)
	return NewClient("test-key",
		WithVideosURL(metadata.URL),
		WithOEmbedURL(oembed.URL),
	)
}

const embeddableBody = `{"items":[{"status":{"embeddable":true,"privacyStatus":"public"},"contentDetails":{}}]}`

func TestIsEmbeddable_PublicVideo(t *testing.T) {
	f := &fakeYouTube{metadataBody: embeddableBody}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, f.metadataCalls)
	assert.Equal(t, 1, f.oembedCalls)
}

func TestIsEmbeddable_OwnerDisabledEmbedding(t *testing.T) {
	f := &fakeYouTube{
		metadataBody: `{"items":[{"status":{"embeddable":false,"privacyStatus":"public"},"contentDetails":{}}]}`,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, f.oembedCalls, "oEmbed should be skipped once metadata says no")
}

func TestIsEmbeddable_UnlistedVideo(t *testing.T) {
	f := &fakeYouTube{
		metadataBody: `{"items":[{"status":{"embeddable":true,"privacyStatus":"unlisted"},"contentDetails":{}}]}`,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsEmbeddable_RegionRestricted(t *testing.T) {
	f := &fakeYouTube{
		metadataBody: `{"items":[{"status":{"embeddable":true,"privacyStatus":"public"},"contentDetails":{"regionRestriction":{"blocked":["DE"]}}}]}`,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsEmbeddable_AgeRestricted(t *testing.T) {
	f := &fakeYouTube{
		metadataBody: `{"items":[{"status":{"embeddable":true,"privacyStatus":"public"},"contentDetails":{"contentRating":{"ytRating":"ytAgeRestricted"}}}]}`,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsEmbeddable_UnknownVideo(t *testing.T) {
	f := &fakeYouTube{metadataBody: `{"items":[]}`}
	client := newTestClient(t, f)

	_, err := client.IsEmbeddable(context.Background(), "doesnotexist")
	require.ErrorIs(t, err, ErrVideoNotFound)
}

func TestIsEmbeddable_OEmbedDisagrees(t *testing.T) {
	f := &fakeYouTube{
		metadataBody: embeddableBody,
		oembedStatus: http.StatusUnauthorized,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsEmbeddable_MetadataAPIError(t *testing.T) {
	f := &fakeYouTube{
		metadataBody:   `{"error":{"code":403}}`,
		metadataStatus: http.StatusForbidden,
	}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err, "API failures fail closed, not loud")
	assert.False(t, ok)
}

func TestIsEmbeddable_MetadataUnreachable(t *testing.T) {
	f := &fakeYouTube{metadataBody: embeddableBody}
	metadata, oembed := f.servers(t)
	metadata.Close()

	client := NewClient("test-key",
		WithVideosURL(metadata.URL),
		WithOEmbedURL(oembed.URL),
	)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsEmbeddable_MalformedMetadata(t *testing.T) {
	f := &fakeYouTube{metadataBody: `{not json`}
	client := newTestClient(t, f)

	ok, err := client.IsEmbeddable(context.Background(), "abc123")
	require.NoError(t, err)
	assert.False(t, ok)
}
