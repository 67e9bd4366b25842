// Package youtube implements the embeddability check for YouTube videos:
// a metadata lookup against the Data API followed by an oEmbed
// confirmation. Uncertainty at any step fails closed to "not embeddable".
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultVideosURL = "https://www.googleapis.com/youtube/v3/videos"
	defaultOEmbedURL = "https://www.youtube.com/oembed"
	defaultTimeout   = 5 * time.Second
)

// ErrVideoNotFound indicates the metadata API returned no item for the id.
var ErrVideoNotFound = errors.New("video not found")

// Client checks whether YouTube videos can be embedded.
type Client struct {
	apiKey     string
	httpClient *http.Client
	videosURL  string
	oembedURL  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client used for both calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithVideosURL overrides the metadata API base URL.
func WithVideosURL(u string) Option {
	return func(c *Client) {
		c.videosURL = u
	}
}

// WithOEmbedURL overrides the oEmbed base URL.
func WithOEmbedURL(u string) Option {
	return func(c *Client) {
		c.oembedURL = u
	}
}

// NewClient creates an embeddability client using the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		videosURL:  defaultVideosURL,
		oembedURL:  defaultOEmbedURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// videoListResponse mirrors the parts of the Data API response we read.
type videoListResponse struct {
	Items []videoItem `json:"items"`
}

type videoItem struct {
	Status struct {
		Embeddable    bool   `json:"embeddable"`
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
	ContentDetails struct {
		RegionRestriction map[string]json.RawMessage `json:"regionRestriction"`
		ContentRating     struct {
			YTRating string `json:"ytRating"`
		} `json:"contentRating"`
	} `json:"contentDetails"`
}

// IsEmbeddable reports whether the video may be embedded. Network and
// decode failures fail closed to (false, nil); only an unknown video id
// surfaces as ErrVideoNotFound.
func (c *Client) IsEmbeddable(ctx context.Context, videoID string) (bool, error) {
	meta, err := c.fetchMetadata(ctx, videoID)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			return false, err
		}
		slog.Warn("youtube metadata lookup failed", "video_id", videoID, "err", err)
		return false, nil
	}

	embeddable := meta.Status.Embeddable && meta.Status.PrivacyStatus == "public"

	// Region- or age-restricted videos never embed cleanly.
	if len(meta.ContentDetails.RegionRestriction) > 0 ||
		meta.ContentDetails.ContentRating.YTRating == "ytAgeRestricted" {
		embeddable = false
	}

	if embeddable && !c.oembedOK(ctx, videoID) {
		embeddable = false
	}

	return embeddable, nil
}

func (c *Client) fetchMetadata(ctx context.Context, videoID string) (*videoItem, error) {
	q := url.Values{}
	q.Set("part", "status,contentDetails")
	q.Set("id", videoID)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.videosURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata API returned status %d", resp.StatusCode)
	}

	var list videoListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode metadata response: %w", err)
	}

	if len(list.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	return &list.Items[0], nil
}

// oembedOK confirms embeddability through the public oEmbed endpoint.
func (c *Client) oembedOK(ctx context.Context, videoID string) bool {
	q := url.Values{}
	q.Set("url", "https://www.youtube.com/watch?v="+videoID)
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.oembedURL+"?"+q.Encode(), nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Warn("oEmbed check failed", "video_id", videoID, "err", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
