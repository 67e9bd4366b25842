package cms

import "time"

// MediaType categorizes the media attached to a post.
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
	MediaTypeVideo MediaType = "video"
	MediaTypeLink  MediaType = "link"
	MediaTypeNone  MediaType = "none"
)

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeAudio, MediaTypeVideo, MediaTypeLink, MediaTypeNone:
		return true
	}
	return false
}

// Post is a single site post. Timestamp is set by the repository on
// creation and never changes; it drives the default descending sort.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Blurb     string    `json:"blurb"`
	Writeup   string    `json:"writeup"`
	MediaType MediaType `json:"media_type"`
	MediaHref string    `json:"media_href"`
	Timestamp time.Time `json:"timestamp"`
	IsVisible bool      `json:"is_visible"`
}

// About is the singleton about-page row. It is seeded once with empty
// strings and only ever updated afterwards.
type About struct {
	ID          int64     `json:"id"`
	Header      string    `json:"header"`
	Body        string    `json:"body"`
	LastUpdated time.Time `json:"last_updated"`
}

// AllowedExtensions is the upload extension allow-list. Caller-supplied
// filenames are trusted only for their extension.
var AllowedExtensions = map[string]MediaType{
	"png":  MediaTypeImage,
	"jpg":  MediaTypeImage,
	"jpeg": MediaTypeImage,
	"mp3":  MediaTypeAudio,
	"wav":  MediaTypeAudio,
	"ogg":  MediaTypeAudio,
}
