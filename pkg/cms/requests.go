package cms

import "io"

// Request DTOs

// FileUpload carries an uploaded file into the service. Only the
// extension of Filename is trusted.
type FileUpload struct {
	Filename string
	Reader   io.Reader
}

// CreatePostRequest contains parameters for creating a post. Either File
// or MediaHref may supply the media; when File is set the stored blob's
// reference wins.
type CreatePostRequest struct {
	Title     string
	Blurb     string
	Writeup   string
	MediaType MediaType
	MediaHref string
	IsVisible *bool
	File      *FileUpload
}

// UpdatePostRequest contains parameters for updating a post. Nil fields
// keep their previous values (full-row semantics).
type UpdatePostRequest struct {
	Title     *string
	Blurb     *string
	Writeup   *string
	MediaType *MediaType
	MediaHref *string
	IsVisible *bool
}
