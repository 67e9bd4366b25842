package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// ListPosts returns posts newest-first. Hidden posts are included only
// for callers with a valid admin session.
func (s *HTTPServer) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.service.ListPosts(r.Context(), s.isAdmin(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if posts == nil {
		posts = []*cms.Post{}
	}
	render.JSON(w, r, posts)
}

// GetPost returns one post by id.
func (s *HTTPServer) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	post, err := s.service.GetPost(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// postPayload is the JSON body shape shared by create and update. Nil
// fields are "not supplied" on update.
type postPayload struct {
	Title     *string `json:"title"`
	Blurb     *string `json:"blurb"`
	Writeup   *string `json:"writeup"`
	MediaType *string `json:"media_type"`
	MediaHref *string `json:"media_href"`
	IsVisible *bool   `json:"is_visible"`
}

// CreatePost accepts either a JSON body or a multipart form with an
// optional "file" part.
func (s *HTTPServer) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req cms.CreatePostRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
			writeBodyError(w, r, err)
			return
		}

		req.Title = r.FormValue("title")
		req.Blurb = r.FormValue("blurb")
		req.Writeup = r.FormValue("writeup")
		req.MediaType = cms.MediaType(r.FormValue("media_type"))
		req.MediaHref = r.FormValue("media_href")
		if v := r.FormValue("is_visible"); v != "" {
			visible, err := strconv.ParseBool(v)
			if err != nil {
				writeError(w, r, http.StatusBadRequest, "Invalid is_visible value")
				return
			}
			req.IsVisible = &visible
		}

		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			req.File = &cms.FileUpload{Filename: header.Filename, Reader: file}
		} else if err != http.ErrMissingFile {
			writeServiceError(w, r, err)
			return
		}
	} else {
		var payload postPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeBodyError(w, r, err)
			return
		}
		req = cms.CreatePostRequest{
			Title:     deref(payload.Title),
			Blurb:     deref(payload.Blurb),
			Writeup:   deref(payload.Writeup),
			MediaType: cms.MediaType(deref(payload.MediaType)),
			MediaHref: deref(payload.MediaHref),
			IsVisible: payload.IsVisible,
		}
	}

	if req.MediaType != "" && !req.MediaType.Valid() {
		writeError(w, r, http.StatusBadRequest, "Invalid media type")
		return
	}

	post, err := s.service.CreatePost(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, post)
}

// UpdatePost applies full-row semantics: fields absent from the body
// keep their previous values.
func (s *HTTPServer) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	var payload postPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeBodyError(w, r, err)
		return
	}

	var mediaType *cms.MediaType
	if payload.MediaType != nil {
		mt := cms.MediaType(*payload.MediaType)
		if !mt.Valid() {
			writeError(w, r, http.StatusBadRequest, "Invalid media type")
			return
		}
		mediaType = &mt
	}

	post, err := s.service.UpdatePost(r.Context(), id, cms.UpdatePostRequest{
		Title:     payload.Title,
		Blurb:     payload.Blurb,
		Writeup:   payload.Writeup,
		MediaType: mediaType,
		MediaHref: payload.MediaHref,
		IsVisible: payload.IsVisible,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, post)
}

// DeletePost removes a post and, best-effort, its owned media blob.
func (s *HTTPServer) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		writeError(w, r, http.StatusNotFound, "Post not found")
		return
	}

	if err := s.service.DeletePost(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "Post deleted"})
}

func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
