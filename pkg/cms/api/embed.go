package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jackrabbitrecords/backend/pkg/cms/youtube"
)

// CheckYouTubeEmbed reports whether a video can be embedded. The check
// fails closed: upstream trouble yields 200 with embeddable:false rather
// than an error.
func (s *HTTPServer) CheckYouTubeEmbed(w http.ResponseWriter, r *http.Request) {
	videoID := r.URL.Query().Get("id")
	if videoID == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]interface{}{"embeddable": false, "error": "Missing video id"})
		return
	}

	if s.checker == nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]interface{}{"embeddable": false, "error": "No API key"})
		return
	}

	embeddable, err := s.checker.IsEmbeddable(r.Context(), videoID)
	if err != nil {
		if errors.Is(err, youtube.ErrVideoNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]interface{}{"embeddable": false, "error": "Video not found"})
			return
		}
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]bool{"embeddable": embeddable})
}
