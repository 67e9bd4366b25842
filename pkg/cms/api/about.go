package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// GetAbout returns the singleton about row. A missing row yields an
// empty payload with 404; migration seeding makes this unreachable in
// practice.
func (s *HTTPServer) GetAbout(w http.ResponseWriter, r *http.Request) {
	about, err := s.service.GetAbout(r.Context())
	if err != nil {
		if errors.Is(err, cms.ErrAboutNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, map[string]interface{}{
				"id":           nil,
				"header":       "",
				"body":         "",
				"last_updated": nil,
			})
			return
		}
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, about)
}

type updateAboutRequest struct {
	Header string `json:"header"`
	Body   string `json:"body"`
}

// UpdateAbout overwrites the singleton row; both fields are required.
func (s *HTTPServer) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var req updateAboutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBodyError(w, r, err)
		return
	}

	if req.Header == "" || req.Body == "" {
		writeError(w, r, http.StatusBadRequest, "Missing header or body")
		return
	}

	if _, err := s.service.UpdateAbout(r.Context(), req.Header, req.Body); err != nil {
		writeServiceError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]string{"message": "About page updated successfully"})
}
