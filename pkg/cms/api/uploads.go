package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/jackrabbitrecords/backend/pkg/cms"
)

// ServeUpload resolves a media blob by filename: remote references
// redirect to the store's public URL, local ones stream from disk.
func (s *HTTPServer) ServeUpload(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		writeError(w, r, http.StatusNotFound, "File not found")
		return
	}

	store := s.service.MediaStore()
	key := "uploads/" + filename

	if ref := store.Reference(key); strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		http.Redirect(w, r, ref, http.StatusFound)
		return
	}

	blob, err := store.Download(r.Context(), key)
	if err != nil {
		if errors.Is(err, cms.ErrBlobNotFound) {
			writeError(w, r, http.StatusNotFound, "File not found")
			return
		}
		writeServiceError(w, r, err)
		return
	}
	defer blob.Close()

	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	if _, err := io.Copy(w, blob); err != nil {
		slog.Warn("failed to stream upload", "filename", filename, "err", err)
	}
}

type presignRequest struct {
	ContentType string `json:"content_type"`
	FileExt     string `json:"file_ext"`
}

// PresignUpload mints a direct-upload URL for stores that support it,
// along with the public URL the object will have once uploaded.
func (s *HTTPServer) PresignUpload(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FileExt == "" {
		writeError(w, r, http.StatusBadRequest, "Missing content_type or file_ext")
		return
	}

	key, err := s.service.NewUploadKey("upload." + req.FileExt)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	store := s.service.MediaStore()
	uploadURL, err := store.UploadURL(r.Context(), key, req.ContentType)
	if err != nil {
		slog.Error("failed to generate upload URL", "key", key, "err", err)
		writeError(w, r, http.StatusInternalServerError, "Failed to generate upload URL")
		return
	}

	render.JSON(w, r, map[string]string{
		"upload_url": uploadURL,
		"public_url": store.Reference(key),
	})
}
