package httpadapter

import (
	"fmt"
	"net/http"
	"path"

	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

// handleUpload accepts a multipart form with a single "file" field,
// stores it in the object store and returns its public URL.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondErrorStatus(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.NewString(), path.Ext(header.Filename))
	url, err := h.uploads.Put(r.Context(), key, contentType, file)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respond(w, http.StatusCreated, map[string]string{"key": key, "url": url})
}
