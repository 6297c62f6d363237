package http

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"givehub-backend/internal/domain"
	"givehub-backend/internal/service"
	"givehub-backend/internal/storage"
)

type ImageHandler struct {
	images   service.ImageService
	store    storage.Store
	maxBytes int64
}

func NewImageHandler(images service.ImageService, store storage.Store, maxBytes int64) *ImageHandler {
	return &ImageHandler{images: images, store: store, maxBytes: maxBytes}
}

// Upload accepts a multipart form with an "image" file field and an optional
// "kind" field ("profile" or "donation", default "donation").
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	p := principalFrom(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+4096)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, domain.Ef(domain.InvalidArgument, "malformed multipart upload: %v", err))
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, domain.E(domain.InvalidArgument, "image file field is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, domain.WrapUpstream("failed to read upload", err))
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "donation"
	}

	url, err := h.images.UploadImage(r.Context(), p, kind, data)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// Download serves locally stored images. Bucket-backed deployments never hit
// this route since their URLs point at the bucket directly.
func (h *ImageHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	rc, contentType, err := h.store.Open(r.Context(), key)
	if err != nil {
		writeError(w, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	io.Copy(w, rc)
}
