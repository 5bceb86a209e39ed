package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/eventz-dev/eventz/internal/api"
	"github.com/eventz-dev/eventz/internal/utils"
)

const defaultMaxHeroImageSize = 10 << 20 // 10 MB

var allowedHeroImageMimes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHero accepts a hero image and returns the stable URL the event
// record will carry. The blob itself is never inspected beyond the MIME and
// size checks.
func (h *Handler) UploadHero(w http.ResponseWriter, r *http.Request) {
	maxSize := h.cfg.Public.MaxHeroImageSize
	if maxSize <= 0 {
		maxSize = defaultMaxHeroImageSize
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		http.Error(w, "Image too large or malformed upload", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image form field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if !allowedHeroImageMimes[mimeType] {
		http.Error(w, "Unsupported image type: "+mimeType, http.StatusBadRequest)
		return
	}

	url, err := h.media.Save(file, header.Filename)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSONStatus(w, http.StatusCreated, api.UploadResponse{Url: url})
}
