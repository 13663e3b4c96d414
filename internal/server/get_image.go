package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// getImageHandler handles GET /images/{imageId}. The stored per-image
// content type is not recovered on retrieval; responses always declare
// image/jpeg.
func (cfg Config) getImageHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		imageID := strings.TrimPrefix(r.URL.Path, "/images/")
		if imageID == "" || strings.Contains(imageID, "/") {
			writeError(w, http.StatusBadRequest, "imageId is required")
			return
		}

		data, err := cfg.Images.Get(r.Context(), imageID)
		if err != nil {
			if errors.Is(err, ErrImageNotFound) {
				writeError(w, http.StatusNotFound, "Image not found")
				return
			}
			rid := RequestIDFromContext(r.Context())
			log.Printf("rid=%s msg=image_get_failed id=%s err=%v", rid, imageID, err)
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", defaultContentType)
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}
