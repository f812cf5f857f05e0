package delivery

import (
	"encoding/json"
	"net/http"

	"github.com/voicecanvas/voicecanvas/internal/latest"
)

type LatestImageHandler struct {
	cache *latest.Store
}

func NewLatestImageHandler(cache *latest.Store) *LatestImageHandler {
	return &LatestImageHandler{cache: cache}
}

// Get handles GET /api/get-latest-image, polled by the viewer every second.
// Before the first successful run it answers {"imageUrl": null} so the viewer
// can tell "nothing yet" from "has data".
func (h *LatestImageHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, ok := h.cache.Read()
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{"imageUrl": nil})
		return
	}
	_ = json.NewEncoder(w).Encode(result)
}
