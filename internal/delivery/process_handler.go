package delivery

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/voicecanvas/voicecanvas/internal/processing"
	"github.com/voicecanvas/voicecanvas/internal/settings"
	"github.com/voicecanvas/voicecanvas/internal/transcribe"
)

type ProcessHandler struct {
	processing  processing.Service
	settingsSvc settings.Service
	log         *logger.ZapLogger
}

func NewProcessHandler(processingSvc processing.Service, settingsSvc settings.Service, log *logger.ZapLogger) *ProcessHandler {
	return &ProcessHandler{
		processing:  processingSvc,
		settingsSvc: settingsSvc,
		log:         log,
	}
}

// Process handles POST /api/process. A multipart body carrying a metaPrompt
// field is a settings update; anything else must carry an audio field and
// goes through the pipeline.
func (h *ProcessHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(20 << 20); err != nil {
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	if vals, ok := r.MultipartForm.Value["metaPrompt"]; ok && len(vals) > 0 {
		if err := h.settingsSvc.Set(r.Context(), vals[0]); err != nil {
			h.log.Log(logger.LogEntry{Level: "error", Message: "failed to save settings", Error: err})
			http.Error(w, "failed to save settings: "+err.Error(), http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		http.Error(w, "No audio file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, "failed to read audio: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.processing.Process(r.Context(), transcribe.AudioPayload{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "processing failed", Error: err})
		http.Error(w, "Error processing request: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

// GetMetaPrompt handles GET /api/process: the settings read used by the
// settings page.
func (h *ProcessHandler) GetMetaPrompt(w http.ResponseWriter, r *http.Request) {
	s := h.settingsSvc.Get(r.Context())

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}
