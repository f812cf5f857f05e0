package delivery

import (
	"html/template"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/voicecanvas/voicecanvas/internal/settings"
)

var settingsTmpl = template.Must(template.New("settings").Parse(`<!DOCTYPE html>
<html>
<head><title>Image Generation Settings</title></head>
<body>
  <h1>Image Generation Settings</h1>
  {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
  <form method="POST" action="/settings">
    <textarea name="metaPrompt" rows="4" cols="60"
      placeholder="Enter meta prompt for image generation...">{{.MetaPrompt}}</textarea>
    <br>
    <button type="submit">Save</button>
    <a href="/">Back to Recording</a>
  </form>
</body>
</html>
`))

type settingsPage struct {
	MetaPrompt string
	Error      string
}

type SettingsHandler struct {
	settingsSvc settings.Service
	log         *logger.ZapLogger
}

func NewSettingsHandler(settingsSvc settings.Service, log *logger.ZapLogger) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc, log: log}
}

func (h *SettingsHandler) Show(w http.ResponseWriter, r *http.Request) {
	s := h.settingsSvc.Get(r.Context())
	h.render(w, settingsPage{MetaPrompt: s.MetaPrompt})
}

// Save handles the settings form POST and redirects back to the page, re-rendering
// it with an inline error when the write fails.
func (h *SettingsHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, settingsPage{Error: "invalid form: " + err.Error()})
		return
	}

	metaPrompt := r.FormValue("metaPrompt")
	if err := h.settingsSvc.Set(r.Context(), metaPrompt); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to save settings", Error: err})
		h.render(w, settingsPage{MetaPrompt: metaPrompt, Error: "failed to save: " + err.Error()})
		return
	}

	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *SettingsHandler) render(w http.ResponseWriter, page settingsPage) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := settingsTmpl.Execute(w, page); err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "render settings page", Error: err})
	}
}
