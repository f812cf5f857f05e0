package delivery

import (
	"net/http"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(
	r chi.Router,
	hProcess *ProcessHandler,
	hLatest *LatestImageHandler,
	hSettings *SettingsHandler,
) {
	r.Route("/", func(pr chi.Router) {
		pr.Use(httputil.RecoverMiddleware)

		// --- pipeline ---
		pr.Post("/api/process", hProcess.Process)
		pr.Get("/api/process", hProcess.GetMetaPrompt)
		pr.Get("/api/get-latest-image", hLatest.Get)

		// --- settings page ---
		pr.Get("/settings", hSettings.Show)
		pr.Post("/settings", hSettings.Save)

		pr.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<a href="/settings">Image Generation Settings</a>`))
		})
	})
}
