package server

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/telemetry"
)

//go:embed templates/admin.html
var adminTemplatesFS embed.FS

var adminTmpl = template.Must(template.ParseFS(adminTemplatesFS, "templates/admin.html"))

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

// RegisterAdminUI exposes the route list and tap telemetry for
// operators. These routes carry no secrets and stay ungated.
func RegisterAdminUI(mux *http.ServeMux, rr *RouteRegistry, stats telemetry.Repository) {
	mux.HandleFunc("GET /_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})

	mux.HandleFunc("GET /_/admin/stats.json", func(w http.ResponseWriter, r *http.Request) {
		since := time.Now().AddDate(0, 0, -30)
		events, err := stats.GetEvents(since, nil)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out, err := telemetry.CalculateStats(events, since)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, out)
	})

	mux.HandleFunc("GET /_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := adminTmpl.Execute(w, map[string]any{"Routes": rr.List()}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
