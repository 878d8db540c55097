// Package portal is the form-driven provisioning surface: a planner
// fills in a small HTML form, the handler generates an event id, stores
// the record and renders tap URLs ready to program onto NFC tags.
package portal

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/event"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/telemetry"
)

//go:embed templates/portal.html templates/confirm.html
var templatesFS embed.FS

var portalTmpl = template.Must(template.ParseFS(templatesFS, "templates/portal.html"))
var confirmTmpl = template.Must(template.ParseFS(templatesFS, "templates/confirm.html"))

type Handler struct {
	repo          event.Repo
	webhookSecret string
	portalKey     string
	telemetry     telemetry.Repository
}

// NewHandler wires the portal against the registry. The webhook secret
// is embedded in generated tap URLs so the printed tag works as-is.
func NewHandler(repo event.Repo, webhookSecret, portalKey string) *Handler {
	return &Handler{repo: repo, webhookSecret: webhookSecret, portalKey: portalKey}
}

func (h *Handler) SetTelemetry(repo telemetry.Repository) {
	h.telemetry = repo
}

// Form renders the registration form.
func (h *Handler) Form(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := portalTmpl.Execute(w, map[string]any{"PortalKey": h.portalKey}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type confirmData struct {
	Event      event.Record
	WelcomeURL string
	TableURL   string
	PortalKey  string
}

// Create consumes the form, stores the record under a generated id and
// renders the confirmation page with prebuilt tap URLs.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	planner := strings.TrimSpace(r.PostFormValue("planner"))
	eventName := strings.TrimSpace(r.PostFormValue("eventName"))
	eventDate := strings.TrimSpace(r.PostFormValue("eventDate"))
	taskID := strings.TrimSpace(r.PostFormValue("clickupTaskId"))

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"planner", planner},
		{"eventName", eventName},
		{"eventDate", eventDate},
		{"clickupTaskId", taskID},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}

	rec := event.Record{
		EventID:       event.GenerateID(planner, eventName, eventDate),
		Planner:       planner,
		EventName:     eventName,
		EventDate:     eventDate,
		ClickUpTaskID: taskID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.repo.Put(rec); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.telemetry != nil {
		_ = h.telemetry.RecordEvent(telemetry.EventProvisioned, telemetry.EventMetadata{
			"event_id": rec.EventID,
			"source":   "portal",
		})
	}

	base := baseURL(r)
	data := confirmData{
		Event:      rec,
		WelcomeURL: tapURL(base, rec.EventID, h.webhookSecret, map[string]string{"type": "welcome"}),
		TableURL: tapURL(base, rec.EventID, h.webhookSecret, map[string]string{
			"type":  "table",
			"guest": "GUEST_NAME",
			"table": "TABLE_NUMBER",
		}),
		PortalKey: h.portalKey,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := confirmTmpl.Execute(w, data); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// baseURL reconstructs the externally visible origin; the relay runs
// behind a TLS-terminating proxy in production.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func tapURL(base, eventID, secret string, extra map[string]string) string {
	q := url.Values{}
	q.Set("eid", eventID)
	if secret != "" {
		q.Set("key", secret)
	}
	for k, v := range extra {
		q.Set(k, v)
	}
	return base + "/nfc?" + q.Encode()
}
