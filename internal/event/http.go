package event

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/telemetry"
)

// Handler exposes direct (JSON) event provisioning and the registry
// dump. The form-driven path lives in the portal package.
type Handler struct {
	repo      Repo
	telemetry telemetry.Repository
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) SetTelemetry(repo telemetry.Repository) {
	h.telemetry = repo
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

type createRequest struct {
	EventID       string `json:"eventId"`
	Planner       string `json:"planner"`
	EventName     string `json:"eventName"`
	EventDate     string `json:"eventDate"`
	ClickUpTaskID string `json:"clickupTaskId"`
}

// Create registers an event under a caller-supplied id, overwriting
// any existing record with that id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json body")
		return
	}

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"eventId", body.EventID},
		{"planner", body.Planner},
		{"eventName", body.EventName},
		{"clickupTaskId", body.ClickUpTaskID},
	} {
		if strings.TrimSpace(f.val) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		writeErr(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	rec := Record{
		EventID:       strings.TrimSpace(body.EventID),
		Planner:       strings.TrimSpace(body.Planner),
		EventName:     strings.TrimSpace(body.EventName),
		EventDate:     strings.TrimSpace(body.EventDate),
		ClickUpTaskID: strings.TrimSpace(body.ClickUpTaskID),
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.repo.Put(rec); err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.telemetry != nil {
		_ = h.telemetry.RecordEvent(telemetry.EventProvisioned, telemetry.EventMetadata{
			"event_id": rec.EventID,
			"source":   "api",
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "event": rec})
}

// List dumps the whole registry.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.repo.List()
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(events), "events": events})
}
