package tap

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/clickup"
	"github.com/geecynthia3-glitch/nfc-webhook/internal/telemetry"
)

// Handler drives one tap request through its strategy:
// resolve, apply, respond. The shared-secret gate runs before this
// handler, as middleware.
type Handler struct {
	strategy  Strategy
	telemetry telemetry.Repository
}

func NewHandler(strategy Strategy) *Handler {
	return &Handler{strategy: strategy}
}

func (h *Handler) SetTelemetry(repo telemetry.Repository) {
	h.telemetry = repo
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Tap serves POST|GET /nfc and /nfc-webhook.
func (h *Handler) Tap(w http.ResponseWriter, r *http.Request) {
	target, err := h.strategy.ResolveTarget(r)
	if err != nil {
		h.fail(w, err)
		return
	}

	res, err := h.strategy.ApplyTap(r.Context(), r, target)
	if err != nil {
		h.fail(w, err)
		return
	}

	payload := map[string]any{"ok": true, "taskId": res.TaskID}
	if res.Created {
		h.record(telemetry.EventTapCreated, telemetry.EventMetadata{"task_id": res.TaskID})
		writeJSON(w, http.StatusOK, payload)
		return
	}

	if res.EventID != "" {
		payload["eid"] = res.EventID
	}
	payload["count"] = res.Count
	payload["status"] = res.Status
	h.record(telemetry.EventTapCounted, telemetry.EventMetadata{
		"event_id": res.EventID,
		"task_id":  res.TaskID,
		"count":    res.Count,
	})
	writeJSON(w, http.StatusOK, payload)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	var notFound *NotFoundError
	var apiErr *clickup.APIError

	switch {
	case errors.Is(err, ErrMissingEventID):
		h.record(telemetry.EventTapRejected, telemetry.EventMetadata{"reason": "missing_eid"})
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": ErrMissingEventID.Error()})
	case errors.As(err, &notFound):
		h.record(telemetry.EventTapRejected, telemetry.EventMetadata{"reason": "unknown_eid", "event_id": notFound.EID})
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Unknown eid", "eid": notFound.EID})
	case errors.As(err, &apiErr):
		h.record(telemetry.EventRemoteFailure, telemetry.EventMetadata{"status": apiErr.StatusCode})
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "clickup request failed",
			"detail": apiErr.Body,
		})
	default:
		h.record(telemetry.EventRemoteFailure, telemetry.EventMetadata{"error": err.Error()})
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
	}
}

func (h *Handler) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if h.telemetry == nil {
		return
	}
	_ = h.telemetry.RecordEvent(t, md)
}
