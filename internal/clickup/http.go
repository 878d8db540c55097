package clickup

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Handler exposes diagnostic passthroughs so operators can look up
// field ids and task state without leaving the relay.
type Handler struct {
	client *Client
	listID string
}

func NewHandler(client *Client, listID string) *Handler {
	return &Handler{client: client, listID: listID}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRemoteErr(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":  "clickup request failed",
			"detail": apiErr.Body,
			"status": apiErr.StatusCode,
		})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
}

// Health verifies the token by asking ClickUp who owns it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	user, err := h.client.AuthorizedUser(r.Context())
	if err != nil {
		writeRemoteErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": user})
}

// Fields lists the custom fields of the configured list.
func (h *Handler) Fields(w http.ResponseWriter, r *http.Request) {
	if h.listID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "no list configured"})
		return
	}
	fields, err := h.client.ListFields(r.Context(), h.listID)
	if err != nil {
		writeRemoteErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": fields})
}

// Task fetches one task by path parameter.
func (h *Handler) Task(w http.ResponseWriter, r *http.Request) {
	taskID := r.PathValue("taskId")
	if taskID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "taskId is required"})
		return
	}
	task, err := h.client.GetTask(r.Context(), taskID)
	if err != nil {
		writeRemoteErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}
