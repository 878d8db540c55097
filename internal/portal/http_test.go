package portal

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/event"
)

func TestForm_Renders(t *testing.T) {
	h := NewHandler(event.NewMemoryRepo(), "hook-secret", "portal-pass")

	rec := httptest.NewRecorder()
	h.Form(rec, httptest.NewRequest(http.MethodGet, "/portal?portal_key=portal-pass", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="clickupTaskId"`)
	assert.Contains(t, rec.Body.String(), "portal_key=portal-pass")
}

func TestCreate_StoresAndRendersTapURLs(t *testing.T) {
	repo := event.NewMemoryRepo()
	h := NewHandler(repo, "hook-secret", "portal-pass")

	form := url.Values{
		"planner":       {"Jane Doe"},
		"eventName":     {"Summer Gala"},
		"eventDate":     {"2026-07-04"},
		"clickupTaskId": {"9hz"},
	}
	req := httptest.NewRequest(http.MethodPost, "/portal/create?portal_key=portal-pass", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Host = "relay.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	events, err := repo.List()
	require.NoError(t, err)
	require.Len(t, events, 1)
	var stored event.Record
	for _, ev := range events {
		stored = ev
	}
	assert.True(t, strings.HasPrefix(stored.EventID, "jane-doe-summer-gala-2026-07-04-"), stored.EventID)
	assert.Equal(t, "9hz", stored.ClickUpTaskID)

	body := rec.Body.String()
	assert.Contains(t, body, "https://relay.example.com/nfc?")
	assert.Contains(t, body, "type=welcome")
	assert.Contains(t, body, "guest=GUEST_NAME")
	assert.Contains(t, body, "table=TABLE_NUMBER")
	assert.Contains(t, body, "key=hook-secret")
}

func TestCreate_MissingFields(t *testing.T) {
	repo := event.NewMemoryRepo()
	h := NewHandler(repo, "", "")

	form := url.Values{
		"planner":   {"Jane Doe"},
		"eventName": {"Summer Gala"},
	}
	req := httptest.NewRequest(http.MethodPost, "/portal/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "eventDate")
	assert.Contains(t, rec.Body.String(), "clickupTaskId")

	events, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, events, "registry must stay untouched on bad request")
}

func TestCreate_OmitsKeyWhenNoSecretConfigured(t *testing.T) {
	h := NewHandler(event.NewMemoryRepo(), "", "")

	form := url.Values{
		"planner":       {"P"},
		"eventName":     {"E"},
		"eventDate":     {"2026-01-01"},
		"clickupTaskId": {"t1"},
	}
	req := httptest.NewRequest(http.MethodPost, "/portal/create", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	// tap URLs carry no key parameter when the gate is open
	assert.NotContains(t, rec.Body.String(), "amp;key=")
	assert.NotContains(t, rec.Body.String(), "?key=")
}
