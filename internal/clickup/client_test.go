package clickup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/task/9hz", r.URL.Path)
		assert.Equal(t, "pk_token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":   "9hz",
			"name": "Smith Wedding",
			"custom_fields": []map[string]any{
				{"id": "f-count", "name": "Tap Count", "value": "7"},
				{"id": "f-status", "name": "Status", "value": "Idle"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk_token")
	task, err := c.GetTask(context.Background(), "9hz")
	require.NoError(t, err)

	assert.Equal(t, "9hz", task.ID)
	f, ok := task.Field("f-count")
	require.True(t, ok)
	assert.Equal(t, "7", f.Value)
	_, ok = task.Field("missing")
	assert.False(t, ok)
}

func TestSetCustomField(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/task/9hz/field/f-count", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk_token")
	require.NoError(t, c.SetCustomField(context.Background(), "9hz", "f-count", 8))
	assert.Equal(t, float64(8), gotBody["value"])
}

func TestCreateTask(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/list/list-1/task", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "NFC tap", body["name"])
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "new-task"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk_token")
	task, err := c.CreateTask(context.Background(), "list-1", "NFC tap", "dump")
	require.NoError(t, err)
	assert.Equal(t, "new-task", task.ID)
}

func TestNonSuccessBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"err":"Token invalid","ECODE":"OAUTH_025"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad")
	_, err := c.GetTask(context.Background(), "9hz")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok, "expected *APIError, got %T", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "OAUTH_025")
}

func TestAuthorizedUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/user", r.URL.Path)
		_, _ = w.Write([]byte(`{"user":{"id":123,"username":"ops","email":"ops@example.com"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pk_token")
	user, err := c.AuthorizedUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ops", user.Username)
}

func TestCoerceCount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"absent", nil, 0},
		{"number", float64(7), 7},
		{"string number", "7", 7},
		{"string float", "7.0", 7},
		{"garbage", "lots", 0},
		{"bool", true, 0},
		{"int", 3, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoerceCount(tt.in))
		})
	}
}
