// Package clickup wraps the handful of ClickUp v2 API calls the relay
// needs. Every call is a single attempt; a non-2xx response surfaces
// as *APIError with the upstream body preserved for the operator.
package clickup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.clickup.com/api/v2"

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError carries the upstream status and body verbatim.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clickup: upstream status %d: %s", e.StatusCode, e.Body)
}

type CustomField struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Value any    `json:"value,omitempty"`
}

type Task struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status struct {
		Status string `json:"status"`
	} `json:"status"`
	CustomFields []CustomField `json:"custom_fields"`
}

// Field returns the custom field with the given id, if present.
func (t Task) Field(fieldID string) (CustomField, bool) {
	for _, f := range t.CustomFields {
		if f.ID == fieldID {
			return f, true
		}
	}
	return CustomField{}, false
}

type User struct {
	ID       json.Number `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("clickup: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("clickup: decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) GetTask(ctx context.Context, taskID string) (Task, error) {
	var t Task
	if err := c.do(ctx, http.MethodGet, "/task/"+taskID, nil, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

func (c *Client) SetCustomField(ctx context.Context, taskID, fieldID string, value any) error {
	payload := map[string]any{"value": value}
	return c.do(ctx, http.MethodPost, "/task/"+taskID+"/field/"+fieldID, payload, nil)
}

func (c *Client) CreateTask(ctx context.Context, listID, name, description string) (Task, error) {
	payload := map[string]any{
		"name":        name,
		"description": description,
	}
	var t Task
	if err := c.do(ctx, http.MethodPost, "/list/"+listID+"/task", payload, &t); err != nil {
		return Task{}, err
	}
	return t, nil
}

// AuthorizedUser identifies the token's owner; used by the health route.
func (c *Client) AuthorizedUser(ctx context.Context) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/user", nil, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// ListFields returns the custom fields accessible on a list.
func (c *Client) ListFields(ctx context.Context, listID string) ([]CustomField, error) {
	var out struct {
		Fields []CustomField `json:"fields"`
	}
	if err := c.do(ctx, http.MethodGet, "/list/"+listID+"/field", nil, &out); err != nil {
		return nil, err
	}
	return out.Fields, nil
}

// CoerceCount parses a counter custom field value as an integer.
// Absent or unparseable values count as zero; ClickUp returns numeric
// fields as strings or numbers depending on how they were last set.
func CoerceCount(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		return 0
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
		return 0
	default:
		return 0
	}
}
