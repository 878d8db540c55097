package tap

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

const maxDumpBody = 64 << 10

// CreateStrategy makes a new task per tap instead of incrementing a
// counter. The request's query and body parameters go into the task
// description verbatim so nothing the tag sent is lost.
type CreateStrategy struct {
	listID string
	svc    TaskService
}

func NewCreateStrategy(listID string, svc TaskService) *CreateStrategy {
	return &CreateStrategy{listID: listID, svc: svc}
}

func (s *CreateStrategy) ResolveTarget(r *http.Request) (Target, error) {
	return Target{}, nil
}

func (s *CreateStrategy) ApplyTap(ctx context.Context, r *http.Request, _ Target) (Result, error) {
	task, err := s.svc.CreateTask(ctx, s.listID, tapName(r), requestDump(r))
	if err != nil {
		return Result{}, err
	}
	return Result{TaskID: task.ID, Created: true}, nil
}

func tapName(r *http.Request) string {
	name := "NFC tap"
	q := r.URL.Query()
	if typ := strings.TrimSpace(q.Get("type")); typ != "" {
		name += " (" + typ + ")"
	}
	if guest := strings.TrimSpace(q.Get("guest")); guest != "" {
		name += ": " + guest
	}
	return name
}

func requestDump(r *http.Request) string {
	var b strings.Builder

	b.WriteString("Query parameters:\n")
	writeValues(&b, r.URL.Query())

	body, _ := io.ReadAll(io.LimitReader(r.Body, maxDumpBody))
	b.WriteString("Body:\n")
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		if form, err := url.ParseQuery(string(body)); err == nil {
			writeValues(&b, form)
			return b.String()
		}
	}
	if len(body) == 0 {
		b.WriteString("  (empty)\n")
	} else {
		b.WriteString("  " + strings.TrimSpace(string(body)) + "\n")
	}
	return b.String()
}

func writeValues(b *strings.Builder, values url.Values) {
	if len(values) == 0 {
		b.WriteString("  (none)\n")
		return
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			b.WriteString("  " + k + "=" + v + "\n")
		}
	}
}
