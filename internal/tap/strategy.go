// Package tap handles inbound NFC tap requests. Three strategies share
// one route: registry lookup, fixed master task, and per-tap task
// creation. The mode is chosen by configuration at startup, never
// inferred per request.
package tap

import (
	"context"
	"errors"
	"net/http"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/clickup"
)

// StatusTapped is written to the status custom field after every
// counted tap.
const StatusTapped = "Tapped"

// ErrMissingEventID means the registry strategy got no eid parameter.
var ErrMissingEventID = errors.New("Missing eid query parameter")

// NotFoundError means the eid resolved to nothing usable.
type NotFoundError struct {
	EID string
}

func (e *NotFoundError) Error() string {
	return "Unknown eid: " + e.EID
}

// TaskService is the slice of the ClickUp client the strategies use.
type TaskService interface {
	GetTask(ctx context.Context, taskID string) (clickup.Task, error)
	SetCustomField(ctx context.Context, taskID, fieldID string, value any) error
	CreateTask(ctx context.Context, listID, name, description string) (clickup.Task, error)
}

// Target is the resolved destination of one tap.
type Target struct {
	EventID string
	TaskID  string
}

// Result is what a completed tap reports back to the tag.
type Result struct {
	EventID string
	TaskID  string
	Count   int
	Status  string
	Created bool
}

// Strategy splits a tap into resolution (cheap, local) and application
// (remote mutation). Resolution failures never cost a remote call.
type Strategy interface {
	ResolveTarget(r *http.Request) (Target, error)
	ApplyTap(ctx context.Context, r *http.Request, target Target) (Result, error)
}

// incrementTap is the shared read-modify-write: re-read the task (the
// remote counter is the source of truth, never cached), bump the
// counter field, then set the status field. The writes are sequential;
// if the second fails the counter stays bumped with the old status.
func incrementTap(ctx context.Context, svc TaskService, taskID, countFieldID, statusFieldID string) (int, error) {
	task, err := svc.GetTask(ctx, taskID)
	if err != nil {
		return 0, err
	}

	current := 0
	if f, ok := task.Field(countFieldID); ok {
		current = clickup.CoerceCount(f.Value)
	}
	next := current + 1

	if err := svc.SetCustomField(ctx, taskID, countFieldID, next); err != nil {
		return 0, err
	}
	if err := svc.SetCustomField(ctx, taskID, statusFieldID, StatusTapped); err != nil {
		return 0, err
	}
	return next, nil
}
