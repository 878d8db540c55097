package tap

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/geecynthia3-glitch/nfc-webhook/internal/event"
)

// RegistryStrategy resolves the target task through the event
// registry using the eid query parameter.
type RegistryStrategy struct {
	repo          event.Repo
	svc           TaskService
	countFieldID  string
	statusFieldID string
}

func NewRegistryStrategy(repo event.Repo, svc TaskService, countFieldID, statusFieldID string) *RegistryStrategy {
	return &RegistryStrategy{
		repo:          repo,
		svc:           svc,
		countFieldID:  countFieldID,
		statusFieldID: statusFieldID,
	}
}

func (s *RegistryStrategy) ResolveTarget(r *http.Request) (Target, error) {
	eid := strings.TrimSpace(r.URL.Query().Get("eid"))
	if eid == "" {
		return Target{}, ErrMissingEventID
	}

	rec, err := s.repo.Get(eid)
	if errors.Is(err, event.ErrNotFound) {
		return Target{}, &NotFoundError{EID: eid}
	}
	if err != nil {
		return Target{}, err
	}
	if strings.TrimSpace(rec.ClickUpTaskID) == "" {
		return Target{}, &NotFoundError{EID: eid}
	}
	return Target{EventID: eid, TaskID: rec.ClickUpTaskID}, nil
}

func (s *RegistryStrategy) ApplyTap(ctx context.Context, r *http.Request, target Target) (Result, error) {
	count, err := incrementTap(ctx, s.svc, target.TaskID, s.countFieldID, s.statusFieldID)
	if err != nil {
		return Result{}, err
	}
	return Result{
		EventID: target.EventID,
		TaskID:  target.TaskID,
		Count:   count,
		Status:  StatusTapped,
	}, nil
}
