package tap

import (
	"context"
	"net/http"
)

// MasterStrategy mutates one fixed task for every tap. Legacy
// single-event deployments run this mode with no registry at all.
type MasterStrategy struct {
	taskID        string
	svc           TaskService
	countFieldID  string
	statusFieldID string
}

func NewMasterStrategy(taskID string, svc TaskService, countFieldID, statusFieldID string) *MasterStrategy {
	return &MasterStrategy{
		taskID:        taskID,
		svc:           svc,
		countFieldID:  countFieldID,
		statusFieldID: statusFieldID,
	}
}

func (s *MasterStrategy) ResolveTarget(r *http.Request) (Target, error) {
	return Target{TaskID: s.taskID}, nil
}

func (s *MasterStrategy) ApplyTap(ctx context.Context, r *http.Request, target Target) (Result, error) {
	count, err := incrementTap(ctx, s.svc, target.TaskID, s.countFieldID, s.statusFieldID)
	if err != nil {
		return Result{}, err
	}
	return Result{TaskID: target.TaskID, Count: count, Status: StatusTapped}, nil
}
