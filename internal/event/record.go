package event

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("event not found")

const (
	defaultPlanner   = "Unknown planner"
	defaultEventName = "Unnamed event"
)

// Record is one provisioned event. EventID doubles as the registry
// key; ClickUpTaskID is the remote task every tap for this event
// mutates.
type Record struct {
	EventID       string    `json:"eventId"`
	Planner       string    `json:"planner"`
	EventName     string    `json:"eventName"`
	EventDate     string    `json:"eventDate,omitempty"`
	ClickUpTaskID string    `json:"clickupTaskId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func normalizeRecord(rec *Record) {
	if strings.TrimSpace(rec.Planner) == "" {
		rec.Planner = defaultPlanner
	}
	if strings.TrimSpace(rec.EventName) == "" {
		rec.EventName = defaultEventName
	}
}
