package telemetry

import "time"

type EventType string

const (
	EventTapCounted    EventType = "tap_counted"
	EventTapCreated    EventType = "tap_created_task"
	EventTapRejected   EventType = "tap_rejected"
	EventProvisioned   EventType = "event_provisioned"
	EventRemoteFailure EventType = "remote_failure"
)

type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
