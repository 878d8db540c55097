package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	TapsCounted       int               `json:"taps_counted"`
	TasksCreated      int               `json:"tasks_created"`
	TapRejections     int               `json:"tap_rejections"`
	EventsProvisioned int               `json:"events_provisioned"`
	RemoteFailures    int               `json:"remote_failures"`
	TapsByEvent       map[string]int    `json:"taps_by_event"`
}

// CalculateStats aggregates recorded events into operator-facing
// counters for the admin stats route.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:      since.Format("2006-01-02"),
		EventCounts: make(map[EventType]int),
		TapsByEvent: make(map[string]int),
	}

	for _, ev := range events {
		stats.EventCounts[ev.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(ev.Metadata), &metadata); err != nil {
			continue
		}

		switch ev.Type {
		case EventTapCounted:
			stats.TapsCounted++
			if eid, ok := metadata["event_id"].(string); ok && eid != "" {
				stats.TapsByEvent[eid]++
			}
		case EventTapCreated:
			stats.TasksCreated++
		case EventTapRejected:
			stats.TapRejections++
		case EventProvisioned:
			stats.EventsProvisioned++
		case EventRemoteFailure:
			stats.RemoteFailures++
		}
	}

	return stats, nil
}
