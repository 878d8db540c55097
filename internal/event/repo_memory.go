package event

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryRepo mirrors FileRepo without the disk round-trip (tests).
type MemoryRepo struct {
	mu     sync.RWMutex
	events map[string]Record
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{events: map[string]Record{}}
}

func (r *MemoryRepo) Get(eventID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.events[eventID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *MemoryRepo) Put(rec Record) error {
	if strings.TrimSpace(rec.EventID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(rec.ClickUpTaskID) == "" {
		return fmt.Errorf("clickup task id is required")
	}
	normalizeRecord(&rec)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.events[rec.EventID] = rec
	return nil
}

func (r *MemoryRepo) List() (map[string]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Record, len(r.events))
	for id, rec := range r.events {
		out[id] = rec
	}
	return out, nil
}
