package event

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type fileState struct {
	Events map[string]Record `json:"events"`
}

// FileRepo persists the registry as one JSON document, read in full
// and rewritten in full. The mutex serializes the load-mutate-save
// cycle so two provisioning requests cannot drop each other's write.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "events.json"),
		s:    fileState{Events: map[string]Record{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// load reads the whole document. A missing file is a valid empty
// registry; a malformed one is a hard error.
func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.s = fileState{Events: map[string]Record{}}
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return fmt.Errorf("parse registry %s: %w", r.path, err)
	}
	if loaded.Events == nil {
		loaded.Events = map[string]Record{}
	}
	for id, rec := range loaded.Events {
		normalizeRecord(&rec)
		loaded.Events[id] = rec
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Get(eventID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.s.Events[eventID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *FileRepo) Put(rec Record) error {
	if strings.TrimSpace(rec.EventID) == "" {
		return fmt.Errorf("event id is required")
	}
	if strings.TrimSpace(rec.ClickUpTaskID) == "" {
		return fmt.Errorf("clickup task id is required")
	}
	normalizeRecord(&rec)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.s.Events[rec.EventID] = rec
	return r.saveLocked()
}

func (r *FileRepo) List() (map[string]Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]Record, len(r.s.Events))
	for id, rec := range r.s.Events {
		out[id] = rec
	}
	return out, nil
}
