package event

// Repo is the event registry. Put overwrites by event id; re-creating
// an id replaces the stored record, and nothing ever deletes one.
type Repo interface {
	Get(eventID string) (Record, error)
	Put(rec Record) error
	List() (map[string]Record, error)
}
