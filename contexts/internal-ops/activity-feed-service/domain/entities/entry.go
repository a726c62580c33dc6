package entities

import "time"

// Entry is one append-only activity line. Entries are never updated or
// deleted once written.
type Entry struct {
	EntryID    string
	ActorID    string
	ActorName  string
	Verb       string
	EntityType string
	EntityID   string
	Summary    string
	OccurredAt time.Time
}
