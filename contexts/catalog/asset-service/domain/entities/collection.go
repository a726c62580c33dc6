package entities

import "time"

// Collection groups assets for curation and licensing bundles.
type Collection struct {
	CollectionID string
	Name         string
	Description  string
	CuratorID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
