package entities

import "time"

type SplitStatus string

const (
	SplitPending SplitStatus = "pending"
	SplitActive  SplitStatus = "active"
	SplitRevoked SplitStatus = "revoked"
)

// Split is one contributor-to-payee revenue share. Percent is whole
// percentage points; active splits for a contributor may not exceed 100.
type Split struct {
	SplitID       string
	ContributorID string
	PayeeEmail    string
	PayeeName     string
	Percent       int
	Status        SplitStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
