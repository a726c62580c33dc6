package progress

import "math"

// Package progress defines the three-event protocol a running bulk
// operation streams back to the client. Events are framed as server-sent
// events; processed counts are monotonically non-decreasing within one
// operation and exactly one terminal event (error or complete) ends the
// stream.

type EventType string

const (
	EventProgress EventType = "progress"
	EventError    EventType = "error"
	EventComplete EventType = "complete"
)

// ProgressEvent is emitted repeatedly while work proceeds.
type ProgressEvent struct {
	Processed                 int    `json:"processed"`
	Total                     int    `json:"total"`
	Percentage                int    `json:"percentage"`
	CurrentItem               string `json:"current_item,omitempty"`
	EstimatedSecondsRemaining int    `json:"estimated_seconds_remaining,omitempty"`
}

// ErrorEvent is terminal. The failed item and everything after it are not
// guaranteed completed; processed counts items finished before the failure.
type ErrorEvent struct {
	Message    string `json:"message"`
	Processed  int    `json:"processed"`
	Total      int    `json:"total"`
	FailedItem string `json:"failed_item,omitempty"`
}

// CompleteEvent is terminal; processed equals total on success.
type CompleteEvent struct {
	Processed   int    `json:"processed"`
	Total       int    `json:"total"`
	OperationID string `json:"operation_id"`
}

// Event is the decoded union; exactly one payload field is set, matching
// Type.
type Event struct {
	Type     EventType
	Progress *ProgressEvent
	Error    *ErrorEvent
	Complete *CompleteEvent
}

// Percentage rounds 100*processed/total to the nearest integer.
func Percentage(processed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(processed) / float64(total)))
}
