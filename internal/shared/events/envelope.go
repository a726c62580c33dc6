package events

import "time"

// Envelope is the shared event shape carried on the internal bus.
// Every context publishes through it so consumers can route on
// EventType/EntityType without knowing the producer.
type Envelope struct {
	EventID        string    `json:"event_id"`
	EventType      string    `json:"event_type"`
	SourceService  string    `json:"source_service"`
	OccurredAtUTC  time.Time `json:"occurred_at_utc"`
	CorrelationID  string    `json:"correlation_id"`
	EntityType     string    `json:"entity_type"`
	EntityID       string    `json:"entity_id"`
	PayloadVersion int       `json:"payload_version"`
	Payload        any       `json:"payload"`
}

// Event types emitted by the admin surface.
const (
	TypeWorkflowDecision  = "workflow.decision.recorded"
	TypeBulkOperationDone = "bulk.operation.finished"
	TypeUserStatusChanged = "user.status.changed"
)
