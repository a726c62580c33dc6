package http

type BulkActionRequest struct {
	Action  string            `json:"action"`
	IDs     []string          `json:"ids"`
	Payload map[string]string `json:"payload,omitempty"`
}

type OperationRecordResponse struct {
	OperationID string `json:"operation_id"`
	EntityType  string `json:"entity_type"`
	Action      string `json:"action"`
	ActorID     string `json:"actor_id,omitempty"`
	Total       int    `json:"total"`
	Processed   int    `json:"processed"`
	Status      string `json:"status"`
	FailedItem  string `json:"failed_item,omitempty"`
	Error       string `json:"error,omitempty"`
	StartedAt   string `json:"started_at"`
	FinishedAt  string `json:"finished_at,omitempty"`
}

type OperationListResponse struct {
	Items []OperationRecordResponse `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
