package http

type EntryResponse struct {
	EntryID    string `json:"entry_id"`
	ActorID    string `json:"actor_id,omitempty"`
	ActorName  string `json:"actor_name,omitempty"`
	Verb       string `json:"verb"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"`
	Summary    string `json:"summary,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Total int             `json:"total"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
