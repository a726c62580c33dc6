package http

type DecisionRequest struct {
	ReviewerName string   `json:"reviewer_name"`
	Checklist    []string `json:"checklist,omitempty"`
	Comments     string   `json:"comments,omitempty"`
}

type DecisionResponse struct {
	HistoryID string `json:"history_id"`
	AssetID   string `json:"asset_id"`
	Action    string `json:"action"`
	FromState string `json:"from_state"`
	ToState   string `json:"to_state"`
	CreatedAt string `json:"created_at"`
}

type HistoryItemResponse struct {
	HistoryID    string   `json:"history_id"`
	AssetID      string   `json:"asset_id"`
	ReviewerID   string   `json:"reviewer_id"`
	ReviewerName string   `json:"reviewer_name"`
	Action       string   `json:"action"`
	FromState    string   `json:"from_state"`
	ToState      string   `json:"to_state"`
	Checklist    []string `json:"checklist,omitempty"`
	Comments     string   `json:"comments,omitempty"`
	CreatedAt    string   `json:"created_at"`
}

type HistoryResponse struct {
	Items []HistoryItemResponse `json:"items"`
}

type TimelineStageResponse struct {
	State  string `json:"state"`
	Status string `json:"status"`
}

type TimelineResponse struct {
	Stages           []TimelineStageResponse `json:"stages"`
	AvailableActions []string                `json:"available_actions"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
