package http

type FilterParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type SelectionContextRequest struct {
	EntityType   string        `json:"entity_type"`
	FilterParams []FilterParam `json:"filter_params,omitempty"`
}

type ToggleRequest struct {
	Context SelectionContextRequest `json:"context"`
	ID      string                  `json:"id"`
}

type RangeRequest struct {
	Context SelectionContextRequest `json:"context"`
	ToID    string                  `json:"to_id"`
}

type SelectAllRequest struct {
	Context SelectionContextRequest `json:"context"`
}

type SelectionResponse struct {
	SelectedIDs    []string      `json:"selected_ids"`
	SelectedCount  int           `json:"selected_count"`
	LastSelectedID string        `json:"last_selected_id,omitempty"`
	EntityType     string        `json:"entity_type,omitempty"`
	FilterParams   []FilterParam `json:"filter_params,omitempty"`
	IsAllSelected  bool          `json:"is_all_selected"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
