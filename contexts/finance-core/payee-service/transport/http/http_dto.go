package http

type CreateSplitRequest struct {
	ContributorID string `json:"contributor_id"`
	PayeeEmail    string `json:"payee_email"`
	PayeeName     string `json:"payee_name,omitempty"`
	Percent       int    `json:"percent"`
}

type SplitResponse struct {
	SplitID       string `json:"split_id"`
	ContributorID string `json:"contributor_id"`
	PayeeEmail    string `json:"payee_email"`
	PayeeName     string `json:"payee_name,omitempty"`
	Percent       int    `json:"percent"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type SplitListResponse struct {
	Items []SplitResponse `json:"items"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
