package http

import (
	"encoding/json"
	"fmt"

	"conductor/contexts/catalog/asset-service/domain/entities"
)

type CreateAssetRequest struct {
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ContributorID string          `json:"contributor_id"`
	Category      string          `json:"category"`
	Details       json.RawMessage `json:"details,omitempty"`
	InitialState  string          `json:"initial_state,omitempty"`
}

type UpdateAssetRequest struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Details     json.RawMessage `json:"details,omitempty"`
}

type AssetResponse struct {
	AssetID       string          `json:"asset_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	ContributorID string          `json:"contributor_id"`
	Category      string          `json:"category"`
	Details       json.RawMessage `json:"details,omitempty"`
	WorkflowState string          `json:"workflow_state"`
	CollectionID  string          `json:"collection_id,omitempty"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}

type AssetListResponse struct {
	Items []AssetResponse `json:"items"`
	Total int             `json:"total"`
}

type AssetIDListResponse struct {
	IDs []string `json:"ids"`
}

type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CuratorID   string `json:"curator_id,omitempty"`
}

type CollectionResponse struct {
	CollectionID string `json:"collection_id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	CuratorID    string `json:"curator_id,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

type CollectionListResponse struct {
	Items []CollectionResponse `json:"items"`
}

type AssignCollectionRequest struct {
	CollectionID string `json:"collection_id"`
}

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeDetails maps the raw details payload onto the concrete variant for
// the given category. A nil payload is allowed; a payload for an unknown
// category is not.
func DecodeDetails(category entities.Category, raw json.RawMessage) (entities.Details, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch category {
	case entities.CategoryMusic:
		var d entities.MusicDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case entities.CategorySFX:
		var d entities.SFXDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case entities.CategoryMotionGraphics:
		var d entities.MotionGraphicsDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case entities.CategoryLUT:
		var d entities.LUTDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case entities.CategoryStockFootage:
		var d entities.StockFootageDetails
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown category %q", category)
	}
}

// EncodeDetails renders a Details value back to its wire form. A nil value
// encodes as an absent field.
func EncodeDetails(details entities.Details) (json.RawMessage, error) {
	if details == nil {
		return nil, nil
	}
	return json.Marshal(details)
}
