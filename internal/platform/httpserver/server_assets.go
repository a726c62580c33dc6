package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	assetentities "conductor/contexts/catalog/asset-service/domain/entities"
	asseterrors "conductor/contexts/catalog/asset-service/domain/errors"
	assetports "conductor/contexts/catalog/asset-service/ports"
	assethttp "conductor/contexts/catalog/asset-service/transport/http"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	filter, ok := assetFilterFromQuery(w, r)
	if !ok {
		return
	}
	resp, err := s.assets.Handler.ListAssetsHandler(r.Context(), filter)
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListAssetIDs(w http.ResponseWriter, r *http.Request) {
	filter, ok := assetFilterFromQuery(w, r)
	if !ok {
		return
	}
	resp, err := s.assets.Handler.ListAssetIDsHandler(r.Context(), filter)
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var req assethttp.CreateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssetError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assets.Handler.CreateAssetHandler(r.Context(), req)
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assets.Handler.GetAssetHandler(r.Context(), r.PathValue("asset_id"))
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req assethttp.UpdateAssetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssetError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assets.Handler.UpdateAssetHandler(r.Context(), r.PathValue("asset_id"), req)
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Handler.DeleteAssetHandler(r.Context(), r.PathValue("asset_id")); err != nil {
		writeAssetDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAssignCollection(w http.ResponseWriter, r *http.Request) {
	var req assethttp.AssignCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssetError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	if err := s.assets.Handler.AssignCollectionHandler(r.Context(), r.PathValue("asset_id"), req); err != nil {
		writeAssetDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRemoveCollection(w http.ResponseWriter, r *http.Request) {
	if err := s.assets.Handler.RemoveCollectionHandler(r.Context(), r.PathValue("asset_id")); err != nil {
		writeAssetDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateCollection(w http.ResponseWriter, r *http.Request) {
	var req assethttp.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAssetError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.assets.Handler.CreateCollectionHandler(r.Context(), req)
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCollections(w http.ResponseWriter, r *http.Request) {
	resp, err := s.assets.Handler.ListCollectionsHandler(r.Context())
	if err != nil {
		writeAssetDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func assetFilterFromQuery(w http.ResponseWriter, r *http.Request) (assetports.AssetListFilter, bool) {
	query := r.URL.Query()
	filter := assetports.AssetListFilter{
		Category:      assetentities.Category(query.Get("category")),
		WorkflowState: query.Get("workflow_state"),
		ContributorID: query.Get("contributor_id"),
		CollectionID:  query.Get("collection_id"),
		Search:        query.Get("search"),
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeAssetError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return assetports.AssetListFilter{}, false
		}
		filter.Limit = limit
	}
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		offset, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeAssetError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return assetports.AssetListFilter{}, false
		}
		filter.Offset = offset
	}
	return filter, true
}

func writeAssetDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, asseterrors.ErrAssetNotFound):
		writeAssetError(w, http.StatusNotFound, "asset_not_found", err.Error())
	case errors.Is(err, asseterrors.ErrCollectionNotFound):
		writeAssetError(w, http.StatusNotFound, "collection_not_found", err.Error())
	case errors.Is(err, asseterrors.ErrInvalidCategory):
		writeAssetError(w, http.StatusUnprocessableEntity, "invalid_category", err.Error())
	case errors.Is(err, asseterrors.ErrDetailsMismatch):
		writeAssetError(w, http.StatusUnprocessableEntity, "details_mismatch", err.Error())
	case errors.Is(err, asseterrors.ErrInvalidRequest):
		writeAssetError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeAssetError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeAssetError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, assethttp.ErrorResponse{Code: code, Message: message})
}
