package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	selectionerrors "conductor/contexts/bulk-ops/selection-service/domain/errors"
	selectionhttp "conductor/contexts/bulk-ops/selection-service/transport/http"
)

func (s *Server) handleSelectionGet(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := resolveSessionID(w, r)
	if !ok {
		return
	}
	var req selectionhttp.SelectionContextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSelectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.selection.Handler.GetHandler(r.Context(), sessionID, req)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelectionToggle(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := resolveSessionID(w, r)
	if !ok {
		return
	}
	var req selectionhttp.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSelectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.selection.Handler.ToggleHandler(r.Context(), sessionID, req)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelectionRange(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := resolveSessionID(w, r)
	if !ok {
		return
	}
	var req selectionhttp.RangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSelectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.selection.Handler.SelectRangeHandler(r.Context(), sessionID, req)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelectionAll(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := resolveSessionID(w, r)
	if !ok {
		return
	}
	var req selectionhttp.SelectAllRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSelectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.selection.Handler.SelectAllHandler(r.Context(), sessionID, req)
	if err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSelectionClear(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := resolveSessionID(w, r)
	if !ok {
		return
	}
	if err := s.selection.Handler.ClearHandler(r.Context(), sessionID); err != nil {
		writeSelectionDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func resolveSessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := strings.TrimSpace(r.Header.Get("X-Session-Id"))
	if sessionID == "" {
		writeSelectionError(w, http.StatusBadRequest, "missing_session", "X-Session-Id header is required")
		return "", false
	}
	return sessionID, true
}

func writeSelectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, selectionerrors.ErrSessionRequired):
		writeSelectionError(w, http.StatusBadRequest, "missing_session", err.Error())
	case errors.Is(err, selectionerrors.ErrInvalidEntityType):
		writeSelectionError(w, http.StatusUnprocessableEntity, "invalid_entity_type", err.Error())
	case errors.Is(err, selectionerrors.ErrInvalidRequest):
		writeSelectionError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeSelectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSelectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, selectionhttp.ErrorResponse{Code: code, Message: message})
}
