package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	operationerrors "conductor/contexts/bulk-ops/operation-service/domain/errors"
	"conductor/contexts/bulk-ops/operation-service/domain/progress"
	operationhttp "conductor/contexts/bulk-ops/operation-service/transport/http"
)

// handleBulkRun streams the operation as server-sent events. Headers go out
// with the first event, so validation failures can still fall back to a
// plain JSON error response.
func (s *Server) handleBulkRun(w http.ResponseWriter, r *http.Request) {
	actorID := resolveActorID(r)
	if actorID == "" {
		writeOperationError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req operationhttp.BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOperationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	entityType := "asset"
	if strings.HasPrefix(r.URL.Path, "/users") {
		entityType = "user"
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	sink := progress.NewWriter(w)

	record, err := s.operations.Handler.RunHandler(r.Context(), entityType, actorID, req, sink)
	if err != nil {
		// Nothing was streamed yet for validation errors.
		w.Header().Set("Content-Type", "application/json")
		writeOperationDomainError(w, err)
		return
	}

	if record.Status == "completed" {
		if sessionID := strings.TrimSpace(r.Header.Get("X-Session-Id")); sessionID != "" {
			if err := s.selection.Service.Clear(r.Context(), sessionID); err != nil {
				s.logger.Warn("clearing selection after bulk completion failed",
					"event", "bulk_selection_clear_failed",
					"module", "internal/platform/httpserver",
					"layer", "platform",
					"session_id", sessionID,
					"operation_id", record.OperationID,
					"error", err,
				)
			}
		}
	}
}

func (s *Server) handleListOperations(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeOperationError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}
	resp, err := s.operations.Handler.ListOperationsHandler(r.Context(), limit)
	if err != nil {
		writeOperationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeOperationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, operationerrors.ErrNoIDs):
		writeOperationError(w, http.StatusBadRequest, "no_ids", err.Error())
	case errors.Is(err, operationerrors.ErrInvalidAction):
		writeOperationError(w, http.StatusUnprocessableEntity, "invalid_action", err.Error())
	case errors.Is(err, operationerrors.ErrInvalidEntityType):
		writeOperationError(w, http.StatusUnprocessableEntity, "invalid_entity_type", err.Error())
	case errors.Is(err, operationerrors.ErrItemNotFound):
		writeOperationError(w, http.StatusNotFound, "item_not_found", err.Error())
	default:
		writeOperationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeOperationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, operationhttp.ErrorResponse{Code: code, Message: message})
}
