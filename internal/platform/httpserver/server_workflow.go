package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	workflowerrors "conductor/contexts/catalog/workflow-service/domain/errors"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	workflowhttp "conductor/contexts/catalog/workflow-service/transport/http"
)

func (s *Server) handleWorkflowDecision(w http.ResponseWriter, r *http.Request) {
	reviewerID := resolveActorID(r)
	if reviewerID == "" {
		writeWorkflowError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	action := workflow.Action(r.PathValue("action"))
	if action == "" {
		// Routed via a named decision path like /approve.
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		action = workflow.Action(parts[len(parts)-1])
	}

	var req workflowhttp.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeWorkflowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.workflow.Handler.DecideHandler(
		r.Context(),
		r.PathValue("asset_id"),
		reviewerID,
		action,
		r.Header.Get("Idempotency-Key"),
		req,
	)
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workflow.Handler.HistoryHandler(r.Context(), r.PathValue("asset_id"))
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWorkflowTimeline(w http.ResponseWriter, r *http.Request) {
	resp, err := s.workflow.Handler.TimelineHandler(r.Context(), r.PathValue("asset_id"))
	if err != nil {
		writeWorkflowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeWorkflowDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflowerrors.ErrAssetNotFound):
		writeWorkflowError(w, http.StatusNotFound, "asset_not_found", err.Error())
	case errors.Is(err, workflowerrors.ErrActionNotAllowed):
		writeWorkflowError(w, http.StatusConflict, "action_not_allowed", err.Error())
	case errors.Is(err, workflowerrors.ErrCommentsRequired):
		writeWorkflowError(w, http.StatusUnprocessableEntity, "comments_required", err.Error())
	case errors.Is(err, workflowerrors.ErrIdempotencyKeyRequired):
		writeWorkflowError(w, http.StatusBadRequest, "idempotency_key_required", err.Error())
	case errors.Is(err, workflowerrors.ErrIdempotencyConflict):
		writeWorkflowError(w, http.StatusConflict, "idempotency_conflict", err.Error())
	case errors.Is(err, workflowerrors.ErrInvalidRequest):
		writeWorkflowError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeWorkflowError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeWorkflowError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, workflowhttp.ErrorResponse{Code: code, Message: message})
}
