package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	payeeerrors "conductor/contexts/finance-core/payee-service/domain/errors"
	payeehttp "conductor/contexts/finance-core/payee-service/transport/http"
)

func (s *Server) handleCreateSplit(w http.ResponseWriter, r *http.Request) {
	var req payeehttp.CreateSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writePayeeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.payees.Handler.CreateSplitHandler(r.Context(), req)
	if err != nil {
		writePayeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleAcceptSplit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.payees.Handler.AcceptSplitHandler(r.Context(), r.PathValue("split_id"))
	if err != nil {
		writePayeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRevokeSplit(w http.ResponseWriter, r *http.Request) {
	resp, err := s.payees.Handler.RevokeSplitHandler(r.Context(), r.PathValue("split_id"))
	if err != nil {
		writePayeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSplits(w http.ResponseWriter, r *http.Request) {
	resp, err := s.payees.Handler.ListByContributorHandler(r.Context(), r.PathValue("contributor_id"))
	if err != nil {
		writePayeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writePayeeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payeeerrors.ErrSplitNotFound):
		writePayeeError(w, http.StatusNotFound, "split_not_found", err.Error())
	case errors.Is(err, payeeerrors.ErrShareExceeded):
		writePayeeError(w, http.StatusConflict, "share_exceeded", err.Error())
	case errors.Is(err, payeeerrors.ErrSplitNotPending),
		errors.Is(err, payeeerrors.ErrSplitRevoked):
		writePayeeError(w, http.StatusConflict, "invalid_split_state", err.Error())
	case errors.Is(err, payeeerrors.ErrInvalidPercent):
		writePayeeError(w, http.StatusUnprocessableEntity, "invalid_percent", err.Error())
	case errors.Is(err, payeeerrors.ErrInvalidRequest):
		writePayeeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writePayeeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writePayeeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, payeehttp.ErrorResponse{Code: code, Message: message})
}
