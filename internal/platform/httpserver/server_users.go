package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	userentities "conductor/contexts/identity-access/user-service/domain/entities"
	usererrors "conductor/contexts/identity-access/user-service/domain/errors"
	userports "conductor/contexts/identity-access/user-service/ports"
	userhttp "conductor/contexts/identity-access/user-service/transport/http"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	filter, ok := userFilterFromQuery(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.ListUsersHandler(r.Context(), filter)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUserIDs(w http.ResponseWriter, r *http.Request) {
	filter, ok := userFilterFromQuery(w, r)
	if !ok {
		return
	}
	resp, err := s.users.Handler.ListUserIDsHandler(r.Context(), filter)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userhttp.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.users.Handler.CreateUserHandler(r.Context(), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.users.Handler.GetUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userhttp.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeUserError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.users.Handler.UpdateUserHandler(r.Context(), r.PathValue("user_id"), req)
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSuspendUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.users.Handler.SuspendUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleActivateUser(w http.ResponseWriter, r *http.Request) {
	resp, err := s.users.Handler.ActivateUserHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeUserDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func userFilterFromQuery(w http.ResponseWriter, r *http.Request) (userports.UserListFilter, bool) {
	query := r.URL.Query()
	filter := userports.UserListFilter{
		Role:   userentities.Role(query.Get("role")),
		Status: userentities.Status(query.Get("status")),
		Search: query.Get("search"),
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeUserError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return userports.UserListFilter{}, false
		}
		filter.Limit = limit
	}
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		offset, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeUserError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return userports.UserListFilter{}, false
		}
		filter.Offset = offset
	}
	return filter, true
}

func writeUserDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usererrors.ErrUserNotFound):
		writeUserError(w, http.StatusNotFound, "user_not_found", err.Error())
	case errors.Is(err, usererrors.ErrEmailTaken):
		writeUserError(w, http.StatusConflict, "email_taken", err.Error())
	case errors.Is(err, usererrors.ErrAlreadyInState):
		writeUserError(w, http.StatusConflict, "already_in_state", err.Error())
	case errors.Is(err, usererrors.ErrInvalidRole):
		writeUserError(w, http.StatusUnprocessableEntity, "invalid_role", err.Error())
	case errors.Is(err, usererrors.ErrInvalidRequest):
		writeUserError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeUserError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeUserError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, userhttp.ErrorResponse{Code: code, Message: message})
}
