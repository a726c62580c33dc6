package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	activityerrors "conductor/contexts/internal-ops/activity-feed-service/domain/errors"
	activityports "conductor/contexts/internal-ops/activity-feed-service/ports"
	activityhttp "conductor/contexts/internal-ops/activity-feed-service/transport/http"
)

func (s *Server) handleListActivity(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := activityports.EntryFilter{
		EntityType: query.Get("entity_type"),
		ActorID:    query.Get("actor_id"),
	}
	if limitRaw := query.Get("limit"); limitRaw != "" {
		limit, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeActivityError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		filter.Limit = limit
	}
	if offsetRaw := query.Get("offset"); offsetRaw != "" {
		offset, err := strconv.Atoi(offsetRaw)
		if err != nil {
			writeActivityError(w, http.StatusBadRequest, "invalid_offset", "offset must be an integer")
			return
		}
		filter.Offset = offset
	}

	resp, err := s.activity.Handler.ListEntriesHandler(r.Context(), filter)
	if err != nil {
		writeActivityDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeActivityDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, activityerrors.ErrInvalidRequest):
		writeActivityError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeActivityError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeActivityError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, activityhttp.ErrorResponse{Code: code, Message: message})
}
