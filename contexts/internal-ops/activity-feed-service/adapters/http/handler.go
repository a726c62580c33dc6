package http

import (
	"context"
	"time"

	"conductor/contexts/internal-ops/activity-feed-service/application"
	"conductor/contexts/internal-ops/activity-feed-service/ports"
	httptransport "conductor/contexts/internal-ops/activity-feed-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) ListEntriesHandler(ctx context.Context, filter ports.EntryFilter) (httptransport.EntryListResponse, error) {
	entries, total, err := h.Service.List(ctx, filter)
	if err != nil {
		return httptransport.EntryListResponse{}, err
	}
	resp := httptransport.EntryListResponse{
		Items: make([]httptransport.EntryResponse, 0, len(entries)),
		Total: total,
	}
	for _, entry := range entries {
		resp.Items = append(resp.Items, httptransport.EntryResponse{
			EntryID:    entry.EntryID,
			ActorID:    entry.ActorID,
			ActorName:  entry.ActorName,
			Verb:       entry.Verb,
			EntityType: entry.EntityType,
			EntityID:   entry.EntityID,
			Summary:    entry.Summary,
			OccurredAt: entry.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}
