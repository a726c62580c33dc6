package http

import (
	"context"
	"time"

	"conductor/contexts/bulk-ops/operation-service/application"
	"conductor/contexts/bulk-ops/operation-service/ports"
	httptransport "conductor/contexts/bulk-ops/operation-service/transport/http"
)

type Handler struct {
	Runner application.Runner
}

// RunHandler executes the bulk action, streaming events through sink. The
// platform layer owns the SSE response; this handler stays transport-free.
func (h Handler) RunHandler(
	ctx context.Context,
	entityType string,
	actorID string,
	req httptransport.BulkActionRequest,
	sink application.Sink,
) (httptransport.OperationRecordResponse, error) {
	record, err := h.Runner.Run(ctx, application.StartInput{
		EntityType: entityType,
		Action:     ports.Action(req.Action),
		IDs:        req.IDs,
		Payload:    req.Payload,
		ActorID:    actorID,
	}, sink)
	if err != nil {
		return httptransport.OperationRecordResponse{}, err
	}
	return toRecordResponse(record), nil
}

func (h Handler) ListOperationsHandler(ctx context.Context, limit int) (httptransport.OperationListResponse, error) {
	records, err := h.Runner.ListRecent(ctx, limit)
	if err != nil {
		return httptransport.OperationListResponse{}, err
	}
	resp := httptransport.OperationListResponse{Items: make([]httptransport.OperationRecordResponse, 0, len(records))}
	for _, record := range records {
		resp.Items = append(resp.Items, toRecordResponse(record))
	}
	return resp, nil
}

func toRecordResponse(record ports.OperationRecord) httptransport.OperationRecordResponse {
	resp := httptransport.OperationRecordResponse{
		OperationID: record.OperationID,
		EntityType:  record.EntityType,
		Action:      string(record.Action),
		ActorID:     record.ActorID,
		Total:       record.Total,
		Processed:   record.Processed,
		Status:      record.Status,
		FailedItem:  record.FailedItem,
		Error:       record.Error,
		StartedAt:   record.StartedAt.UTC().Format(time.RFC3339),
	}
	if !record.FinishedAt.IsZero() {
		resp.FinishedAt = record.FinishedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
