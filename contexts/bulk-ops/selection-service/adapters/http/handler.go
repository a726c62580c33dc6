package http

import (
	"context"

	"conductor/contexts/bulk-ops/selection-service/application"
	"conductor/contexts/bulk-ops/selection-service/domain/selection"
	httptransport "conductor/contexts/bulk-ops/selection-service/transport/http"
)

type Handler struct {
	Service *application.Service
}

func (h Handler) GetHandler(ctx context.Context, sessionID string, req httptransport.SelectionContextRequest) (httptransport.SelectionResponse, error) {
	view, err := h.Service.Get(ctx, sessionID, toContext(req))
	if err != nil {
		return httptransport.SelectionResponse{}, err
	}
	return toResponse(view), nil
}

func (h Handler) ToggleHandler(ctx context.Context, sessionID string, req httptransport.ToggleRequest) (httptransport.SelectionResponse, error) {
	view, err := h.Service.Toggle(ctx, sessionID, toContext(req.Context), req.ID)
	if err != nil {
		return httptransport.SelectionResponse{}, err
	}
	return toResponse(view), nil
}

func (h Handler) SelectRangeHandler(ctx context.Context, sessionID string, req httptransport.RangeRequest) (httptransport.SelectionResponse, error) {
	view, err := h.Service.SelectRange(ctx, sessionID, toContext(req.Context), req.ToID)
	if err != nil {
		return httptransport.SelectionResponse{}, err
	}
	return toResponse(view), nil
}

func (h Handler) SelectAllHandler(ctx context.Context, sessionID string, req httptransport.SelectAllRequest) (httptransport.SelectionResponse, error) {
	view, err := h.Service.SelectAll(ctx, sessionID, toContext(req.Context))
	if err != nil {
		return httptransport.SelectionResponse{}, err
	}
	return toResponse(view), nil
}

func (h Handler) ClearHandler(ctx context.Context, sessionID string) error {
	return h.Service.Clear(ctx, sessionID)
}

func toContext(req httptransport.SelectionContextRequest) selection.Context {
	params := make([]selection.Param, 0, len(req.FilterParams))
	for _, param := range req.FilterParams {
		params = append(params, selection.Param{Key: param.Key, Value: param.Value})
	}
	return selection.Context{
		EntityType:   selection.EntityType(req.EntityType),
		FilterParams: params,
	}
}

func toResponse(view application.View) httptransport.SelectionResponse {
	params := make([]httptransport.FilterParam, 0, len(view.Context.FilterParams))
	for _, param := range view.Context.FilterParams {
		params = append(params, httptransport.FilterParam{Key: param.Key, Value: param.Value})
	}
	return httptransport.SelectionResponse{
		SelectedIDs:    view.SelectedIDs,
		SelectedCount:  view.SelectedCount,
		LastSelectedID: view.LastSelectedID,
		EntityType:     string(view.Context.EntityType),
		FilterParams:   params,
		IsAllSelected:  view.IsAllSelected,
	}
}
