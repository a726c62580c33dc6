package http

import (
	"context"
	"time"

	"conductor/contexts/catalog/workflow-service/application"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	httptransport "conductor/contexts/catalog/workflow-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) DecideHandler(
	ctx context.Context,
	assetID string,
	reviewerID string,
	action workflow.Action,
	idempotencyKey string,
	req httptransport.DecisionRequest,
) (httptransport.DecisionResponse, error) {
	result, err := h.Service.Decide(ctx, idempotencyKey, application.DecisionInput{
		AssetID:      assetID,
		ReviewerID:   reviewerID,
		ReviewerName: req.ReviewerName,
		Action:       action,
		Checklist:    req.Checklist,
		Comments:     req.Comments,
	})
	if err != nil {
		return httptransport.DecisionResponse{}, err
	}
	return httptransport.DecisionResponse{
		HistoryID: result.HistoryItem.HistoryID,
		AssetID:   result.HistoryItem.AssetID,
		Action:    string(result.HistoryItem.Action),
		FromState: string(result.FromState),
		ToState:   string(result.ToState),
		CreatedAt: result.HistoryItem.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) HistoryHandler(ctx context.Context, assetID string) (httptransport.HistoryResponse, error) {
	items, err := h.Service.ListHistory(ctx, assetID)
	if err != nil {
		return httptransport.HistoryResponse{}, err
	}
	resp := httptransport.HistoryResponse{Items: make([]httptransport.HistoryItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, httptransport.HistoryItemResponse{
			HistoryID:    item.HistoryID,
			AssetID:      item.AssetID,
			ReviewerID:   item.ReviewerID,
			ReviewerName: item.ReviewerName,
			Action:       string(item.Action),
			FromState:    string(item.FromState),
			ToState:      string(item.ToState),
			Checklist:    item.Checklist,
			Comments:     item.Comments,
			CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return resp, nil
}

func (h Handler) TimelineHandler(ctx context.Context, assetID string) (httptransport.TimelineResponse, error) {
	stages, err := h.Service.Timeline(ctx, assetID)
	if err != nil {
		return httptransport.TimelineResponse{}, err
	}
	actions, err := h.Service.AvailableActions(ctx, assetID)
	if err != nil {
		return httptransport.TimelineResponse{}, err
	}
	resp := httptransport.TimelineResponse{
		Stages:           make([]httptransport.TimelineStageResponse, 0, len(stages)),
		AvailableActions: make([]string, 0, len(actions)),
	}
	for _, stage := range stages {
		resp.Stages = append(resp.Stages, httptransport.TimelineStageResponse{
			State:  string(stage.State),
			Status: string(stage.Status),
		})
	}
	for _, action := range actions {
		resp.AvailableActions = append(resp.AvailableActions, string(action))
	}
	return resp, nil
}
