package http

import (
	"context"
	"time"

	"conductor/contexts/finance-core/payee-service/application"
	"conductor/contexts/finance-core/payee-service/domain/entities"
	httptransport "conductor/contexts/finance-core/payee-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) CreateSplitHandler(ctx context.Context, req httptransport.CreateSplitRequest) (httptransport.SplitResponse, error) {
	split, err := h.Service.CreateSplit(ctx, application.CreateSplitInput{
		ContributorID: req.ContributorID,
		PayeeEmail:    req.PayeeEmail,
		PayeeName:     req.PayeeName,
		Percent:       req.Percent,
	})
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return splitResponse(split), nil
}

func (h Handler) AcceptSplitHandler(ctx context.Context, splitID string) (httptransport.SplitResponse, error) {
	split, err := h.Service.AcceptSplit(ctx, splitID)
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return splitResponse(split), nil
}

func (h Handler) RevokeSplitHandler(ctx context.Context, splitID string) (httptransport.SplitResponse, error) {
	split, err := h.Service.RevokeSplit(ctx, splitID)
	if err != nil {
		return httptransport.SplitResponse{}, err
	}
	return splitResponse(split), nil
}

func (h Handler) ListByContributorHandler(ctx context.Context, contributorID string) (httptransport.SplitListResponse, error) {
	splits, err := h.Service.ListByContributor(ctx, contributorID)
	if err != nil {
		return httptransport.SplitListResponse{}, err
	}
	resp := httptransport.SplitListResponse{Items: make([]httptransport.SplitResponse, 0, len(splits))}
	for _, split := range splits {
		resp.Items = append(resp.Items, splitResponse(split))
	}
	return resp, nil
}

func splitResponse(split entities.Split) httptransport.SplitResponse {
	return httptransport.SplitResponse{
		SplitID:       split.SplitID,
		ContributorID: split.ContributorID,
		PayeeEmail:    split.PayeeEmail,
		PayeeName:     split.PayeeName,
		Percent:       split.Percent,
		Status:        string(split.Status),
		CreatedAt:     split.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     split.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
