package application

import (
	"context"
	"log/slog"
	"strings"

	"conductor/contexts/finance-core/payee-service/domain/entities"
	domainerrors "conductor/contexts/finance-core/payee-service/domain/errors"
	"conductor/contexts/finance-core/payee-service/ports"
)

type Service struct {
	Splits ports.SplitRepository
	Clock  ports.Clock
	IDs    ports.IDGenerator
	Logger *slog.Logger
}

type CreateSplitInput struct {
	ContributorID string
	PayeeEmail    string
	PayeeName     string
	Percent       int
}

// CreateSplit registers a pending share. The 100 percent cap counts active
// AND pending splits so two concurrent invitations cannot both be accepted
// into an over-allocated contributor.
func (s Service) CreateSplit(ctx context.Context, input CreateSplitInput) (entities.Split, error) {
	input.ContributorID = strings.TrimSpace(input.ContributorID)
	input.PayeeEmail = strings.ToLower(strings.TrimSpace(input.PayeeEmail))
	if input.ContributorID == "" || input.PayeeEmail == "" || !strings.Contains(input.PayeeEmail, "@") {
		return entities.Split{}, domainerrors.ErrInvalidRequest
	}
	if input.Percent < 1 || input.Percent > 100 {
		return entities.Split{}, domainerrors.ErrInvalidPercent
	}

	existing, err := s.Splits.ListByContributor(ctx, input.ContributorID)
	if err != nil {
		return entities.Split{}, err
	}
	allocated := 0
	for _, split := range existing {
		if split.Status != entities.SplitRevoked {
			allocated += split.Percent
		}
	}
	if allocated+input.Percent > 100 {
		return entities.Split{}, domainerrors.ErrShareExceeded
	}

	splitID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.Split{}, err
	}
	now := s.Clock.Now().UTC()
	split := entities.Split{
		SplitID:       splitID,
		ContributorID: input.ContributorID,
		PayeeEmail:    input.PayeeEmail,
		PayeeName:     strings.TrimSpace(input.PayeeName),
		Percent:       input.Percent,
		Status:        entities.SplitPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Splits.CreateSplit(ctx, split); err != nil {
		return entities.Split{}, err
	}
	return split, nil
}

// AcceptSplit moves a pending share to active.
func (s Service) AcceptSplit(ctx context.Context, splitID string) (entities.Split, error) {
	split, err := s.Splits.GetSplit(ctx, strings.TrimSpace(splitID))
	if err != nil {
		return entities.Split{}, err
	}
	if split.Status != entities.SplitPending {
		return entities.Split{}, domainerrors.ErrSplitNotPending
	}
	split.Status = entities.SplitActive
	split.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Splits.UpdateSplit(ctx, split); err != nil {
		return entities.Split{}, err
	}
	return split, nil
}

// RevokeSplit retires a share from any non-revoked state.
func (s Service) RevokeSplit(ctx context.Context, splitID string) (entities.Split, error) {
	split, err := s.Splits.GetSplit(ctx, strings.TrimSpace(splitID))
	if err != nil {
		return entities.Split{}, err
	}
	if split.Status == entities.SplitRevoked {
		return entities.Split{}, domainerrors.ErrSplitRevoked
	}
	split.Status = entities.SplitRevoked
	split.UpdatedAt = s.Clock.Now().UTC()
	if err := s.Splits.UpdateSplit(ctx, split); err != nil {
		return entities.Split{}, err
	}
	return split, nil
}

func (s Service) ListByContributor(ctx context.Context, contributorID string) ([]entities.Split, error) {
	contributorID = strings.TrimSpace(contributorID)
	if contributorID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Splits.ListByContributor(ctx, contributorID)
}
