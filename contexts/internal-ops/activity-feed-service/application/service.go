package application

import (
	"context"
	"log/slog"
	"strings"

	"conductor/contexts/internal-ops/activity-feed-service/domain/entities"
	domainerrors "conductor/contexts/internal-ops/activity-feed-service/domain/errors"
	"conductor/contexts/internal-ops/activity-feed-service/ports"
)

type Service struct {
	Entries ports.EntryRepository
	Clock   ports.Clock
	IDs     ports.IDGenerator
	Logger  *slog.Logger
}

type AppendInput struct {
	ActorID    string
	ActorName  string
	Verb       string
	EntityType string
	EntityID   string
	Summary    string
}

func (s Service) Append(ctx context.Context, input AppendInput) (entities.Entry, error) {
	input.Verb = strings.TrimSpace(input.Verb)
	input.EntityType = strings.TrimSpace(input.EntityType)
	if input.Verb == "" || input.EntityType == "" {
		return entities.Entry{}, domainerrors.ErrInvalidRequest
	}

	entryID, err := s.IDs.NewID(ctx)
	if err != nil {
		return entities.Entry{}, err
	}
	entry := entities.Entry{
		EntryID:    entryID,
		ActorID:    strings.TrimSpace(input.ActorID),
		ActorName:  strings.TrimSpace(input.ActorName),
		Verb:       input.Verb,
		EntityType: input.EntityType,
		EntityID:   strings.TrimSpace(input.EntityID),
		Summary:    strings.TrimSpace(input.Summary),
		OccurredAt: s.Clock.Now().UTC(),
	}
	if err := s.Entries.AppendEntry(ctx, entry); err != nil {
		return entities.Entry{}, err
	}
	return entry, nil
}

func (s Service) List(ctx context.Context, filter ports.EntryFilter) ([]entities.Entry, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.Entries.ListEntries(ctx, filter)
}
