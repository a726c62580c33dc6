package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	selectionpostgres "conductor/contexts/bulk-ops/selection-service/adapters/postgres"
	assetpostgres "conductor/contexts/catalog/asset-service/adapters/postgres"
	activityapplication "conductor/contexts/internal-ops/activity-feed-service/application"
	"conductor/internal/platform/messaging"
	"conductor/internal/shared/events"
)

// activityConsumer projects bus events into the activity feed. It is the
// worker-side twin of the API's direct writes; deployments enable one or
// the other per producer.
type activityConsumer struct {
	feed          activityapplication.Service
	bus           *messaging.Kafka
	topic         string
	consumerGroup string
	logger        *slog.Logger
}

func (c activityConsumer) Start(ctx context.Context) error {
	return c.bus.Subscribe(ctx, c.topic, c.consumerGroup, c.handle)
}

func (c activityConsumer) handle(ctx context.Context, event events.Envelope) error {
	_, err := c.feed.Append(ctx, activityapplication.AppendInput{
		Verb:       event.EventType,
		EntityType: event.EntityType,
		EntityID:   event.EntityID,
		Summary:    fmt.Sprintf("%s from %s", event.EventType, event.SourceService),
	})
	return err
}

// selectionSweeper drops selection blobs whose session has gone idle past
// the configured TTL.
type selectionSweeper struct {
	store  *selectionpostgres.Store
	clock  assetpostgres.SystemClock
	maxAge time.Duration
	logger *slog.Logger
}

func (s selectionSweeper) RunOnce(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.maxAge)
	swept, err := s.store.SweepStale(ctx, cutoff)
	if err != nil {
		return err
	}
	if swept > 0 && s.logger != nil {
		s.logger.Info("stale selections swept",
			"event", "selection_sweep",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"swept", swept,
			"cutoff", cutoff.Format(time.RFC3339),
		)
	}
	return nil
}
