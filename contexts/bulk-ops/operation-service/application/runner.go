package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domainerrors "conductor/contexts/bulk-ops/operation-service/domain/errors"
	"conductor/contexts/bulk-ops/operation-service/domain/progress"
	"conductor/contexts/bulk-ops/operation-service/ports"
)

// Sink receives protocol events as the runner works. The SSE writer
// satisfies it; tests substitute a recorder.
type Sink interface {
	Progress(event progress.ProgressEvent) error
	Error(event progress.ErrorEvent) error
	Complete(event progress.CompleteEvent) error
}

// Runner executes a bulk action over a batch of IDs, streaming progress to
// the sink and persisting an audit record. Items are processed in request
// order; the processed count only ever grows.
type Runner struct {
	Applier  ports.ActionApplier
	Repo     ports.Repository
	Activity ports.ActivityPublisher
	Clock    ports.Clock
	IDs      ports.IDGenerator
	Logger   *slog.Logger
}

type StartInput struct {
	EntityType string
	Action     ports.Action
	IDs        []string
	Payload    map[string]string
	ActorID    string
}

// Run drives the whole operation. A failed item terminates the stream with
// an error event; items completed before it stay completed (at-least-once,
// no rollback). A broken sink stops event delivery but not the work: the
// client saw a connection drop, the server still finishes the batch.
func (r Runner) Run(ctx context.Context, input StartInput, sink Sink) (ports.OperationRecord, error) {
	input.EntityType = strings.TrimSpace(input.EntityType)
	ids := dedupeIDs(input.IDs)
	if len(ids) == 0 {
		return ports.OperationRecord{}, domainerrors.ErrNoIDs
	}
	switch input.Action {
	case ports.ActionApprove, ports.ActionReject, ports.ActionDelete, ports.ActionSuspend, ports.ActionActivate:
	default:
		return ports.OperationRecord{}, domainerrors.ErrInvalidAction
	}

	operationID, err := r.IDs.NewID(ctx)
	if err != nil {
		return ports.OperationRecord{}, err
	}

	startedAt := r.Clock.Now().UTC()
	record := ports.OperationRecord{
		OperationID: operationID,
		EntityType:  input.EntityType,
		Action:      input.Action,
		ActorID:     strings.TrimSpace(input.ActorID),
		Total:       len(ids),
		Status:      ports.OperationRunning,
		StartedAt:   startedAt,
	}
	if err := r.Repo.SaveOperation(ctx, record); err != nil {
		return ports.OperationRecord{}, err
	}

	logger := resolveLogger(r.Logger)
	sinkBroken := false
	emit := func(send func() error) {
		if sinkBroken {
			return
		}
		if err := send(); err != nil {
			sinkBroken = true
			logger.Warn("bulk progress sink broke, continuing without events",
				"event", "bulk_sink_broken",
				"module", "bulk-ops/operation-service",
				"layer", "application",
				"operation_id", operationID,
				"error", err.Error(),
			)
		}
	}

	total := len(ids)
	for i, id := range ids {
		label, err := r.Applier.Apply(ctx, input.EntityType, input.Action, id, input.Payload)
		if err != nil {
			record.Processed = i
			record.Status = ports.OperationFailed
			record.FailedItem = failedLabel(label, id)
			record.Error = err.Error()
			record.FinishedAt = r.Clock.Now().UTC()
			emit(func() error {
				return sink.Error(progress.ErrorEvent{
					Message:    err.Error(),
					Processed:  i,
					Total:      total,
					FailedItem: record.FailedItem,
				})
			})
			r.finish(ctx, record)
			return record, nil
		}

		processed := i + 1
		record.Processed = processed
		emit(func() error {
			return sink.Progress(progress.ProgressEvent{
				Processed:                 processed,
				Total:                     total,
				Percentage:                progress.Percentage(processed, total),
				CurrentItem:               label,
				EstimatedSecondsRemaining: estimateRemaining(startedAt, r.Clock.Now().UTC(), processed, total),
			})
		})
	}

	record.Status = ports.OperationCompleted
	record.FinishedAt = r.Clock.Now().UTC()
	emit(func() error {
		return sink.Complete(progress.CompleteEvent{
			Processed:   total,
			Total:       total,
			OperationID: operationID,
		})
	})
	r.finish(ctx, record)
	return record, nil
}

// ListRecent returns the latest operation audit rows, newest first.
func (r Runner) ListRecent(ctx context.Context, limit int) ([]ports.OperationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return r.Repo.ListRecentOperations(ctx, limit)
}

func (r Runner) finish(ctx context.Context, record ports.OperationRecord) {
	logger := resolveLogger(r.Logger)
	if err := r.Repo.SaveOperation(ctx, record); err != nil {
		logger.Error("bulk operation record save failed",
			"event", "bulk_record_save_failed",
			"module", "bulk-ops/operation-service",
			"layer", "application",
			"operation_id", record.OperationID,
			"error", err.Error(),
		)
	}
	if r.Activity != nil {
		if err := r.Activity.PublishOperation(ctx, record); err != nil {
			logger.Warn("bulk operation activity publish failed",
				"event", "bulk_activity_publish_failed",
				"module", "bulk-ops/operation-service",
				"layer", "application",
				"operation_id", record.OperationID,
				"error", err.Error(),
			)
		}
	}
	logger.Info("bulk operation finished",
		"event", "bulk_operation_finished",
		"module", "bulk-ops/operation-service",
		"layer", "application",
		"operation_id", record.OperationID,
		"entity_type", record.EntityType,
		"action", string(record.Action),
		"status", record.Status,
		"processed", record.Processed,
		"total", record.Total,
	)
}

// estimateRemaining projects the per-item rate so far over what is left.
func estimateRemaining(startedAt, now time.Time, processed, total int) int {
	if processed <= 0 || processed >= total {
		return 0
	}
	elapsed := now.Sub(startedAt).Seconds()
	if elapsed <= 0 {
		return 0
	}
	perItem := elapsed / float64(processed)
	remaining := int(perItem * float64(total-processed))
	if remaining < 0 {
		return 0
	}
	return remaining
}

func dedupeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func failedLabel(label, id string) string {
	if label != "" {
		return label
	}
	return id
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}
