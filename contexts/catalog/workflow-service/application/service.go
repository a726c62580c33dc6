package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	domainerrors "conductor/contexts/catalog/workflow-service/domain/errors"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	"conductor/contexts/catalog/workflow-service/ports"
)

type Service struct {
	Assets         ports.AssetStateStore
	Repo           ports.Repository
	Idempotency    ports.IdempotencyStore
	Activity       ports.ActivityPublisher
	Clock          ports.Clock
	IDs            ports.IDGenerator
	IdempotencyTTL time.Duration
	Logger         *slog.Logger
}

type DecisionInput struct {
	AssetID      string
	ReviewerID   string
	ReviewerName string
	Action       workflow.Action
	Checklist    []string
	Comments     string
}

type DecisionResult struct {
	HistoryItem ports.HistoryItem
	FromState   workflow.State
	ToState     workflow.State
}

// Decide validates the action against the asset's transition table, advances
// the authoritative state, and appends the history record. Illegal actions
// fail before any state is touched.
func (s Service) Decide(ctx context.Context, idempotencyKey string, input DecisionInput) (DecisionResult, error) {
	idempotencyKey = strings.TrimSpace(idempotencyKey)
	input.AssetID = strings.TrimSpace(input.AssetID)
	input.ReviewerID = strings.TrimSpace(input.ReviewerID)
	input.Comments = strings.TrimSpace(input.Comments)

	if idempotencyKey == "" {
		return DecisionResult{}, domainerrors.ErrIdempotencyKeyRequired
	}
	if input.AssetID == "" || input.ReviewerID == "" || input.Action == "" {
		return DecisionResult{}, domainerrors.ErrInvalidRequest
	}
	if input.Action == workflow.ActionReject && input.Comments == "" {
		return DecisionResult{}, domainerrors.ErrCommentsRequired
	}

	now := s.Clock.Now().UTC()
	ttl := s.IdempotencyTTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	requestHash := hashStrings(input.AssetID, input.ReviewerID, string(input.Action), input.Comments, strings.Join(input.Checklist, "|"))

	existing, err := s.Idempotency.Get(ctx, idempotencyKey, now)
	if err != nil {
		return DecisionResult{}, err
	}
	if existing != nil {
		if existing.RequestHash != requestHash {
			return DecisionResult{}, domainerrors.ErrIdempotencyConflict
		}
		var cached DecisionResult
		if err := json.Unmarshal(existing.ResponseBody, &cached); err != nil {
			return DecisionResult{}, err
		}
		return cached, nil
	}

	asset, err := s.Assets.GetAssetRef(ctx, input.AssetID)
	if err != nil {
		return DecisionResult{}, err
	}

	table := workflow.TableFor(asset.Category)
	next, ok := table.NextState(asset.State, input.Action)
	if !ok {
		return DecisionResult{}, domainerrors.ErrActionNotAllowed
	}

	if err := s.Idempotency.Reserve(ctx, idempotencyKey, requestHash, now.Add(ttl)); err != nil {
		return DecisionResult{}, err
	}

	historyID, err := s.IDs.NewID(ctx)
	if err != nil {
		return DecisionResult{}, err
	}
	item := ports.HistoryItem{
		HistoryID:    historyID,
		AssetID:      input.AssetID,
		ReviewerID:   input.ReviewerID,
		ReviewerName: strings.TrimSpace(input.ReviewerName),
		Action:       input.Action,
		FromState:    asset.State,
		ToState:      next,
		Checklist:    input.Checklist,
		Comments:     input.Comments,
		CreatedAt:    now,
	}

	if err := s.Assets.SetAssetState(ctx, input.AssetID, next); err != nil {
		return DecisionResult{}, err
	}
	if err := s.Repo.AppendHistory(ctx, item); err != nil {
		return DecisionResult{}, err
	}
	if s.Activity != nil {
		if err := s.Activity.PublishDecision(ctx, item); err != nil {
			resolveLogger(s.Logger).Warn("activity publish failed",
				"event", "workflow_activity_publish_failed",
				"module", "catalog/workflow-service",
				"layer", "application",
				"asset_id", input.AssetID,
				"error", err.Error(),
			)
		}
	}

	result := DecisionResult{HistoryItem: item, FromState: asset.State, ToState: next}
	body, err := json.Marshal(result)
	if err != nil {
		return DecisionResult{}, err
	}
	if err := s.Idempotency.Complete(ctx, idempotencyKey, body, now); err != nil {
		return DecisionResult{}, err
	}

	resolveLogger(s.Logger).Info("workflow decision recorded",
		"event", "workflow_decision_recorded",
		"module", "catalog/workflow-service",
		"layer", "application",
		"asset_id", input.AssetID,
		"action", string(input.Action),
		"from_state", string(asset.State),
		"to_state", string(next),
	)
	return result, nil
}

func (s Service) Approve(ctx context.Context, idempotencyKey string, input DecisionInput) (DecisionResult, error) {
	input.Action = workflow.ActionApprove
	return s.Decide(ctx, idempotencyKey, input)
}

func (s Service) Reject(ctx context.Context, idempotencyKey string, input DecisionInput) (DecisionResult, error) {
	input.Action = workflow.ActionReject
	return s.Decide(ctx, idempotencyKey, input)
}

func (s Service) Unpublish(ctx context.Context, idempotencyKey string, input DecisionInput) (DecisionResult, error) {
	input.Action = workflow.ActionUnpublish
	return s.Decide(ctx, idempotencyKey, input)
}

func (s Service) Submit(ctx context.Context, idempotencyKey string, input DecisionInput) (DecisionResult, error) {
	input.Action = workflow.ActionSubmit
	return s.Decide(ctx, idempotencyKey, input)
}

// ListHistory returns the append-only transition log, oldest first.
func (s Service) ListHistory(ctx context.Context, assetID string) ([]ports.HistoryItem, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, domainerrors.ErrInvalidRequest
	}
	return s.Repo.ListHistory(ctx, assetID)
}

// AvailableActions lists legal actions for the asset's current state so the
// UI only renders controls that cannot fail legality checks.
func (s Service) AvailableActions(ctx context.Context, assetID string) ([]workflow.Action, error) {
	asset, err := s.Assets.GetAssetRef(ctx, strings.TrimSpace(assetID))
	if err != nil {
		return nil, err
	}
	return workflow.TableFor(asset.Category).AvailableActions(asset.State), nil
}

// Timeline derives per-stage display statuses from the asset's state and
// history.
func (s Service) Timeline(ctx context.Context, assetID string) ([]workflow.TimelineStage, error) {
	assetID = strings.TrimSpace(assetID)
	asset, err := s.Assets.GetAssetRef(ctx, assetID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.ListHistory(ctx, assetID)
	if err != nil {
		return nil, err
	}
	records := make([]workflow.HistoryRecord, 0, len(items))
	for _, item := range items {
		records = append(records, workflow.HistoryRecord{FromState: item.FromState, ToState: item.ToState})
	}
	return workflow.DeriveTimeline(workflow.TableFor(asset.Category), asset.State, records), nil
}

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func hashStrings(values ...string) string {
	h := sha256.New()
	for _, value := range values {
		h.Write([]byte(value))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
