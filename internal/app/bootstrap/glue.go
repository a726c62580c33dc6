package bootstrap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	operationerrors "conductor/contexts/bulk-ops/operation-service/domain/errors"
	operationports "conductor/contexts/bulk-ops/operation-service/ports"
	"conductor/contexts/bulk-ops/selection-service/domain/selection"
	assetapplication "conductor/contexts/catalog/asset-service/application"
	assetentities "conductor/contexts/catalog/asset-service/domain/entities"
	asseterrors "conductor/contexts/catalog/asset-service/domain/errors"
	assetports "conductor/contexts/catalog/asset-service/ports"
	workflowapplication "conductor/contexts/catalog/workflow-service/application"
	workflowerrors "conductor/contexts/catalog/workflow-service/domain/errors"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	workflowports "conductor/contexts/catalog/workflow-service/ports"
	userapplication "conductor/contexts/identity-access/user-service/application"
	userentities "conductor/contexts/identity-access/user-service/domain/entities"
	usererrors "conductor/contexts/identity-access/user-service/domain/errors"
	userports "conductor/contexts/identity-access/user-service/ports"
	activityapplication "conductor/contexts/internal-ops/activity-feed-service/application"
	"conductor/internal/shared/events"
	"conductor/internal/shared/outbox"

	"github.com/google/uuid"
)

// Cross-context adapters live here so the contexts themselves stay
// import-clean: each one sees only its own ports.

// assetStateStore backs the workflow context with the catalog's rows.
type assetStateStore struct {
	assets assetports.AssetRepository
}

func (s assetStateStore) GetAssetRef(ctx context.Context, assetID string) (workflowports.AssetRef, error) {
	asset, err := s.assets.GetAsset(ctx, assetID)
	if err != nil {
		if errors.Is(err, asseterrors.ErrAssetNotFound) {
			return workflowports.AssetRef{}, workflowerrors.ErrAssetNotFound
		}
		return workflowports.AssetRef{}, err
	}
	return workflowports.AssetRef{
		AssetID:  asset.AssetID,
		Title:    asset.Title,
		Category: workflow.Category(asset.Category),
		State:    workflow.State(asset.WorkflowState),
	}, nil
}

func (s assetStateStore) SetAssetState(ctx context.Context, assetID string, state workflow.State) error {
	return s.assets.SetWorkflowState(ctx, assetID, string(state))
}

// entityIDLister resolves selection contexts against the owning list
// layers, preserving each one's stable ordering.
type entityIDLister struct {
	assets assetapplication.Service
	users  userapplication.Service
}

func (l entityIDLister) ListIDs(ctx context.Context, selCtx selection.Context) ([]string, error) {
	switch selCtx.EntityType {
	case selection.EntityAsset:
		return l.assets.ListAssetIDs(ctx, assetFilterFromParams(selCtx))
	case selection.EntityUser:
		return l.users.ListUserIDs(ctx, userFilterFromParams(selCtx))
	default:
		return nil, fmt.Errorf("no id lister for entity type %q", selCtx.EntityType)
	}
}

func (l entityIDLister) CountFiltered(ctx context.Context, selCtx selection.Context) (int, error) {
	ids, err := l.ListIDs(ctx, selCtx)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func assetFilterFromParams(selCtx selection.Context) assetports.AssetListFilter {
	var filter assetports.AssetListFilter
	for _, param := range selCtx.FilterParams {
		switch param.Key {
		case "category":
			filter.Category = assetentities.Category(param.Value)
		case "workflow_state":
			filter.WorkflowState = param.Value
		case "contributor_id":
			filter.ContributorID = param.Value
		case "collection_id":
			filter.CollectionID = param.Value
		case "search":
			filter.Search = param.Value
		}
	}
	return filter
}

func userFilterFromParams(selCtx selection.Context) userports.UserListFilter {
	var filter userports.UserListFilter
	for _, param := range selCtx.FilterParams {
		switch param.Key {
		case "role":
			filter.Role = userentities.Role(param.Value)
		case "status":
			filter.Status = userentities.Status(param.Value)
		case "search":
			filter.Search = param.Value
		}
	}
	return filter
}

// bulkApplier routes one bulk item to the context that owns the action.
// Workflow decisions get a fresh idempotency key per item; a replayed bulk
// request is deduplicated upstream by the operation audit trail.
type bulkApplier struct {
	workflow workflowapplication.Service
	assets   assetapplication.Service
	users    userapplication.Service
}

func (a bulkApplier) Apply(
	ctx context.Context,
	entityType string,
	action operationports.Action,
	id string,
	payload map[string]string,
) (string, error) {
	switch entityType {
	case "asset":
		return a.applyAsset(ctx, action, id, payload)
	case "user":
		return a.applyUser(ctx, action, id)
	default:
		return "", operationerrors.ErrInvalidEntityType
	}
}

func (a bulkApplier) applyAsset(
	ctx context.Context,
	action operationports.Action,
	id string,
	payload map[string]string,
) (string, error) {
	asset, err := a.assets.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, asseterrors.ErrAssetNotFound) {
			return "", operationerrors.ErrItemNotFound
		}
		return "", err
	}

	switch action {
	case operationports.ActionDelete:
		if err := a.assets.DeleteAsset(ctx, id); err != nil {
			return "", err
		}
		return asset.Title, nil
	case operationports.ActionApprove, operationports.ActionReject:
		_, err := a.workflow.Decide(ctx, uuid.NewString(), workflowapplication.DecisionInput{
			AssetID:      id,
			ReviewerID:   payload["actor_id"],
			ReviewerName: payload["actor_name"],
			Action:       workflow.Action(action),
			Comments:     payload["comments"],
		})
		if err != nil {
			return "", err
		}
		return asset.Title, nil
	default:
		return "", operationerrors.ErrInvalidAction
	}
}

func (a bulkApplier) applyUser(ctx context.Context, action operationports.Action, id string) (string, error) {
	var (
		user userentities.User
		err  error
	)
	switch action {
	case operationports.ActionSuspend:
		user, err = a.users.Suspend(ctx, id)
	case operationports.ActionActivate:
		user, err = a.users.Activate(ctx, id)
	default:
		return "", operationerrors.ErrInvalidAction
	}
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return "", operationerrors.ErrItemNotFound
		}
		return "", err
	}
	return user.DisplayName, nil
}

// activityRecorder fans decisions, bulk results and user status changes onto
// the activity feed and, when an outbox is wired, onto the bus via the relay.
type activityRecorder struct {
	feed    activityapplication.Service
	outbox  outbox.Store
	service string
}

func (r activityRecorder) PublishDecision(ctx context.Context, item workflowports.HistoryItem) error {
	_, err := r.feed.Append(ctx, activityapplication.AppendInput{
		ActorID:    item.ReviewerID,
		ActorName:  item.ReviewerName,
		Verb:       string(item.Action),
		EntityType: "asset",
		EntityID:   item.AssetID,
		Summary:    fmt.Sprintf("%s: %s -> %s", item.Action, item.FromState, item.ToState),
	})
	if err != nil {
		return err
	}
	return r.enqueue(ctx, events.TypeWorkflowDecision, "asset", item.AssetID, map[string]string{
		"action":     string(item.Action),
		"from_state": string(item.FromState),
		"to_state":   string(item.ToState),
		"reviewer":   item.ReviewerID,
	})
}

func (r activityRecorder) PublishOperation(ctx context.Context, record operationports.OperationRecord) error {
	_, err := r.feed.Append(ctx, activityapplication.AppendInput{
		ActorID:    record.ActorID,
		Verb:       "bulk_" + string(record.Action),
		EntityType: record.EntityType,
		EntityID:   record.OperationID,
		Summary:    fmt.Sprintf("bulk %s %s: %d/%d %s", record.Action, record.EntityType, record.Processed, record.Total, record.Status),
	})
	if err != nil {
		return err
	}
	return r.enqueue(ctx, events.TypeBulkOperationDone, record.EntityType, record.OperationID, map[string]string{
		"action":    string(record.Action),
		"status":    record.Status,
		"processed": fmt.Sprintf("%d", record.Processed),
		"total":     fmt.Sprintf("%d", record.Total),
	})
}

func (r activityRecorder) PublishUserStatusChange(ctx context.Context, user userentities.User, previous userentities.Status) error {
	_, err := r.feed.Append(ctx, activityapplication.AppendInput{
		ActorID:    user.UserID,
		ActorName:  user.DisplayName,
		Verb:       "status_" + string(user.Status),
		EntityType: "user",
		EntityID:   user.UserID,
		Summary:    fmt.Sprintf("status %s -> %s", previous, user.Status),
	})
	if err != nil {
		return err
	}
	return r.enqueue(ctx, events.TypeUserStatusChanged, "user", user.UserID, map[string]string{
		"from": string(previous),
		"to":   string(user.Status),
	})
}

func (r activityRecorder) enqueue(ctx context.Context, eventType, entityType, entityID string, payload map[string]string) error {
	if r.outbox == nil {
		return nil
	}
	envelope := events.Envelope{
		EventID:        uuid.NewString(),
		EventType:      eventType,
		SourceService:  r.service,
		OccurredAtUTC:  time.Now().UTC(),
		EntityType:     entityType,
		EntityID:       entityID,
		PayloadVersion: 1,
		Payload:        payload,
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return r.outbox.Enqueue(ctx, outbox.Message{
		ID:        envelope.EventID,
		EventType: eventType,
		Payload:   body,
		Status:    outbox.StatusPending,
		CreatedAt: envelope.OccurredAtUTC,
	})
}
