package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"conductor/contexts/catalog/workflow-service/adapters/memory"
	domainerrors "conductor/contexts/catalog/workflow-service/domain/errors"
	"conductor/contexts/catalog/workflow-service/domain/workflow"
	"conductor/contexts/catalog/workflow-service/ports"
)

func newService(store *memory.Store) Service {
	return Service{
		Assets:         store,
		Repo:           store,
		Idempotency:    store,
		Activity:       store,
		Clock:          store,
		IDs:            store,
		IdempotencyTTL: time.Hour,
	}
}

func TestDecideAdvancesStateAndAppendsHistory(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategoryMusic,
		State:    workflow.StateFinalApproval,
	})
	svc := newService(store)

	result, err := svc.Approve(context.Background(), "key-1", DecisionInput{
		AssetID:    "asset-1",
		ReviewerID: "rev-1",
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if result.ToState != workflow.StatePublished {
		t.Fatalf("expected published, got %s", result.ToState)
	}

	ref, err := store.GetAssetRef(context.Background(), "asset-1")
	if err != nil {
		t.Fatalf("get asset failed: %v", err)
	}
	if ref.State != workflow.StatePublished {
		t.Fatalf("asset state not advanced, got %s", ref.State)
	}

	items, err := svc.ListHistory(context.Background(), "asset-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(items) != 1 || items[0].FromState != workflow.StateFinalApproval {
		t.Fatalf("expected one history record from final_approval, got %+v", items)
	}
	if len(store.PublishedDecisions()) != 1 {
		t.Fatalf("expected one activity publication")
	}
}

func TestDecideRejectsIllegalActionBeforeAnyWrite(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategoryMusic,
		State:    workflow.StateDraft,
	})
	svc := newService(store)

	_, err := svc.Approve(context.Background(), "key-1", DecisionInput{
		AssetID:    "asset-1",
		ReviewerID: "rev-1",
	})
	if !errors.Is(err, domainerrors.ErrActionNotAllowed) {
		t.Fatalf("expected action not allowed, got %v", err)
	}

	ref, _ := store.GetAssetRef(context.Background(), "asset-1")
	if ref.State != workflow.StateDraft {
		t.Fatalf("state must be untouched after illegal action, got %s", ref.State)
	}
	if items, _ := svc.ListHistory(context.Background(), "asset-1"); len(items) != 0 {
		t.Fatalf("no history expected after illegal action")
	}
}

func TestRejectRequiresComments(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategoryMusic,
		State:    workflow.StateQualityCheck,
	})
	svc := newService(store)

	_, err := svc.Reject(context.Background(), "key-1", DecisionInput{
		AssetID:    "asset-1",
		ReviewerID: "rev-1",
	})
	if !errors.Is(err, domainerrors.ErrCommentsRequired) {
		t.Fatalf("expected comments required, got %v", err)
	}

	result, err := svc.Reject(context.Background(), "key-2", DecisionInput{
		AssetID:    "asset-1",
		ReviewerID: "rev-1",
		Comments:   "levels clipping on the master",
	})
	if err != nil {
		t.Fatalf("reject with comments failed: %v", err)
	}
	if result.ToState != workflow.StateRejectedQuality {
		t.Fatalf("expected rejected_quality, got %s", result.ToState)
	}
}

func TestDecideIdempotentReplay(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategorySFX,
		State:    workflow.StateDraft,
	})
	svc := newService(store)

	input := DecisionInput{AssetID: "asset-1", ReviewerID: "rev-1"}
	first, err := svc.Submit(context.Background(), "key-1", input)
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	second, err := svc.Submit(context.Background(), "key-1", input)
	if err != nil {
		t.Fatalf("replay submit failed: %v", err)
	}
	if first.HistoryItem.HistoryID != second.HistoryItem.HistoryID {
		t.Fatalf("expected idempotent replay to return the same history record")
	}
	if items, _ := svc.ListHistory(context.Background(), "asset-1"); len(items) != 1 {
		t.Fatalf("replay must not append a second record, got %d", len(items))
	}
}

func TestDecideIdempotencyConflict(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategorySFX,
		State:    workflow.StateDraft,
	})
	svc := newService(store)

	if _, err := svc.Submit(context.Background(), "key-1", DecisionInput{AssetID: "asset-1", ReviewerID: "rev-1"}); err != nil {
		t.Fatalf("seed submit failed: %v", err)
	}
	_, err := svc.Decide(context.Background(), "key-1", DecisionInput{
		AssetID:    "asset-1",
		ReviewerID: "rev-2",
		Action:     workflow.ActionFixMetadata,
	})
	if !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
}

func TestTimelineForRejectedAsset(t *testing.T) {
	store := memory.NewStore()
	store.SeedAsset(ports.AssetRef{
		AssetID:  "asset-1",
		Category: workflow.CategoryMusic,
		State:    workflow.StateDraft,
	})
	svc := newService(store)
	ctx := context.Background()

	steps := []struct {
		key    string
		action workflow.Action
	}{
		{"k1", workflow.ActionSubmit},
		{"k2", workflow.ActionApprove},
		{"k3", workflow.ActionApprove},
		{"k4", workflow.ActionReject},
	}
	for _, step := range steps {
		_, err := svc.Decide(ctx, step.key, DecisionInput{
			AssetID:    "asset-1",
			ReviewerID: "rev-1",
			Action:     step.action,
			Comments:   "noise floor too high",
		})
		if err != nil {
			t.Fatalf("%s failed: %v", step.action, err)
		}
	}

	stages, err := svc.Timeline(ctx, "asset-1")
	if err != nil {
		t.Fatalf("timeline failed: %v", err)
	}
	byState := map[workflow.State]workflow.StageStatus{}
	for _, stage := range stages {
		byState[stage.State] = stage.Status
	}
	if byState[workflow.StateQualityCheck] != workflow.StageRejected {
		t.Fatalf("quality_check should show rejected, got %s", byState[workflow.StateQualityCheck])
	}
	if byState[workflow.StateInitialReview] != workflow.StageCompleted {
		t.Fatalf("initial_review should show completed, got %s", byState[workflow.StateInitialReview])
	}
}
