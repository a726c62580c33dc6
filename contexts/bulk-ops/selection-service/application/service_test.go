package application

import (
	"context"
	"errors"
	"testing"

	"conductor/contexts/bulk-ops/selection-service/adapters/memory"
	domainerrors "conductor/contexts/bulk-ops/selection-service/domain/errors"
	"conductor/contexts/bulk-ops/selection-service/domain/selection"
)

func assetCtx(status string) selection.Context {
	return selection.Context{
		EntityType:   selection.EntityAsset,
		FilterParams: []selection.Param{{Key: "status", Value: status}},
	}
}

func TestSelectionSurvivesReload(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()
	selCtx := assetCtx("draft")

	if _, err := svc.Toggle(ctx, "sess-1", selCtx, "a"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if _, err := svc.Toggle(ctx, "sess-1", selCtx, "b"); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// A fresh service over the same store models a page reload.
	reloaded := &Service{Store: store, IDs: store}
	view, err := reloaded.Get(ctx, "sess-1", selCtx)
	if err != nil {
		t.Fatalf("get after reload failed: %v", err)
	}
	if view.SelectedCount != 2 || view.LastSelectedID != "b" {
		t.Fatalf("reload lost state: %+v", view)
	}
}

func TestContextSwitchResetsPersistedSelection(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := svc.Select(ctx, "sess-1", assetCtx("draft"), id); err != nil {
			t.Fatalf("select failed: %v", err)
		}
	}
	view, err := svc.Get(ctx, "sess-1", assetCtx("published"))
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.SelectedCount != 0 {
		t.Fatalf("filter switch must reset, got count %d", view.SelectedCount)
	}
}

func TestSelectRangeUsesServerOrdering(t *testing.T) {
	store := memory.NewStore()
	selCtx := assetCtx("draft")
	store.SeedIDs(selCtx, []string{"a", "b", "c", "d", "e"})
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()

	if _, err := svc.Select(ctx, "sess-1", selCtx, "b"); err != nil {
		t.Fatalf("anchor select failed: %v", err)
	}
	view, err := svc.SelectRange(ctx, "sess-1", selCtx, "d")
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if view.SelectedCount != 3 || view.LastSelectedID != "d" {
		t.Fatalf("expected b..d selected with anchor d, got %+v", view)
	}
}

func TestSelectRangeWithoutAnchorDegrades(t *testing.T) {
	store := memory.NewStore()
	selCtx := assetCtx("draft")
	store.SeedIDs(selCtx, []string{"a", "b", "c"})
	svc := &Service{Store: store, IDs: store}

	view, err := svc.SelectRange(context.Background(), "sess-1", selCtx, "c")
	if err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if view.SelectedCount != 1 || !contains(view.SelectedIDs, "c") {
		t.Fatalf("missing anchor must degrade to single-select, got %+v", view)
	}
}

func TestSelectAllAndIsAllSelected(t *testing.T) {
	store := memory.NewStore()
	selCtx := assetCtx("draft")
	store.SeedIDs(selCtx, []string{"a", "b", "c"})
	svc := &Service{Store: store, IDs: store}

	view, err := svc.SelectAll(context.Background(), "sess-1", selCtx)
	if err != nil {
		t.Fatalf("select-all failed: %v", err)
	}
	if view.SelectedCount != 3 || !view.IsAllSelected {
		t.Fatalf("expected full selection, got %+v", view)
	}
	if view.LastSelectedID != "c" {
		t.Fatalf("anchor should be last supplied id, got %q", view.LastSelectedID)
	}
}

func TestOrderedIDCachePerContext(t *testing.T) {
	store := memory.NewStore()
	draft := assetCtx("draft")
	published := assetCtx("published")
	store.SeedIDs(draft, []string{"a", "b"})
	store.SeedIDs(published, []string{"x"})
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()

	if _, err := svc.SelectAll(ctx, "sess-1", draft); err != nil {
		t.Fatalf("select-all failed: %v", err)
	}
	if _, err := svc.SelectRange(ctx, "sess-1", draft, "b"); err != nil {
		t.Fatalf("range failed: %v", err)
	}
	if got := store.ListCalls(draft); got != 1 {
		t.Fatalf("same context must reuse cached ids, got %d fetches", got)
	}

	if _, err := svc.SelectAll(ctx, "sess-1", published); err != nil {
		t.Fatalf("select-all failed: %v", err)
	}
	if got := store.ListCalls(published); got != 1 {
		t.Fatalf("context change must refetch, got %d fetches", got)
	}
}

func TestCorruptBlobFallsBackToEmpty(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()
	selCtx := assetCtx("draft")

	if _, err := svc.Select(ctx, "sess-1", selCtx, "a"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	store.Corrupt("sess-1")

	view, err := svc.Get(ctx, "sess-1", selCtx)
	if err != nil {
		t.Fatalf("corrupt blob must not error: %v", err)
	}
	if view.SelectedCount != 0 {
		t.Fatalf("corrupt blob must fall back to empty, got %+v", view)
	}
}

func TestClearRemovesSession(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	ctx := context.Background()
	selCtx := assetCtx("draft")

	if _, err := svc.Select(ctx, "sess-1", selCtx, "a"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	view, err := svc.Get(ctx, "sess-1", selCtx)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if view.SelectedCount != 0 {
		t.Fatalf("clear must empty the selection")
	}
}

func TestSessionRequired(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	_, err := svc.Get(context.Background(), "  ", assetCtx("draft"))
	if !errors.Is(err, domainerrors.ErrSessionRequired) {
		t.Fatalf("expected session required, got %v", err)
	}
}

func TestUnknownEntityTypeRejected(t *testing.T) {
	store := memory.NewStore()
	svc := &Service{Store: store, IDs: store}
	_, err := svc.Toggle(context.Background(), "sess-1", selection.Context{EntityType: "campaign"}, "a")
	if !errors.Is(err, domainerrors.ErrInvalidEntityType) {
		t.Fatalf("expected invalid entity type, got %v", err)
	}
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
