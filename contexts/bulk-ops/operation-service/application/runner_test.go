package application

import (
	"context"
	"errors"
	"testing"

	"conductor/contexts/bulk-ops/operation-service/adapters/memory"
	domainerrors "conductor/contexts/bulk-ops/operation-service/domain/errors"
	"conductor/contexts/bulk-ops/operation-service/domain/progress"
	"conductor/contexts/bulk-ops/operation-service/ports"
)

// recordingSink collects emitted events for assertions.
type recordingSink struct {
	progresses []progress.ProgressEvent
	errs       []progress.ErrorEvent
	completes  []progress.CompleteEvent
	failAfter  int
	writes     int
}

func (s *recordingSink) Progress(event progress.ProgressEvent) error {
	if s.broken() {
		return errors.New("sink closed")
	}
	s.progresses = append(s.progresses, event)
	return nil
}

func (s *recordingSink) Error(event progress.ErrorEvent) error {
	if s.broken() {
		return errors.New("sink closed")
	}
	s.errs = append(s.errs, event)
	return nil
}

func (s *recordingSink) Complete(event progress.CompleteEvent) error {
	if s.broken() {
		return errors.New("sink closed")
	}
	s.completes = append(s.completes, event)
	return nil
}

func (s *recordingSink) broken() bool {
	s.writes++
	return s.failAfter > 0 && s.writes > s.failAfter
}

func newRunner(store *memory.Store) Runner {
	return Runner{Applier: store, Repo: store, Activity: store, Clock: store, IDs: store}
}

func TestRunEmitsMonotonicProgressAndComplete(t *testing.T) {
	store := memory.NewStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		store.SeedItem(id, "Asset "+id)
	}
	sink := &recordingSink{}

	record, err := newRunner(store).Run(context.Background(), StartInput{
		EntityType: "asset",
		Action:     ports.ActionApprove,
		IDs:        []string{"a", "b", "c", "d"},
		ActorID:    "admin-1",
	}, sink)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if record.Status != ports.OperationCompleted || record.Processed != 4 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(sink.progresses) != 4 || len(sink.completes) != 1 {
		t.Fatalf("expected 4 progress + 1 complete, got %d/%d", len(sink.progresses), len(sink.completes))
	}
	last := 0
	for _, event := range sink.progresses {
		if event.Processed < last {
			t.Fatalf("processed must be non-decreasing, saw %d after %d", event.Processed, last)
		}
		last = event.Processed
		if event.Total != 4 {
			t.Fatalf("total drifted: %+v", event)
		}
	}
	if sink.completes[0].Processed != 4 || sink.completes[0].OperationID != record.OperationID {
		t.Fatalf("bad complete event: %+v", sink.completes[0])
	}
	if got := store.Applied(); len(got) != 4 || got[0] != "a" {
		t.Fatalf("items must be processed in request order, got %v", got)
	}
}

func TestRunStopsAtFailedItem(t *testing.T) {
	store := memory.NewStore()
	for _, id := range []string{"a", "b", "c"} {
		store.SeedItem(id, "Asset "+id)
	}
	store.FailOn("b", errors.New("asset locked"))
	sink := &recordingSink{}

	record, err := newRunner(store).Run(context.Background(), StartInput{
		EntityType: "asset",
		Action:     ports.ActionDelete,
		IDs:        []string{"a", "b", "c"},
	}, sink)
	if err != nil {
		t.Fatalf("run returned transport error: %v", err)
	}
	if record.Status != ports.OperationFailed || record.Processed != 1 {
		t.Fatalf("unexpected record: %+v", record)
	}
	if len(sink.errs) != 1 || len(sink.completes) != 0 {
		t.Fatalf("a failed item must emit exactly one terminal error event")
	}
	errEvent := sink.errs[0]
	if errEvent.Processed != 1 || errEvent.FailedItem != "Asset b" || errEvent.Message != "asset locked" {
		t.Fatalf("bad error event: %+v", errEvent)
	}
	if got := store.Applied(); len(got) != 1 || got[0] != "a" {
		t.Fatalf("items after the failure must not run, got %v", got)
	}
}

func TestRunContinuesWorkWhenSinkBreaks(t *testing.T) {
	store := memory.NewStore()
	for _, id := range []string{"a", "b", "c"} {
		store.SeedItem(id, id)
	}
	sink := &recordingSink{failAfter: 1}

	record, err := newRunner(store).Run(context.Background(), StartInput{
		EntityType: "asset",
		Action:     ports.ActionApprove,
		IDs:        []string{"a", "b", "c"},
	}, sink)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if record.Status != ports.OperationCompleted || record.Processed != 3 {
		t.Fatalf("work must finish despite a broken sink: %+v", record)
	}
	if got := store.Applied(); len(got) != 3 {
		t.Fatalf("all items must be applied, got %v", got)
	}
}

func TestRunValidation(t *testing.T) {
	store := memory.NewStore()
	runner := newRunner(store)
	sink := &recordingSink{}

	_, err := runner.Run(context.Background(), StartInput{EntityType: "asset", Action: ports.ActionApprove}, sink)
	if !errors.Is(err, domainerrors.ErrNoIDs) {
		t.Fatalf("expected ErrNoIDs, got %v", err)
	}
	_, err = runner.Run(context.Background(), StartInput{EntityType: "asset", Action: "explode", IDs: []string{"a"}}, sink)
	if !errors.Is(err, domainerrors.ErrInvalidAction) {
		t.Fatalf("expected ErrInvalidAction, got %v", err)
	}
}

func TestRunDeduplicatesIDs(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem("a", "a")
	sink := &recordingSink{}

	record, err := newRunner(store).Run(context.Background(), StartInput{
		EntityType: "asset",
		Action:     ports.ActionApprove,
		IDs:        []string{"a", "a", " a ", ""},
	}, sink)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if record.Total != 1 || record.Processed != 1 {
		t.Fatalf("duplicate ids must collapse, got %+v", record)
	}
}

func TestRunRecordsAuditAndActivity(t *testing.T) {
	store := memory.NewStore()
	store.SeedItem("a", "a")
	sink := &recordingSink{}
	runner := newRunner(store)

	if _, err := runner.Run(context.Background(), StartInput{
		EntityType: "user",
		Action:     ports.ActionSuspend,
		IDs:        []string{"a"},
		ActorID:    "admin-2",
	}, sink); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	records, err := runner.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(records) != 1 || records[0].Status != ports.OperationCompleted || records[0].ActorID != "admin-2" {
		t.Fatalf("unexpected audit rows: %+v", records)
	}
	if len(store.PublishedOperations()) != 1 {
		t.Fatalf("expected one activity publication")
	}
}
