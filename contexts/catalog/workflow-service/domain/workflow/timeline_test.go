package workflow

import "testing"

func statusOf(stages []TimelineStage, state State) StageStatus {
	for _, stage := range stages {
		if stage.State == state {
			return stage.Status
		}
	}
	return ""
}

func TestTimelineOnLinearPath(t *testing.T) {
	stages := DeriveTimeline(MusicTable(), StateQualityCheck, nil)
	if got := statusOf(stages, StateDraft); got != StageCompleted {
		t.Fatalf("draft: got %s, want completed", got)
	}
	if got := statusOf(stages, StateSubmitted); got != StageCompleted {
		t.Fatalf("submitted: got %s, want completed", got)
	}
	if got := statusOf(stages, StateQualityCheck); got != StageCurrent {
		t.Fatalf("quality_check: got %s, want current", got)
	}
	if got := statusOf(stages, StateFinalApproval); got != StagePending {
		t.Fatalf("final_approval: got %s, want pending", got)
	}
}

func TestTimelineRejectedUsesHistoryPresence(t *testing.T) {
	history := []HistoryRecord{
		{FromState: StateDraft, ToState: StateSubmitted},
		{FromState: StateSubmitted, ToState: StateInitialReview},
		{FromState: StateInitialReview, ToState: StateQualityCheck},
		{FromState: StateQualityCheck, ToState: StateRejectedQuality},
	}
	stages := DeriveTimeline(MusicTable(), StateRejectedQuality, history)
	if got := statusOf(stages, StateQualityCheck); got != StageRejected {
		t.Fatalf("quality_check: got %s, want rejected", got)
	}
	for _, earlier := range []State{StateDraft, StateSubmitted, StateInitialReview} {
		if got := statusOf(stages, earlier); got != StageCompleted {
			t.Fatalf("%s: got %s, want completed", earlier, got)
		}
	}
	for _, later := range []State{StatePlatformAssignment, StateFinalApproval, StatePublished} {
		if got := statusOf(stages, later); got != StagePending {
			t.Fatalf("%s: got %s, want pending", later, got)
		}
	}
}

func TestTimelineRejectedWithoutHistoryLeavesEarlierPending(t *testing.T) {
	// A stale client can hold a rejected asset with no fetched history; only
	// the rejection stage is marked then.
	stages := DeriveTimeline(SimpleTable(), StateRejected, nil)
	if got := statusOf(stages, StateReview); got != StageRejected {
		t.Fatalf("review: got %s, want rejected", got)
	}
	if got := statusOf(stages, StateDraft); got != StagePending {
		t.Fatalf("draft: got %s, want pending", got)
	}
}

func TestTimelinePublished(t *testing.T) {
	stages := DeriveTimeline(SimpleTable(), StatePublished, nil)
	for _, stage := range []State{StateDraft, StateSubmitted, StateReview} {
		if got := statusOf(stages, stage); got != StageCompleted {
			t.Fatalf("%s: got %s, want completed", stage, got)
		}
	}
	if got := statusOf(stages, StatePublished); got != StageCurrent {
		t.Fatalf("published: got %s, want current", got)
	}
}
