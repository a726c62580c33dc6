package workflow

// StageStatus is the display status of one pipeline stage.
type StageStatus string

const (
	StageCompleted StageStatus = "completed"
	StageCurrent   StageStatus = "current"
	StageRejected  StageStatus = "rejected"
	StagePending   StageStatus = "pending"
)

// TimelineStage pairs a pipeline stage with its derived display status.
type TimelineStage struct {
	State  State
	Status StageStatus
}

// HistoryRecord is the slice of a history item the timeline needs.
type HistoryRecord struct {
	FromState State
	ToState   State
}

// DeriveTimeline computes per-stage display statuses for the linear pipeline
// of table, given the asset's current state and its transition history.
//
// When current sits on the linear path the rule is positional: stages before
// it are completed, it is current, the rest are pending. Rejected states are
// parallel branches with no position on the path, so for them the stage the
// rejection branched from shows as rejected and earlier stages show as
// completed only when some history record actually reached them.
func DeriveTimeline(table Table, current State, history []HistoryRecord) []TimelineStage {
	stages := table.Stages()
	out := make([]TimelineStage, 0, len(stages))

	if !IsRejected(current) {
		currentIdx := indexOf(stages, current)
		for i, stage := range stages {
			status := StagePending
			switch {
			case currentIdx >= 0 && i < currentIdx:
				status = StageCompleted
			case currentIdx >= 0 && i == currentIdx:
				status = StageCurrent
			}
			out = append(out, TimelineStage{State: stage, Status: status})
		}
		return out
	}

	rejectedFrom, _ := table.RejectionStage(current)
	reached := map[State]bool{}
	for _, record := range history {
		reached[record.FromState] = true
		reached[record.ToState] = true
	}
	for _, stage := range stages {
		status := StagePending
		switch {
		case stage == rejectedFrom:
			status = StageRejected
		case reached[stage]:
			status = StageCompleted
		}
		out = append(out, TimelineStage{State: stage, Status: status})
	}
	return out
}

func indexOf(stages []State, state State) int {
	for i, stage := range stages {
		if stage == state {
			return i
		}
	}
	return -1
}
