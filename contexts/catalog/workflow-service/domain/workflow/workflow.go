package workflow

// Package workflow holds the declarative review/publication state machines.
// Music assets run the multi-stage pipeline; every other category runs the
// single-stage pipeline. Tables are flat edge lists scanned in order.

type State string

const (
	StateDraft              State = "draft"
	StateSubmitted          State = "submitted"
	StateInitialReview      State = "initial_review"
	StateQualityCheck       State = "quality_check"
	StatePlatformAssignment State = "platform_assignment"
	StateFinalApproval      State = "final_approval"
	StateReview             State = "review"
	StatePublished          State = "published"
	StateRejected           State = "rejected"
	StateRejectedInitial    State = "rejected_initial"
	StateRejectedQuality    State = "rejected_quality"
	StateRejectedFinal      State = "rejected_final"
)

type Action string

const (
	ActionSubmit         Action = "submit"
	ActionApprove        Action = "approve"
	ActionReject         Action = "reject"
	ActionUnpublish      Action = "unpublish"
	ActionFixMetadata    Action = "fix_metadata"
	ActionRequestChanges Action = "request_changes"
	ActionAssignPlatform Action = "assign_platform"
)

// Category is the asset category discriminator as the catalog reports it.
type Category string

const (
	CategoryMusic          Category = "music"
	CategorySFX            Category = "sfx"
	CategoryMotionGraphics Category = "motion_graphics"
	CategoryLUT            Category = "lut"
	CategoryStockFootage   Category = "stock_footage"
)

// Transition is one directed edge of a state machine.
type Transition struct {
	From   State
	Action Action
	To     State
}

// Table is an ordered edge list. Edges sharing a From state represent the
// different actions available there; (From, Action) pairs are unique.
type Table struct {
	name   string
	edges  []Transition
	stages []State
}

// NewTable validates edge uniqueness by (from, action). Duplicate edges are
// a programming error, so construction panics rather than returning one.
func NewTable(name string, stages []State, edges []Transition) Table {
	type key struct {
		from   State
		action Action
	}
	seen := make(map[key]State, len(edges))
	for _, edge := range edges {
		k := key{from: edge.From, action: edge.Action}
		if prior, ok := seen[k]; ok && prior != edge.To {
			panic("workflow: ambiguous edge " + string(edge.From) + "/" + string(edge.Action))
		}
		seen[k] = edge.To
	}
	return Table{name: name, stages: stages, edges: edges}
}

func (t Table) Name() string { return t.name }

// Stages returns the linear forward path in display order. Rejected states
// are parallel branches and never appear here.
func (t Table) Stages() []State {
	out := make([]State, len(t.stages))
	copy(out, t.stages)
	return out
}

// NextState resolves the unique edge for (current, action). The second
// return is false when no such edge exists.
func (t Table) NextState(current State, action Action) (State, bool) {
	for _, edge := range t.edges {
		if edge.From == current && edge.Action == action {
			return edge.To, true
		}
	}
	return "", false
}

// AvailableActions lists the deduplicated actions leaving current, in table
// order.
func (t Table) AvailableActions(current State) []Action {
	var out []Action
	seen := map[Action]bool{}
	for _, edge := range t.edges {
		if edge.From != current || seen[edge.Action] {
			continue
		}
		seen[edge.Action] = true
		out = append(out, edge.Action)
	}
	return out
}

func (t Table) CanTransition(current State, action Action) bool {
	_, ok := t.NextState(current, action)
	return ok
}

// IsRejected reports whether state is one of the rejection branches.
func IsRejected(state State) bool {
	switch state {
	case StateRejected, StateRejectedInitial, StateRejectedQuality, StateRejectedFinal:
		return true
	}
	return false
}

// RejectionStage maps a rejected state to the review stage it branched from.
func (t Table) RejectionStage(rejected State) (State, bool) {
	for _, edge := range t.edges {
		if edge.To == rejected && edge.Action == ActionReject {
			return edge.From, true
		}
	}
	return "", false
}

var musicTable = NewTable(
	"music",
	[]State{
		StateDraft,
		StateSubmitted,
		StateInitialReview,
		StateQualityCheck,
		StatePlatformAssignment,
		StateFinalApproval,
		StatePublished,
	},
	[]Transition{
		{StateDraft, ActionSubmit, StateSubmitted},
		{StateDraft, ActionFixMetadata, StateDraft},

		{StateSubmitted, ActionApprove, StateInitialReview},
		{StateSubmitted, ActionFixMetadata, StateSubmitted},

		{StateInitialReview, ActionApprove, StateQualityCheck},
		{StateInitialReview, ActionReject, StateRejectedInitial},
		{StateInitialReview, ActionRequestChanges, StateInitialReview},
		{StateInitialReview, ActionFixMetadata, StateInitialReview},

		{StateQualityCheck, ActionApprove, StatePlatformAssignment},
		{StateQualityCheck, ActionReject, StateRejectedQuality},
		{StateQualityCheck, ActionRequestChanges, StateQualityCheck},
		{StateQualityCheck, ActionFixMetadata, StateQualityCheck},

		{StatePlatformAssignment, ActionApprove, StateFinalApproval},
		{StatePlatformAssignment, ActionAssignPlatform, StatePlatformAssignment},
		{StatePlatformAssignment, ActionFixMetadata, StatePlatformAssignment},

		{StateFinalApproval, ActionApprove, StatePublished},
		{StateFinalApproval, ActionReject, StateRejectedFinal},
		{StateFinalApproval, ActionRequestChanges, StateFinalApproval},
		{StateFinalApproval, ActionFixMetadata, StateFinalApproval},

		{StatePublished, ActionUnpublish, StateDraft},

		{StateRejectedInitial, ActionSubmit, StateSubmitted},
		{StateRejectedQuality, ActionSubmit, StateSubmitted},
		{StateRejectedFinal, ActionSubmit, StateSubmitted},
	},
)

var simpleTable = NewTable(
	"simple",
	[]State{
		StateDraft,
		StateSubmitted,
		StateReview,
		StatePublished,
	},
	[]Transition{
		{StateDraft, ActionSubmit, StateSubmitted},
		{StateDraft, ActionFixMetadata, StateDraft},

		{StateSubmitted, ActionApprove, StateReview},
		{StateSubmitted, ActionFixMetadata, StateSubmitted},

		{StateReview, ActionApprove, StatePublished},
		{StateReview, ActionReject, StateRejected},
		{StateReview, ActionRequestChanges, StateReview},
		{StateReview, ActionFixMetadata, StateReview},

		{StatePublished, ActionUnpublish, StateDraft},

		{StateRejected, ActionSubmit, StateSubmitted},
	},
)

// MusicTable is the multi-stage pipeline with three rejection points.
func MusicTable() Table { return musicTable }

// SimpleTable is the single-stage pipeline for non-music categories.
func SimpleTable() Table { return simpleTable }

// TableFor picks the state machine for an asset category. The switch is
// exhaustive over Category; unknown values fall back to the simple pipeline.
func TableFor(category Category) Table {
	switch category {
	case CategoryMusic:
		return musicTable
	case CategorySFX, CategoryMotionGraphics, CategoryLUT, CategoryStockFootage:
		return simpleTable
	}
	return simpleTable
}

// InitialState is where every new asset starts.
func InitialState() State { return StateDraft }
