package workflow

import "github.com/eklerks/roundtable/pkg/models"

// State is the single record threaded through a workflow run. The engine
// owns it exclusively and passes copies to nodes; nodes never mutate it
// directly.
//
// Invariants: CurrentTaskIndex is monotonically non-decreasing and bounded
// by len(Tasks); len(Results) == CurrentTaskIndex after every executor pass.
type State struct {
	// Query is the user's original question.
	Query string
	// Tasks is the ordered task list for this run.
	Tasks []models.Task
	// CurrentTaskIndex points at the next task to execute.
	CurrentTaskIndex int
	// Results holds one result per completed task, in task order.
	Results []string
	// FinalReport is the synthesized answer, set by the reporter.
	FinalReport string
}

// Delta is a partial state update returned by a node. Fields a node does
// not set leave the prior state unchanged. Merge rule per field:
//
//   - Tasks: replaces State.Tasks when non-nil
//   - Results: appended to State.Results, never replacing it
//   - Advance: added to State.CurrentTaskIndex
//   - FinalReport: replaces State.FinalReport when non-empty
type Delta struct {
	Tasks       []models.Task
	Results     []string
	Advance     int
	FinalReport string
}

// apply merges a delta into a copy of the state and returns the copy.
func apply(s State, d Delta) State {
	if d.Tasks != nil {
		s.Tasks = d.Tasks
	}
	if len(d.Results) > 0 {
		merged := make([]string, 0, len(s.Results)+len(d.Results))
		merged = append(merged, s.Results...)
		merged = append(merged, d.Results...)
		s.Results = merged
	}
	s.CurrentTaskIndex += d.Advance
	if d.FinalReport != "" {
		s.FinalReport = d.FinalReport
	}
	return s
}
