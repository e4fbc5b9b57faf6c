package workflow

import (
	"context"
	"fmt"

	"github.com/eklerks/roundtable/pkg/models"
)

// Node names for the research pipeline.
const (
	StagePlanner  = "planner"
	StageRoles    = "role_assigner"
	StageExecutor = "executor"
	StageReporter = "reporter"
)

// Planner turns the query into an ordered task list.
type Planner interface {
	Plan(ctx context.Context, query string) ([]models.Task, error)
}

// RoleAssigner returns the task list with personas populated.
type RoleAssigner interface {
	Assign(ctx context.Context, tasks []models.Task) ([]models.Task, error)
}

// TaskExecutor runs one task and returns its result text.
type TaskExecutor interface {
	Execute(ctx context.Context, task models.Task) (string, error)
}

// Reporter synthesizes the final report from the query and results.
type Reporter interface {
	Report(ctx context.Context, query string, results []string) (string, error)
}

// Pipeline wires the four stages into a machine and runs queries through it.
type Pipeline struct {
	Planner  Planner
	Roles    RoleAssigner
	Executor TaskExecutor
	Reporter Reporter

	// MaxSteps caps state transitions per run; 0 means DefaultMaxSteps.
	MaxSteps int
	// OnStage, when set, is called as each stage starts, with the state as
	// it enters the stage.
	OnStage func(stage string, s State)
}

// Run executes one query end to end and returns the final report.
func (p *Pipeline) Run(ctx context.Context, query string) (string, error) {
	machine, err := p.machine()
	if err != nil {
		return "", err
	}

	final, err := machine.Run(ctx, State{Query: query})
	if err != nil {
		return "", err
	}
	return final.FinalReport, nil
}

// machine assembles the state machine:
//
//	planner → role_assigner → executor ⟲ → reporter → end
//
// The executor loops once per task, index-driven; with an empty task list
// it is skipped entirely.
func (p *Pipeline) machine() (*Machine, error) {
	nextAfterTasks := func(s State) string {
		if s.CurrentTaskIndex < len(s.Tasks) {
			return StageExecutor
		}
		return StageReporter
	}

	nodes := []Node{
		{
			Name: StagePlanner,
			Run: func(ctx context.Context, s State) (Delta, error) {
				p.enterStage(StagePlanner, s)
				tasks, err := p.Planner.Plan(ctx, s.Query)
				if err != nil {
					return Delta{}, err
				}
				if tasks == nil {
					tasks = []models.Task{}
				}
				return Delta{Tasks: tasks}, nil
			},
			Next: func(s State) string { return StageRoles },
		},
		{
			Name: StageRoles,
			Run: func(ctx context.Context, s State) (Delta, error) {
				p.enterStage(StageRoles, s)
				assigned, err := p.Roles.Assign(ctx, s.Tasks)
				if err != nil {
					return Delta{}, err
				}
				if len(assigned) != len(s.Tasks) {
					return Delta{}, fmt.Errorf("role assignment changed task count: %d != %d", len(assigned), len(s.Tasks))
				}
				if assigned == nil {
					assigned = []models.Task{}
				}
				return Delta{Tasks: assigned}, nil
			},
			Next: nextAfterTasks,
		},
		{
			Name: StageExecutor,
			Run: func(ctx context.Context, s State) (Delta, error) {
				p.enterStage(StageExecutor, s)
				if s.CurrentTaskIndex >= len(s.Tasks) {
					return Delta{}, fmt.Errorf("task index %d out of range (%d tasks)", s.CurrentTaskIndex, len(s.Tasks))
				}
				result, err := p.Executor.Execute(ctx, s.Tasks[s.CurrentTaskIndex])
				if err != nil {
					return Delta{}, err
				}
				return Delta{Results: []string{result}, Advance: 1}, nil
			},
			Next: nextAfterTasks,
		},
		{
			Name: StageReporter,
			Run: func(ctx context.Context, s State) (Delta, error) {
				p.enterStage(StageReporter, s)
				report, err := p.Reporter.Report(ctx, s.Query, s.Results)
				if err != nil {
					return Delta{}, err
				}
				return Delta{FinalReport: report}, nil
			},
			Next: func(s State) string { return End },
		},
	}

	return NewMachine(StagePlanner, nodes, p.MaxSteps)
}

func (p *Pipeline) enterStage(stage string, s State) {
	if p.OnStage != nil {
		p.OnStage(stage, s)
	}
}
