// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the four research stages (plan, findings,
// report, critique) exactly once per run. Each stage blocks until the model
// responds; the first failure aborts the remaining stages. Stage outputs are
// written to the session store as they complete, so partial results from a
// failed run stay visible. Nothing is retried and nothing is cancelled
// mid-call beyond what the caller's context provides.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/researcher-agent/internal/session"
	"github.com/pdiddy/researcher-agent/pkg/types"
)

// PlanGenerator produces the research plan for a topic.
type PlanGenerator interface {
	Generate(ctx context.Context, topic string) (*types.ResearchPlan, error)
}

// FindingsGenerator summarizes a plan into findings.
type FindingsGenerator interface {
	Generate(ctx context.Context, p *types.ResearchPlan) (*types.Findings, error)
}

// ReportGenerator writes the long-form report from a plan and findings.
type ReportGenerator interface {
	Generate(ctx context.Context, p *types.ResearchPlan, f *types.Findings) (*types.Report, error)
}

// Critic reviews a report.
type Critic interface {
	Generate(ctx context.Context, r *types.Report) (*types.Critique, error)
}

// Status describes where the driver is in a run.
type Status string

const (
	StatusIdle            Status = "idle"
	StatusPlanPending     Status = "plan-pending"
	StatusFindingsPending Status = "findings-pending"
	StatusReportPending   Status = "report-pending"
	StatusCritiquePending Status = "critique-pending"
	StatusDone            Status = "done"
	StatusFailed          Status = "failed"
)

// StageError identifies which stage a run failed at.
type StageError struct {
	Stage types.Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage err failed at, or "" if err carries no stage.
func FailedStage(err error) types.Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}

// Driver owns one interactive session and runs the pipeline for it.
type Driver struct {
	planner    PlanGenerator
	researcher FindingsGenerator
	editor     ReportGenerator
	critic     Critic

	store     *session.Store
	sessionID string
	status    Status
}

// NewDriver builds a Driver bound to one session in store.
func NewDriver(planner PlanGenerator, researcher FindingsGenerator, editor ReportGenerator, critic Critic, store *session.Store, sessionID string) *Driver {
	return &Driver{
		planner:    planner,
		researcher: researcher,
		editor:     editor,
		critic:     critic,
		store:      store,
		sessionID:  sessionID,
		status:     StatusIdle,
	}
}

// SessionID returns the session this driver owns.
func (d *Driver) SessionID() string { return d.sessionID }

// Status returns the driver's current status.
func (d *Driver) Status() Status { return d.status }

// Run executes the pipeline once for topic. The session is overwritten
// wholesale at the start of the run; each stage's output is stored as soon as
// it completes. On failure the returned state carries the stages that
// finished, and the error wraps the failing stage. Progress lines go to w.
func (d *Driver) Run(ctx context.Context, topic string, w io.Writer) (types.SessionState, error) {
	if w == nil {
		w = io.Discard
	}

	if err := d.store.StartRun(ctx, d.sessionID, topic); err != nil {
		return types.SessionState{SessionID: d.sessionID}, err
	}

	fail := func(stage types.Stage, err error) (types.SessionState, error) {
		d.status = StatusFailed
		fmt.Fprintf(w, "failed    %s: %v\n", stage, err)
		state, snapErr := d.store.Snapshot(ctx, d.sessionID)
		if snapErr != nil {
			state = types.SessionState{SessionID: d.sessionID, Topic: topic}
		}
		return state, &StageError{Stage: stage, Err: err}
	}

	d.status = StatusPlanPending
	fmt.Fprintf(w, "planning  %s\n", topic)
	plan, err := d.planner.Generate(ctx, topic)
	if err != nil {
		return fail(types.StagePlan, err)
	}
	if err := d.store.SaveStage(ctx, d.sessionID, types.StagePlan, plan); err != nil {
		return fail(types.StagePlan, err)
	}

	d.status = StatusFindingsPending
	fmt.Fprintf(w, "gathering findings (%d queries)\n", len(plan.Queries))
	findings, err := d.researcher.Generate(ctx, plan)
	if err != nil {
		return fail(types.StageFindings, err)
	}
	if err := d.store.SaveStage(ctx, d.sessionID, types.StageFindings, findings); err != nil {
		return fail(types.StageFindings, err)
	}

	d.status = StatusReportPending
	fmt.Fprintf(w, "drafting report\n")
	report, err := d.editor.Generate(ctx, plan, findings)
	if err != nil {
		return fail(types.StageReport, err)
	}
	if err := d.store.SaveStage(ctx, d.sessionID, types.StageReport, report); err != nil {
		return fail(types.StageReport, err)
	}

	d.status = StatusCritiquePending
	fmt.Fprintf(w, "reviewing report\n")
	critique, err := d.critic.Generate(ctx, report)
	if err != nil {
		return fail(types.StageCritique, err)
	}
	if err := d.store.SaveStage(ctx, d.sessionID, types.StageCritique, critique); err != nil {
		return fail(types.StageCritique, err)
	}

	d.status = StatusDone
	fmt.Fprintf(w, "done\n")

	return d.store.Snapshot(ctx, d.sessionID)
}

// Reset clears the session state and returns the driver to idle.
func (d *Driver) Reset(ctx context.Context) error {
	if err := d.store.Reset(ctx, d.sessionID); err != nil {
		return err
	}
	d.status = StatusIdle
	return nil
}
