// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the researcher-agent pipeline:
// the per-stage artifacts (plan, findings, report, critique), the stage
// identifiers, and the session state assembled from them.
package types

// Stage identifies one step of the research pipeline.
type Stage string

const (
	StagePlan     Stage = "plan"
	StageFindings Stage = "findings"
	StageReport   Stage = "report"
	StageCritique Stage = "critique"
)

// Stages lists the pipeline stages in execution order.
var Stages = []Stage{StagePlan, StageFindings, StageReport, StageCritique}

// ResearchPlan is the structured output of the plan stage.
type ResearchPlan struct {
	// Topic restates the research topic.
	Topic string `json:"topic" yaml:"topic"`

	// Queries holds 3-5 search queries, in priority order.
	Queries []string `json:"queries" yaml:"queries"`

	// FocusAreas holds 3-5 key aspects the research should cover.
	FocusAreas []string `json:"focus_areas" yaml:"focus_areas"`
}

// Findings is the concise summary produced by the findings stage. The
// under-300-words bound is requested in the prompt, not enforced here.
type Findings struct {
	// Summary is 2-3 short paragraphs of prose.
	Summary string `json:"summary" yaml:"summary"`
}

// Report is the long-form document produced by the report stage.
type Report struct {
	// Title is the document title, taken from the top-level Markdown heading
	// when present and the plan topic otherwise.
	Title string `json:"title" yaml:"title"`

	// Markdown is the full report text as returned by the model.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Outline lists the section headings found in Markdown, in order.
	Outline []string `json:"outline" yaml:"outline"`

	// Sources lists the entries of the report's Sources section. May be empty.
	Sources []string `json:"sources" yaml:"sources"`
}

// Critique is the structured review produced by the critic stage.
type Critique struct {
	// Issues lists problems found in the report. May be empty.
	Issues []string `json:"issues" yaml:"issues"`

	// Suggestions lists concrete improvements. May be empty.
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// SessionState is the last-known output of every stage for one interactive
// session. A nil field means the stage has not completed during the current
// run. The pipeline driver is the only writer.
type SessionState struct {
	// SessionID is an opaque identifier for the interactive session.
	SessionID string `json:"session_id" yaml:"session_id"`

	// Topic is the user-supplied research topic for the current run.
	Topic string `json:"topic" yaml:"topic"`

	Plan     *ResearchPlan `json:"plan,omitempty" yaml:"plan,omitempty"`
	Findings *Findings     `json:"findings,omitempty" yaml:"findings,omitempty"`
	Report   *Report       `json:"report,omitempty" yaml:"report,omitempty"`
	Critique *Critique     `json:"critique,omitempty" yaml:"critique,omitempty"`
}
