// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AIConfig holds settings for the external model backend.
type AIConfig struct {
	// Model is the model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the model API. Required: the CLI
	// refuses to start a run without one.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// PipelineConfig groups the settings for a pipeline run.
type PipelineConfig struct {
	AI AIConfig `json:"ai" yaml:"ai"`

	// OutputDir is the directory where run artifacts are exported
	// (e.g. "output/reports").
	OutputDir string `json:"output_dir" yaml:"output_dir"`
}
