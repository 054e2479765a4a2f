// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package agent defines the contract between pipeline stages and the external
// language model: the Backend interface each stage calls, and the error
// taxonomy stages report (upstream API failure vs. malformed model output).
package agent

import "context"

// Backend sends one prompt to the external model and returns the raw response
// text. Each pipeline stage issues exactly one Generate call per run; the call
// blocks until the model responds or the API errors. Implementations must not
// retry. Per Strategy pattern, so tests can supply a mock.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
