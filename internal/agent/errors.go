// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"errors"
	"fmt"
)

// UpstreamError reports a failed call to the external model API: transport
// failure, authentication failure, rate limiting, or an unknown model
// identifier. The call is not retried; the error is surfaced to the caller.
type UpstreamError struct {
	// Status is the HTTP status code, or 0 for transport-level failures.
	Status int

	// Message is the upstream error description, verbatim where available.
	Message string

	// Err is the underlying error, if any.
	Err error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("model API returned %d: %s", e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("model API returned %d", e.Status)
	case e.Message != "":
		return fmt.Sprintf("model API call failed: %s", e.Message)
	default:
		return fmt.Sprintf("model API call failed: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// MalformedResponseError reports that the model responded, but the response
// did not conform to the structural shape the stage requested (invalid JSON,
// or required fields missing or out of range). Re-running is the suggested
// remedy; the pipeline never substitutes a fallback value.
type MalformedResponseError struct {
	// Reason describes what was wrong with the response.
	Reason string

	// Raw is the offending model output, truncated for display.
	Raw string

	// Err is the underlying parse error, if any.
	Err error
}

// rawDisplayLimit bounds how much model output an error message carries.
const rawDisplayLimit = 200

func (e *MalformedResponseError) Error() string {
	msg := "malformed model response: " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Malformed builds a MalformedResponseError, truncating raw for display.
func Malformed(reason, raw string, err error) *MalformedResponseError {
	if len(raw) > rawDisplayLimit {
		raw = raw[:rawDisplayLimit] + "..."
	}
	return &MalformedResponseError{Reason: reason, Raw: raw, Err: err}
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsMalformed reports whether err is (or wraps) a MalformedResponseError.
func IsMalformed(err error) bool {
	var me *MalformedResponseError
	return errors.As(err, &me)
}
