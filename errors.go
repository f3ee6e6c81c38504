// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ValidationError reports malformed caller input (bad VLAN id, empty
// interface name). Validation is local and synchronous: a ValidationError
// is always returned before any network request is made.
type ValidationError struct {
	// Field is the name of the offending parameter
	Field string

	// Message describes why the value was rejected
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalyst: invalid %s: %s", e.Field, e.Message)
}

// AuthError reports credentials rejected by the device (HTTP 401/403).
// Authentication failures are never retried.
type AuthError struct {
	// StatusCode is the HTTP status returned by the device (401 or 403)
	StatusCode int

	// Message is the device response body, if any
	Message string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("catalyst: authentication rejected (HTTP %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("catalyst: authentication rejected (HTTP %d)", e.StatusCode)
}

// ErrorDetail mirrors one entry of the RESTCONF ietf-restconf:errors list
// (RFC 8040 section 7.1). The fields are carried verbatim from the device.
type ErrorDetail struct {
	// Type is the error-type leaf (transport, rpc, protocol, application)
	Type string

	// Tag is the error-tag leaf (e.g. invalid-value, data-missing)
	Tag string

	// Path is the error-path leaf pointing at the offending node, if any
	Path string

	// Message is the error-message leaf
	Message string
}

// DeviceError reports an error response from the device (HTTP 4xx/5xx).
// The device's own error-tag and error-message are carried verbatim in
// Errors; Body holds the raw response when no structured payload was found.
type DeviceError struct {
	// StatusCode is the HTTP status returned by the device
	StatusCode int

	// Errors contains the parsed ietf-restconf:errors entries
	Errors []ErrorDetail

	// Body is the raw response body when no structured errors were present
	Body string
}

// Error implements the error interface
func (e *DeviceError) Error() string {
	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, d := range e.Errors {
			switch {
			case d.Tag != "" && d.Message != "":
				parts = append(parts, fmt.Sprintf("%s: %s", d.Tag, d.Message))
			case d.Tag != "":
				parts = append(parts, d.Tag)
			default:
				parts = append(parts, d.Message)
			}
		}
		return fmt.Sprintf("catalyst: device returned HTTP %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	if e.Body != "" {
		return fmt.Sprintf("catalyst: device returned HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("catalyst: device returned HTTP %d", e.StatusCode)
}

// TransientError reports a transport-level failure (connection reset,
// timeout) that persisted after the configured number of retries. Only
// idempotent GET requests are retried; mutations surface the underlying
// error directly without a retry.
type TransientError struct {
	// Operation is the logical operation that failed
	Operation string

	// Retries is the number of retry attempts that were made
	Retries int

	// Err is the last underlying transport error
	Err error
}

// Error implements the error interface
func (e *TransientError) Error() string {
	return fmt.Sprintf("catalyst: %s failed after %d retries: %v", e.Operation, e.Retries, e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransientError) Unwrap() error {
	return e.Err
}

// PartialFailureError reports a multi-step mutation where an intermediate
// step succeeded and a later step failed. It is a distinct outcome, never
// collapsed into a generic failure: the caller must not be misled into
// believing the device was restored to its initial state.
//
// The canonical producer is BounceInterface: if admin-down was accepted
// but admin-up failed, the interface is left administratively down and the
// returned error is a PartialFailureError with State "admin-down". Recovery
// is a deliberate follow-up by the caller (e.g. SetInterfaceState).
type PartialFailureError struct {
	// Operation is the multi-step operation that partially completed
	Operation string

	// Completed lists the steps acknowledged by the device, in order
	Completed []string

	// Failed is the step that did not complete
	Failed string

	// State describes the observable device state left behind
	State string

	// Err is the error from the failed step
	Err error
}

// Error implements the error interface
func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("catalyst: %s partially failed: completed %s, step %q failed, device left in state %q: %v",
		e.Operation, strings.Join(e.Completed, ", "), e.Failed, e.State, e.Err)
}

// Unwrap returns the error from the failed step
func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

// parseDeviceError builds a DeviceError from an error response body.
// RESTCONF error payloads carry a list of errors under
// "ietf-restconf:errors"."error"; each entry is copied verbatim. A body
// without the structured payload is preserved raw.
func parseDeviceError(statusCode int, body string) *DeviceError {
	devErr := &DeviceError{StatusCode: statusCode}

	errs := gjson.Get(body, `ietf-restconf:errors.error`)
	if !errs.Exists() || !errs.IsArray() {
		devErr.Body = strings.TrimSpace(body)
		return devErr
	}

	for _, e := range errs.Array() {
		devErr.Errors = append(devErr.Errors, ErrorDetail{
			Type:    e.Get("error-type").String(),
			Tag:     e.Get("error-tag").String(),
			Path:    e.Get("error-path").String(),
			Message: e.Get("error-message").String(),
		})
	}
	return devErr
}
