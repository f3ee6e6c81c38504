// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Body provides a fluent interface for building YANG JSON payloads using
// sjson for path-based manipulation.
//
// PATCH bodies for the RESTCONF configuration datastore use plain merge
// semantics, so a body should contain only the leaves being changed. The
// Body builder makes the minimal-leaf rule easy to follow: each Set adds
// exactly one leaf.
//
// The builder tracks errors internally to enable method chaining while
// providing error checking through String() or Err().
//
// Example:
//
//	body := catalyst.Body{}.
//	    Set("ietf-interfaces:interface.enabled", false).
//	    Set("ietf-interfaces:interface.description", "maintenance")
//
//	value, err := body.String()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Body struct {
	// str contains the JSON string being built
	str string
	// err tracks the first error encountered during building
	err error
}

// Set sets a value at the specified JSON path and returns a new Body
//
// The path uses gjson/sjson dot notation for nested fields. YANG module
// prefixes are part of the key (e.g. "ietf-interfaces:interface.enabled").
// The value can be any type sjson supports (string, number, bool).
//
// If an error occurs, it is stored and returned by String() or Err().
// Once an error occurs, all subsequent operations are no-ops that preserve
// the error.
//
// Returns the Body for method chaining.
func (b Body) Set(path string, value any) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Set(b.str, path, value)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Set(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// SetRaw sets a raw JSON fragment at the specified path and returns a new
// Body. Use this when the value is already encoded JSON (e.g. a nested
// container built separately).
func (b Body) SetRaw(path string, raw string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.SetRaw(b.str, path, raw)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("SetRaw(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// Delete removes a value at the specified JSON path and returns a new Body
//
// If an error occurs, it is stored and returned by String() or Err().
//
// Returns the Body for method chaining.
func (b Body) Delete(path string) Body {
	if b.err != nil {
		return b
	}

	result, err := sjson.Delete(b.str, path)
	if err != nil {
		return Body{str: b.str, err: fmt.Errorf("Delete(%q): %w", path, err)}
	}
	return Body{str: result, err: nil}
}

// String returns the JSON string representation and any error encountered
// during building.
func (b Body) String() (string, error) {
	return b.str, b.err
}

// Err returns any error that occurred during the building process
func (b Body) Err() error {
	return b.err
}

// Res returns the JSON string for further processing with gjson.
// If an error occurred during building, this returns an empty string;
// use Err() or String() to check for errors.
func (b Body) Res() string {
	if b.err != nil {
		return ""
	}
	return b.str
}
