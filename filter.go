// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import "strings"

// Filtering is applied strictly after normalization, so filter semantics
// are identical regardless of device payload shape. Every filter is a pure
// stateless function over a normalized record list: records are copied by
// value and key fields are never renamed or renumbered.

// InterfaceFilter selects interface records after normalization.
//
// Status partitions records by a single field so the up/down selections
// are exact complements: "up" and "down" match the administrative state,
// "connected" and "notconnect" match the operational state. An empty
// Status matches everything.
//
// Name matches the interface name, case-insensitively. With Exact set the
// whole name must match (abbreviations are expanded first); otherwise Name
// is a substring match.
type InterfaceFilter struct {
	// Status is "", "up", "down", "connected" or "notconnect"
	Status string

	// Name is an exact or substring interface name match, empty for all
	Name string

	// Exact switches Name from substring to whole-name matching
	Exact bool
}

// statusFilterValues enumerates the accepted Status values.
var statusFilterValues = map[string]bool{
	"":           true,
	"up":         true,
	"down":       true,
	"connected":  true,
	"notconnect": true,
}

// validate checks the filter locally before any network call.
func (f InterfaceFilter) validate() error {
	if !statusFilterValues[strings.ToLower(f.Status)] {
		return &ValidationError{
			Field:   "status filter",
			Message: "must be one of up, down, connected, notconnect",
		}
	}
	return nil
}

// matches reports whether a record passes the filter.
func (f InterfaceFilter) matches(r InterfaceRecord) bool {
	switch strings.ToLower(f.Status) {
	case "up":
		if r.AdminStatus != StatusUp {
			return false
		}
	case "down":
		if r.AdminStatus != StatusDown {
			return false
		}
	case "connected":
		if r.OperStatus != StatusUp {
			return false
		}
	case "notconnect":
		if r.OperStatus == StatusUp {
			return false
		}
	}

	if f.Name != "" {
		want := strings.ToLower(NormalizeInterfaceName(f.Name))
		got := strings.ToLower(r.Name)
		if f.Exact {
			if got != want {
				return false
			}
		} else if !strings.Contains(got, want) {
			return false
		}
	}
	return true
}

// FilterInterfaces returns the records matching the filter, preserving
// device order. The input slice is never modified.
func FilterInterfaces(records []InterfaceRecord, filter InterfaceFilter) []InterfaceRecord {
	out := make([]InterfaceRecord, 0, len(records))
	for _, r := range records {
		if filter.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterLogs returns the entries whose facility or message text contains
// the search term, case-insensitively. An empty term matches everything.
// Ordering (most-recent-first) is preserved.
func FilterLogs(entries []LogEntry, search string) []LogEntry {
	if search == "" {
		return entries
	}

	term := strings.ToLower(search)
	out := make([]LogEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Message), term) ||
			strings.Contains(strings.ToLower(e.Facility), term) ||
			strings.Contains(strings.ToLower(e.Severity), term) {
			out = append(out, e)
		}
	}
	return out
}
