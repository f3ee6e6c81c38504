// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"context"
	"fmt"
	"time"
)

// PATCH body builders. RESTCONF plain-merge PATCH semantics mean a body
// must contain only the leaves being changed so unrelated configuration
// is never reset; each builder therefore produces exactly one leaf.

// adminStateBody builds the body for the ietf-interfaces enabled leaf.
func adminStateBody(up bool) (string, error) {
	return Body{}.Set("ietf-interfaces:enabled", up).String()
}

// descriptionBody builds the body for the ietf-interfaces description leaf.
func descriptionBody(description string) (string, error) {
	return Body{}.Set("ietf-interfaces:description", description).String()
}

// accessVlanBody builds the body for the switchport access VLAN leaf.
func accessVlanBody(vlanID int) (string, error) {
	return Body{}.Set("Cisco-IOS-XE-switch:vlan", vlanID).String()
}

// vlanNameBody builds the body for the VLAN name leaf.
func vlanNameBody(name string) (string, error) {
	return Body{}.Set("Cisco-IOS-XE-native:name", name).String()
}

// BouncePhase identifies the last phase a bounce reached. The bounce is an
// explicit two-state machine so that a failure at each transition is
// independently observable.
type BouncePhase string

const (
	// BouncePending means phase 1 (admin-down) was never accepted; the
	// interface is unchanged
	BouncePending BouncePhase = "pending"

	// BounceDownIssued means admin-down was accepted but admin-up failed;
	// the interface is left administratively down
	BounceDownIssued BouncePhase = "down-issued"

	// BounceUpIssued means both phases were accepted
	BounceUpIssued BouncePhase = "up-issued"
)

// BounceResult reports the outcome of a BounceInterface call.
type BounceResult struct {
	// Interface is the normalized interface name that was bounced
	Interface string

	// Phase is the terminal phase the state machine reached
	Phase BouncePhase

	// SettleDelay is the inter-phase delay that was applied
	SettleDelay time.Duration
}

// Success reports whether both phases completed.
func (r BounceResult) Success() bool {
	return r.Phase == BounceUpIssued
}

// BounceInterface disables and re-enables an interface in strict order:
// phase 1 issues admin-down, the settle delay elapses, phase 2 issues
// admin-up.
//
// Cancellation is not supported mid-bounce: once phase 1 has been accepted
// by the device, phase 2 is attempted best-effort even if the caller's
// context is canceled during the settle interval, so the operation never
// stops in an undefined half-state by its own choice.
//
// If phase 1 fails the interface is unchanged and the underlying error is
// returned. If phase 1 succeeds and phase 2 fails, the interface is left
// administratively down and the returned error is a *PartialFailureError;
// this outcome is never collapsed into a generic failure. No automatic
// rollback is attempted; recovery is a deliberate follow-up by the caller
// (e.g. SetInterfaceState up).
//
// The settle delay blocks only this call. Other operations on the same
// client proceed concurrently.
func (c *Client) BounceInterface(ctx context.Context, name string) (BounceResult, error) {
	name = NormalizeInterfaceName(name)
	result := BounceResult{
		Interface:   name,
		Phase:       BouncePending,
		SettleDelay: c.SettleDelay,
	}

	if err := validateInterfaceName(name); err != nil {
		return result, err
	}

	path := interfaceEnabledPath(name)

	downBody, err := adminStateBody(false)
	if err != nil {
		return result, fmt.Errorf("bounce interface: %w", err)
	}
	upBody, err := adminStateBody(true)
	if err != nil {
		return result, fmt.Errorf("bounce interface: %w", err)
	}

	c.logger.Info("bouncing interface",
		"host", c.Host,
		"interface", name,
		"settle_delay", c.SettleDelay)

	// Phase 1: admin-down
	if _, err := c.PatchData(ctx, path, downBody); err != nil {
		return result, fmt.Errorf("bounce interface: admin-down failed: %w", err)
	}
	result.Phase = BounceDownIssued

	// Phase 1 is accepted; from here the operation ignores caller
	// cancellation so the interface is not abandoned in the down state
	// without at least attempting recovery.
	time.Sleep(c.SettleDelay)

	// Phase 2: admin-up, best-effort
	if _, err := c.PatchData(context.WithoutCancel(ctx), path, upBody); err != nil {
		c.logger.Error("bounce phase 2 failed, interface left down",
			"host", c.Host,
			"interface", name,
			"error", err.Error())
		return result, &PartialFailureError{
			Operation: "bounce interface " + name,
			Completed: []string{"admin-down"},
			Failed:    "admin-up",
			State:     "admin-down",
			Err:       err,
		}
	}
	result.Phase = BounceUpIssued

	c.logger.Info("interface bounced",
		"host", c.Host,
		"interface", name)

	return result, nil
}
