// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// The operation façade. Each method composes the path resolver, transport
// and normalizer into one documented behavior: validate locally, read or
// mutate the minimal subtree, normalize, then filter. Errors from lower
// layers pass through unchanged so callers can distinguish them with
// errors.As; no new failure modes are introduced here.

// Interfaces returns the canonical records of all interfaces, optionally
// filtered. Records merge the operational interface table with VLAN
// membership so access VLAN assignments are populated without one
// configuration request per port.
//
// The filter is applied client-side after normalization; pass a zero
// InterfaceFilter for all interfaces.
func (c *Client) Interfaces(ctx context.Context, filter InterfaceFilter) ([]InterfaceRecord, error) {
	if err := filter.validate(); err != nil {
		return nil, err
	}

	res, err := c.GetData(ctx, interfacesOperPath(""), Fields(fieldsInterfaceOper))
	if err != nil {
		return nil, fmt.Errorf("interfaces: %w", err)
	}
	records := normalizeInterfaces(res.Raw)

	vlanRes, err := c.GetData(ctx, vlansOperPath(0), Fields(fieldsVlanOper))
	if err != nil {
		return nil, fmt.Errorf("interfaces: vlan membership: %w", err)
	}
	membership := vlanMembershipIndex(normalizeVlans(vlanRes.Raw))
	for i := range records {
		records[i].AccessVLAN = membership[records[i].Name]
	}

	return FilterInterfaces(records, filter), nil
}

// Interface returns the canonical record of one interface by name.
// Abbreviated names (Gi1/0/1) are expanded before resolution. The access
// VLAN leaf is read from the configuration datastore; its absence means
// the port is not an access port and is not an error.
func (c *Client) Interface(ctx context.Context, name string) (InterfaceRecord, error) {
	name = NormalizeInterfaceName(name)
	if err := validateInterfaceName(name); err != nil {
		return InterfaceRecord{}, err
	}

	res, err := c.GetData(ctx, interfacesOperPath(name), Fields(fieldsInterfaceOper))
	if err != nil {
		return InterfaceRecord{}, fmt.Errorf("interface %s: %w", name, err)
	}

	records := normalizeInterfaces(res.Raw)
	if len(records) == 0 {
		return InterfaceRecord{}, fmt.Errorf("interface %s: %w", name,
			&DeviceError{StatusCode: http.StatusNotFound, Body: "interface not found"})
	}
	record := records[0]

	vlanRes, err := c.GetData(ctx, accessVlanPath(name))
	switch {
	case err == nil:
		record.AccessVLAN = int(intLeaf(vlanRes.Get("Cisco-IOS-XE-switch:vlan"), 0))
	case isNotFound(err):
		// Not an access port
	default:
		return InterfaceRecord{}, fmt.Errorf("interface %s: access vlan: %w", name, err)
	}

	return record, nil
}

// isNotFound reports whether an error is a device 404 for a missing
// datastore resource.
func isNotFound(err error) bool {
	var devErr *DeviceError
	return errors.As(err, &devErr) && devErr.StatusCode == http.StatusNotFound
}

// Vlans returns the canonical records of all VLANs.
func (c *Client) Vlans(ctx context.Context) ([]VlanRecord, error) {
	res, err := c.GetData(ctx, vlansOperPath(0), Fields(fieldsVlanOper))
	if err != nil {
		return nil, fmt.Errorf("vlans: %w", err)
	}
	return normalizeVlans(res.Raw), nil
}

// Vlan returns the canonical record of one VLAN by id. A VLAN with no
// member ports yields a record with an empty member set, not an error.
func (c *Client) Vlan(ctx context.Context, id int) (VlanRecord, error) {
	if err := validateVlanID(id); err != nil {
		return VlanRecord{}, err
	}

	res, err := c.GetData(ctx, vlansOperPath(id), Fields(fieldsVlanOper))
	if err != nil {
		return VlanRecord{}, fmt.Errorf("vlan %d: %w", id, err)
	}

	records := normalizeVlans(res.Raw)
	if len(records) == 0 {
		return VlanRecord{}, fmt.Errorf("vlan %d: %w", id,
			&DeviceError{StatusCode: http.StatusNotFound, Body: "vlan not found"})
	}
	return records[0], nil
}

// SystemSummary returns the device software version, uptime, model and
// serial number. The values are immutable per boot but refetched on every
// call; nothing is cached.
func (c *Client) SystemSummary(ctx context.Context) (SystemSummary, error) {
	res, err := c.GetData(ctx, pathDeviceHardware, Fields(fieldsSystemData))
	if err != nil {
		return SystemSummary{}, fmt.Errorf("system summary: %w", err)
	}
	return normalizeSystemSummary(res.Raw), nil
}

// DeviceHealth returns a point-in-time snapshot of CPU, memory and
// environment sensor state. The snapshot is assembled from three scoped
// reads and is never cached across calls.
func (c *Client) DeviceHealth(ctx context.Context) (HealthSnapshot, error) {
	cpuRes, err := c.GetData(ctx, pathCPUUtilization, Fields(fieldsCPU))
	if err != nil {
		return HealthSnapshot{}, fmt.Errorf("device health: cpu: %w", err)
	}

	memRes, err := c.GetData(ctx, pathMemoryStats)
	if err != nil {
		return HealthSnapshot{}, fmt.Errorf("device health: memory: %w", err)
	}

	envRes, err := c.GetData(ctx, pathEnvSensors)
	if err != nil {
		return HealthSnapshot{}, fmt.Errorf("device health: environment: %w", err)
	}

	used, total := normalizeMemory(memRes.Raw)
	return HealthSnapshot{
		CPUPercent:  normalizeCPU(cpuRes.Raw),
		MemoryUsed:  used,
		MemoryTotal: total,
		Sensors:     normalizeSensors(envRes.Raw),
	}, nil
}

// RecentLogs returns the most recent syslog buffer entries,
// most-recent-first. Count 0 selects the default (50); counts above 1000
// are rejected. The optional search term filters entries client-side
// after normalization, case-insensitively, so fewer than count entries
// may be returned.
func (c *Client) RecentLogs(ctx context.Context, count int, search string) ([]LogEntry, error) {
	count, err := normalizeLogCount(count)
	if err != nil {
		return nil, err
	}

	res, err := c.GetData(ctx, syslogPath())
	if err != nil {
		return nil, fmt.Errorf("recent logs: %w", err)
	}

	return FilterLogs(normalizeLogs(res.Raw, count), search), nil
}

// TransceiverStats returns the optical readings of all transceivers with
// threshold-derived statuses. Readings the device did not report are
// marked unknown rather than failing the call.
func (c *Client) TransceiverStats(ctx context.Context) ([]TransceiverStats, error) {
	res, err := c.GetData(ctx, pathTransceivers)
	if err != nil {
		return nil, fmt.Errorf("transceiver stats: %w", err)
	}
	return normalizeTransceivers(res.Raw), nil
}

// InterfaceCounters returns per-interface error counters (in/out/CRC).
// Counters the device did not report are -1.
func (c *Client) InterfaceCounters(ctx context.Context) ([]InterfaceCounters, error) {
	res, err := c.GetData(ctx, interfacesOperPath(""), Fields(fieldsInterfaceStats))
	if err != nil {
		return nil, fmt.Errorf("interface counters: %w", err)
	}
	return normalizeCounters(res.Raw), nil
}

// SetInterfaceState sets an interface's administrative state. State must
// be "up" or "down". The PATCH body contains only the enabled leaf; no
// other interface configuration is touched.
func (c *Client) SetInterfaceState(ctx context.Context, name, state string) error {
	name = NormalizeInterfaceName(name)
	if err := validateInterfaceName(name); err != nil {
		return err
	}

	var up bool
	switch strings.ToLower(state) {
	case StatusUp:
		up = true
	case StatusDown:
		up = false
	default:
		return &ValidationError{Field: "state", Message: fmt.Sprintf("%q must be up or down", state)}
	}

	body, err := adminStateBody(up)
	if err != nil {
		return fmt.Errorf("set interface state: %w", err)
	}

	if _, err := c.PatchData(ctx, interfaceEnabledPath(name), body); err != nil {
		return fmt.Errorf("set interface state: %w", err)
	}

	c.logger.Info("interface admin state changed",
		"host", c.Host,
		"interface", name,
		"state", state)
	return nil
}

// SetInterfaceDescription sets an interface's description leaf. An empty
// description is allowed and clears the field.
func (c *Client) SetInterfaceDescription(ctx context.Context, name, description string) error {
	name = NormalizeInterfaceName(name)
	if err := validateInterfaceName(name); err != nil {
		return err
	}

	body, err := descriptionBody(description)
	if err != nil {
		return fmt.Errorf("set interface description: %w", err)
	}

	if _, err := c.PatchData(ctx, interfaceDescriptionPath(name), body); err != nil {
		return fmt.Errorf("set interface description: %w", err)
	}
	return nil
}

// SetInterfaceVlan assigns an interface to an access VLAN. The VLAN id is
// validated locally for range (1-4094) before any request; whether the
// VLAN actually exists is the device's call, and a rejection is surfaced
// verbatim as a DeviceError.
func (c *Client) SetInterfaceVlan(ctx context.Context, name string, vlanID int) error {
	name = NormalizeInterfaceName(name)
	if err := validateInterfaceName(name); err != nil {
		return err
	}
	if err := validateVlanID(vlanID); err != nil {
		return err
	}

	body, err := accessVlanBody(vlanID)
	if err != nil {
		return fmt.Errorf("set interface vlan: %w", err)
	}

	if _, err := c.PatchData(ctx, accessVlanPath(name), body); err != nil {
		return fmt.Errorf("set interface vlan: %w", err)
	}

	c.logger.Info("interface access vlan changed",
		"host", c.Host,
		"interface", name,
		"vlan", vlanID)
	return nil
}

// SetVlanName sets a VLAN's name leaf. The PATCH body contains only the
// name; membership and state are untouched.
func (c *Client) SetVlanName(ctx context.Context, id int, name string) error {
	if err := validateVlanID(id); err != nil {
		return err
	}
	if err := validateVlanName(name); err != nil {
		return err
	}

	body, err := vlanNameBody(name)
	if err != nil {
		return fmt.Errorf("set vlan name: %w", err)
	}

	if _, err := c.PatchData(ctx, vlanNamePath(id), body); err != nil {
		return fmt.Errorf("set vlan name: %w", err)
	}

	c.logger.Info("vlan renamed",
		"host", c.Host,
		"vlan", id,
		"name", name)
	return nil
}
