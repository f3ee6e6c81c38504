// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Normalization converts raw YANG JSON into the canonical record types.
// All knowledge of YANG naming conventions lives in this file; callers
// only ever see canonical records. Every function here is pure and
// tolerant: missing optional leaves become absent/unknown values, empty
// lists become empty slices, and string-typed numbers are coerced with an
// explicit fallback instead of an error.

// listAt returns the first existing list at any of the given gjson paths.
// RESTCONF wraps a full list and a single keyed entry differently
// (container.list vs module:list), so broad and scoped reads of the same
// resource need both shapes probed. A single object is wrapped as a
// one-element list.
func listAt(raw string, paths ...string) []gjson.Result {
	for _, p := range paths {
		r := gjson.Get(raw, p)
		if !r.Exists() {
			continue
		}
		if r.IsArray() {
			return r.Array()
		}
		if r.IsObject() {
			return []gjson.Result{r}
		}
	}
	return nil
}

// intLeaf coerces a leaf to int64. YANG uint64/int64 values arrive as JSON
// strings, smaller integers as numbers; both are accepted. Returns the
// fallback when the leaf is absent or not parsable as a number.
func intLeaf(v gjson.Result, fallback int64) int64 {
	switch v.Type {
	case gjson.Number:
		return v.Int()
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return fallback
		}
		var n int64
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return fallback
		}
		return n
	default:
		return fallback
	}
}

// uintLeaf coerces a leaf to uint64 with a zero fallback.
func uintLeaf(v gjson.Result) uint64 {
	n := intLeaf(v, 0)
	if n < 0 {
		return 0
	}
	return uint64(n)
}

// floatLeaf coerces a leaf to float64. Returns ok=false when the leaf is
// absent or not parsable.
func floatLeaf(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Float(), true
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, false
		}
		var f float64
		if _, err := fmt.Sscanf(s, "%g", &f); err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// adminStatus maps the oper-model admin-status identity to a canonical
// value (if-state-up -> up).
func adminStatus(v gjson.Result) string {
	s := strings.ToLower(v.String())
	switch {
	case strings.HasSuffix(s, "up"):
		return StatusUp
	case strings.HasSuffix(s, "down"):
		return StatusDown
	default:
		return StatusUnknown
	}
}

// operStatus maps the oper-model oper-status identity to a canonical
// value. IOS-XE reports if-oper-state-ready for a passing interface and
// if-oper-state-no-pass / if-oper-state-lower-layer-down otherwise.
func operStatus(v gjson.Result) string {
	s := strings.ToLower(v.String())
	switch {
	case strings.HasSuffix(s, "ready"), s == "up":
		return StatusUp
	case strings.Contains(s, "no-pass"), strings.Contains(s, "down"):
		return StatusDown
	default:
		return StatusUnknown
	}
}

// speedString renders the speed leaf (bits per second, often a string) as
// a human-oriented rate. Unparsable speeds become unknown.
func speedString(v gjson.Result) string {
	bps, ok := floatLeaf(v)
	if !ok || bps <= 0 {
		return StatusUnknown
	}
	switch {
	case bps >= 1e9:
		return fmt.Sprintf("%gGb/s", bps/1e9)
	case bps >= 1e6:
		return fmt.Sprintf("%gMb/s", bps/1e6)
	default:
		return fmt.Sprintf("%gKb/s", bps/1e3)
	}
}

// duplexString maps the negotiated duplex identity to full/half.
func duplexString(v gjson.Result) string {
	s := strings.ToLower(v.String())
	switch {
	case strings.Contains(s, "full"):
		return "full"
	case strings.Contains(s, "half"):
		return "half"
	default:
		return StatusUnknown
	}
}

// normalizeInterface converts one oper-model interface entry.
func normalizeInterface(e gjson.Result) InterfaceRecord {
	return InterfaceRecord{
		Name:        e.Get("name").String(),
		AdminStatus: adminStatus(e.Get("admin-status")),
		OperStatus:  operStatus(e.Get("oper-status")),
		Speed:       speedString(e.Get("speed")),
		Duplex:      duplexString(e.Get("ether-state.negotiated-duplex-mode")),
		Description: e.Get("description").String(),
		MACAddress:  e.Get("phys-address").String(),
	}
}

// normalizeInterfaces converts an interfaces-oper payload (full list or
// single keyed entry) into canonical records.
func normalizeInterfaces(raw string) []InterfaceRecord {
	entries := listAt(raw,
		"Cisco-IOS-XE-interfaces-oper:interfaces.interface",
		"Cisco-IOS-XE-interfaces-oper:interface")

	records := make([]InterfaceRecord, 0, len(entries))
	for _, e := range entries {
		rec := normalizeInterface(e)
		if rec.Name == "" {
			// An entry without its key is unusable
			continue
		}
		records = append(records, rec)
	}
	return records
}

// normalizeVlan converts one vlan-oper entry. A VLAN with no member
// interfaces yields an empty (non-nil) Members slice.
func normalizeVlan(e gjson.Result) VlanRecord {
	rec := VlanRecord{
		ID:      int(intLeaf(e.Get("id"), 0)),
		Name:    e.Get("name").String(),
		Status:  vlanStatus(e.Get("status")),
		Members: []VlanMember{},
	}

	for _, m := range e.Get("vlan-interfaces").Array() {
		name := m.Get("interface").String()
		if name == "" {
			continue
		}
		status := StatusUnknown
		if s := m.Get("status"); s.Exists() {
			status = vlanStatus(s)
		}
		rec.Members = append(rec.Members, VlanMember{Interface: name, Status: status})
	}
	return rec
}

// vlanStatus maps the vlan-oper status identity (vlan-status-active) to a
// canonical value.
func vlanStatus(v gjson.Result) string {
	s := strings.ToLower(v.String())
	switch {
	case strings.Contains(s, "active"), strings.HasSuffix(s, "up"):
		return StatusUp
	case strings.Contains(s, "suspend"), strings.Contains(s, "shutdown"), strings.HasSuffix(s, "down"):
		return StatusDown
	default:
		return StatusUnknown
	}
}

// normalizeVlans converts a vlan-oper payload into canonical records.
func normalizeVlans(raw string) []VlanRecord {
	entries := listAt(raw,
		"Cisco-IOS-XE-vlan-oper:vlans.vlan",
		"Cisco-IOS-XE-vlan-oper:vlan")

	records := make([]VlanRecord, 0, len(entries))
	for _, e := range entries {
		rec := normalizeVlan(e)
		if rec.ID == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// vlanMembershipIndex builds an interface -> VLAN id map from VLAN
// membership, used to merge access VLAN assignments into a broad
// interface read without one config request per port.
func vlanMembershipIndex(vlans []VlanRecord) map[string]int {
	idx := make(map[string]int)
	for _, v := range vlans {
		for _, m := range v.Members {
			if _, seen := idx[m.Interface]; !seen {
				idx[m.Interface] = v.ID
			}
		}
	}
	return idx
}

// sensorType classifies a sensor by its device-assigned name.
func sensorType(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "fan"):
		return SensorFan
	case strings.Contains(n, "temp"):
		return SensorTemperature
	case strings.Contains(n, "power"), strings.Contains(n, "ps"), strings.Contains(n, "volt"), strings.Contains(n, "curr"):
		return SensorPowerSupply
	default:
		return StatusUnknown
	}
}

// sensorState maps the device sensor state to ok/warning/critical.
func sensorState(v gjson.Result) string {
	s := strings.ToLower(v.String())
	switch {
	case strings.Contains(s, "normal"), strings.Contains(s, "ok"), strings.Contains(s, "good"):
		return SensorOK
	case strings.Contains(s, "warn"), strings.Contains(s, "minor"):
		return SensorWarning
	case strings.Contains(s, "crit"), strings.Contains(s, "fault"), strings.Contains(s, "fail"), strings.Contains(s, "major"):
		return SensorCritical
	default:
		return StatusUnknown
	}
}

// normalizeSensors converts an environment-sensors payload.
func normalizeSensors(raw string) []EnvironmentSensor {
	entries := listAt(raw,
		"Cisco-IOS-XE-environment-oper:environment-sensors.environment-sensor",
		"Cisco-IOS-XE-environment-oper:environment-sensor")

	sensors := make([]EnvironmentSensor, 0, len(entries))
	for _, e := range entries {
		name := e.Get("name").String()
		reading := StatusUnknown
		if val, ok := floatLeaf(e.Get("current-reading")); ok {
			units := e.Get("sensor-units").String()
			if units != "" {
				reading = fmt.Sprintf("%g %s", val, units)
			} else {
				reading = fmt.Sprintf("%g", val)
			}
		}
		sensors = append(sensors, EnvironmentSensor{
			Type:    sensorType(name),
			Name:    name,
			Reading: reading,
			State:   sensorState(e.Get("state")),
		})
	}
	return sensors
}

// normalizeCPU extracts the five-second CPU utilization. Returns -1 when
// the device did not report a parsable value.
func normalizeCPU(raw string) int {
	v := gjson.Get(raw, "Cisco-IOS-XE-process-cpu-oper:cpu-utilization.five-seconds")
	if !v.Exists() {
		v = gjson.Get(raw, "Cisco-IOS-XE-process-cpu-oper:cpu-usage.cpu-utilization.five-seconds")
	}
	n := intLeaf(v, -1)
	if n < 0 || n > 100 {
		return -1
	}
	return int(n)
}

// normalizeMemory extracts processor pool used/total bytes. The memory
// statistics list carries one entry per pool; only the Processor pool
// matters for health.
func normalizeMemory(raw string) (used, total uint64) {
	entries := listAt(raw,
		"Cisco-IOS-XE-memory-oper:memory-statistics.memory-statistic",
		"Cisco-IOS-XE-memory-oper:memory-statistic")

	for _, e := range entries {
		if !strings.EqualFold(e.Get("name").String(), "Processor") {
			continue
		}
		return uintLeaf(e.Get("used-memory")), uintLeaf(e.Get("total-memory"))
	}
	return 0, 0
}

// normalizeLogs converts a syslog-oper payload into canonical entries,
// most-recent-first, truncated to count. The device reports the buffer
// oldest-first.
func normalizeLogs(raw string, count int) []LogEntry {
	entries := listAt(raw,
		"Cisco-IOS-XE-syslog-oper:syslog-messages.message",
		"Cisco-IOS-XE-syslog-oper:message")

	logs := make([]LogEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if len(logs) == count {
			break
		}
		e := entries[i]
		logs = append(logs, LogEntry{
			Timestamp: e.Get("time-stamp").String(),
			Severity:  e.Get("severity").String(),
			Facility:  e.Get("facility").String(),
			Message:   e.Get("msg-text").String(),
		})
	}
	return logs
}

// opticalReading builds an OpticalReading from a value leaf, its unit and
// the optional per-metric threshold container.
func opticalReading(v gjson.Result, unit string, thresholds gjson.Result) OpticalReading {
	val, ok := floatLeaf(v)
	if !ok {
		return OpticalReading{Unit: unit, Status: StatusUnknown, Known: false}
	}
	return OpticalReading{
		Value:  val,
		Unit:   unit,
		Status: opticalStatus(val, thresholds),
		Known:  true,
	}
}

// opticalStatus derives a status from alarm/warning thresholds. A value
// outside the alarm band is critical, outside the warning band is warning,
// otherwise ok. Missing thresholds cannot flag anything, so a known value
// without thresholds is ok.
func opticalStatus(val float64, t gjson.Result) string {
	if !t.Exists() {
		return SensorOK
	}
	if la, ok := floatLeaf(t.Get("low-alarm")); ok && val < la {
		return SensorCritical
	}
	if ha, ok := floatLeaf(t.Get("high-alarm")); ok && val > ha {
		return SensorCritical
	}
	if lw, ok := floatLeaf(t.Get("low-warning")); ok && val < lw {
		return SensorWarning
	}
	if hw, ok := floatLeaf(t.Get("high-warning")); ok && val > hw {
		return SensorWarning
	}
	return SensorOK
}

// normalizeTransceivers converts a transceiver-oper payload.
func normalizeTransceivers(raw string) []TransceiverStats {
	entries := listAt(raw,
		"Cisco-IOS-XE-transceiver-oper:transceiver-oper-data.transceiver",
		"Cisco-IOS-XE-transceiver-oper:transceiver")

	stats := make([]TransceiverStats, 0, len(entries))
	for _, e := range entries {
		name := e.Get("name").String()
		if name == "" {
			continue
		}
		th := e.Get("thresholds")
		stats = append(stats, TransceiverStats{
			Interface:   name,
			TxPower:     opticalReading(e.Get("tx-power"), "dBm", th.Get("tx-power")),
			RxPower:     opticalReading(e.Get("rx-power"), "dBm", th.Get("rx-power")),
			Temperature: opticalReading(e.Get("temperature"), "Celsius", th.Get("temperature")),
			Voltage:     opticalReading(e.Get("voltage"), "Volts", th.Get("voltage")),
			BiasCurrent: opticalReading(e.Get("current"), "mA", th.Get("current")),
		})
	}
	return stats
}

// normalizeCounters converts interface statistics into error counter
// records. Counters the device did not report are -1.
func normalizeCounters(raw string) []InterfaceCounters {
	entries := listAt(raw,
		"Cisco-IOS-XE-interfaces-oper:interfaces.interface",
		"Cisco-IOS-XE-interfaces-oper:interface")

	counters := make([]InterfaceCounters, 0, len(entries))
	for _, e := range entries {
		name := e.Get("name").String()
		if name == "" {
			continue
		}
		stats := e.Get("statistics")
		counters = append(counters, InterfaceCounters{
			Name:      name,
			InErrors:  intLeaf(stats.Get("in-errors"), -1),
			OutErrors: intLeaf(stats.Get("out-errors"), -1),
			CRCErrors: intLeaf(stats.Get("in-crc-errors"), -1),
		})
	}
	return counters
}

// normalizeSystemSummary converts a device-hardware payload. Uptime is
// derived from boot-time and current-time; unparsable times leave it zero.
func normalizeSystemSummary(raw string) SystemSummary {
	hw := gjson.Get(raw, "Cisco-IOS-XE-device-hardware-oper:device-hardware")
	if !hw.Exists() {
		hw = gjson.Get(raw, "Cisco-IOS-XE-device-hardware-oper:device-hardware-data.device-hardware")
	}

	summary := SystemSummary{
		Version: strings.TrimSpace(hw.Get("device-system-data.software-version").String()),
	}

	boot := hw.Get("device-system-data.boot-time").String()
	current := hw.Get("device-system-data.current-time").String()
	if bt, err := time.Parse(time.RFC3339, boot); err == nil {
		if ct, err := time.Parse(time.RFC3339, current); err == nil && ct.After(bt) {
			summary.Uptime = ct.Sub(bt)
		}
	}

	for _, inv := range hw.Get("device-inventory").Array() {
		if !strings.Contains(strings.ToLower(inv.Get("hw-type").String()), "chassis") {
			continue
		}
		summary.Model = inv.Get("part-number").String()
		summary.SerialNumber = inv.Get("serial-number").String()
		break
	}
	return summary
}

// normalizeCapabilities extracts the capability URIs from an
// ietf-restconf-monitoring payload.
func normalizeCapabilities(raw string) []string {
	caps := gjson.Get(raw, "ietf-restconf-monitoring:capabilities.capability")
	if !caps.Exists() {
		caps = gjson.Get(raw, "ietf-restconf-monitoring:restconf-state.capabilities.capability")
	}

	list := make([]string, 0, len(caps.Array()))
	for _, c := range caps.Array() {
		if s := c.String(); s != "" {
			list = append(list, s)
		}
	}
	return list
}
