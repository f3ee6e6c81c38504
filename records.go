// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import "time"

// Canonical status values shared by the record types. Device payloads are
// normalized to these values; anything the normalizer cannot map becomes
// StatusUnknown rather than leaking a device-specific identity string.
const (
	StatusUp      = "up"
	StatusDown    = "down"
	StatusUnknown = "unknown"
)

// Environment sensor states
const (
	SensorOK       = "ok"
	SensorWarning  = "warning"
	SensorCritical = "critical"
)

// Environment sensor types
const (
	SensorFan         = "fan"
	SensorPowerSupply = "power-supply"
	SensorTemperature = "temperature"
)

// InterfaceRecord is the canonical view of one switch interface, merged
// from the operational and configuration datastores. Name is the unique
// key and round-trips unchanged through any filter.
type InterfaceRecord struct {
	// Name is the full interface name (e.g. GigabitEthernet1/0/1)
	Name string

	// AdminStatus is the configured state: up or down
	AdminStatus string

	// OperStatus is the operational state: up, down or unknown
	OperStatus string

	// Speed is the negotiated speed (e.g. "1000Mb/s"), or unknown
	Speed string

	// Duplex is the negotiated duplex mode (full, half), or unknown
	Duplex string

	// AccessVLAN is the configured access VLAN id, 0 if not an access port
	AccessVLAN int

	// Description is the configured description, empty if unset
	Description string

	// MACAddress is the interface hardware address, empty if not reported
	MACAddress string
}

// VlanMember describes one interface's membership in a VLAN.
type VlanMember struct {
	// Interface is the member interface name
	Interface string

	// Status is the member's per-VLAN state, or unknown
	Status string
}

// VlanRecord is the canonical view of one VLAN. ID is the unique key
// (1-4094) and round-trips unchanged through any filter. A VLAN with no
// member ports has an empty Members slice, never a nil record.
type VlanRecord struct {
	// ID is the VLAN id (1-4094)
	ID int

	// Name is the configured VLAN name
	Name string

	// Status is the VLAN operational state, or unknown
	Status string

	// Members lists the member interfaces in device order
	Members []VlanMember
}

// EnvironmentSensor is one hardware sensor reading.
type EnvironmentSensor struct {
	// Type classifies the sensor: fan, power-supply or temperature
	Type string

	// Name is the device's sensor name
	Name string

	// Reading is the sensor value with its unit (e.g. "43 Celsius")
	Reading string

	// State is the normalized sensor state: ok, warning, critical or unknown
	State string
}

// HealthSnapshot is a point-in-time view of device health. It is never
// cached across calls; every DeviceHealth invocation reads the device.
type HealthSnapshot struct {
	// CPUPercent is the CPU utilization 0-100, or -1 when not reported
	CPUPercent int

	// MemoryUsed is processor pool memory in use, in bytes, 0 if unknown
	MemoryUsed uint64

	// MemoryTotal is total processor pool memory, in bytes, 0 if unknown
	MemoryTotal uint64

	// Sensors holds the environment sensor readings
	Sensors []EnvironmentSensor
}

// LogEntry is one syslog buffer message. RecentLogs returns entries
// most-recent-first with a bounded count.
type LogEntry struct {
	// Timestamp is the device-reported message time, verbatim
	Timestamp string

	// Severity is the syslog severity name (e.g. notice, warning)
	Severity string

	// Facility is the generating facility (e.g. LINEPROTO, SYS)
	Facility string

	// Message is the log message text
	Message string
}

// OpticalReading is one transceiver measurement with its unit and a
// threshold-derived status.
type OpticalReading struct {
	// Value is the measured value; meaningless when Known is false
	Value float64

	// Unit is the measurement unit (dBm, Celsius, Volts, mA)
	Unit string

	// Status is ok, warning, critical or unknown (when the leaf was
	// absent or unparsable)
	Status string

	// Known reports whether the device provided a parsable value
	Known bool
}

// TransceiverStats holds the optical readings of one fiber interface.
type TransceiverStats struct {
	// Interface is the interface the transceiver is seated in
	Interface string

	TxPower     OpticalReading
	RxPower     OpticalReading
	Temperature OpticalReading
	Voltage     OpticalReading
	BiasCurrent OpticalReading
}

// InterfaceCounters holds per-interface error counters. A counter the
// device did not report is -1.
type InterfaceCounters struct {
	// Name is the interface name
	Name string

	// InErrors is the inbound error count
	InErrors int64

	// OutErrors is the outbound error count
	OutErrors int64

	// CRCErrors is the inbound CRC error count
	CRCErrors int64
}

// SystemSummary describes the device software and hardware identity. The
// values are immutable per boot but refetched on every call; there is no
// caching layer.
type SystemSummary struct {
	// Version is the IOS-XE software version string
	Version string

	// Uptime is the time since boot, 0 when the device did not report
	// parsable boot/current times
	Uptime time.Duration

	// Model is the chassis model (e.g. WS-C3850-48P)
	Model string

	// SerialNumber is the chassis serial number
	SerialNumber string
}
