// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// VLAN id range per IEEE 802.1Q
const (
	MinVlanID = 1
	MaxVlanID = 4094
)

// Log retrieval bounds
const (
	DefaultLogCount = 50
	MaxLogCount     = 1000
)

// Resource paths relative to the RESTCONF data root. Every YANG container
// and leaf name the library knows about lives in this file; the rest of
// the code only ever sees resolved paths and canonical records.
const (
	pathInterfacesOper  = "Cisco-IOS-XE-interfaces-oper:interfaces/interface"
	pathInterfaceConfig = "ietf-interfaces:interfaces/interface"
	pathVlansOper       = "Cisco-IOS-XE-vlan-oper:vlans/vlan"
	pathNativeVlanList  = "Cisco-IOS-XE-native:native/vlan/vlan-list"
	pathNativeInterface = "Cisco-IOS-XE-native:native/interface"
	pathCPUUtilization  = "Cisco-IOS-XE-process-cpu-oper:cpu-usage/cpu-utilization"
	pathMemoryStats     = "Cisco-IOS-XE-memory-oper:memory-statistics/memory-statistic"
	pathEnvSensors      = "Cisco-IOS-XE-environment-oper:environment-sensors"
	pathSyslogMessages  = "Cisco-IOS-XE-syslog-oper:syslog-oper-data/syslog-messages"
	pathTransceivers    = "Cisco-IOS-XE-transceiver-oper:transceiver-oper-data/transceiver"
	pathDeviceHardware  = "Cisco-IOS-XE-device-hardware-oper:device-hardware-data/device-hardware"
	pathCapabilities    = "ietf-restconf-monitoring:restconf-state/capabilities"
)

// Scoping field selections per RFC 8040 "fields". Broad reads request only
// the leaves the normalizer consumes, keeping payloads small.
const (
	fieldsInterfaceOper  = "name;admin-status;oper-status;speed;description;phys-address;ether-state/negotiated-duplex-mode"
	fieldsInterfaceStats = "name;statistics/in-errors;statistics/out-errors;statistics/in-crc-errors"
	fieldsVlanOper       = "id;name;status;vlan-interfaces"
	fieldsCPU            = "five-seconds"
	fieldsSystemData     = "device-system-data;device-inventory"
)

// interfaceNamePattern matches full IOS-XE interface names: an alphabetic
// type, a first unit number, then optional slash/dot separated units
// (e.g. GigabitEthernet1/0/1, Port-channel10, Vlan100, Te1/1/4.100).
var interfaceNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z-]*[0-9]+(?:[/.][0-9]+)*$`)

// interfaceAbbreviations expands the short names operators habitually type
// into the names the YANG datastore keys on.
var interfaceAbbreviations = map[string]string{
	"fa":  "FastEthernet",
	"gi":  "GigabitEthernet",
	"te":  "TenGigabitEthernet",
	"twe": "TwentyFiveGigE",
	"fo":  "FortyGigabitEthernet",
	"hu":  "HundredGigE",
	"po":  "Port-channel",
	"vl":  "Vlan",
	"lo":  "Loopback",
}

// NormalizeInterfaceName expands an abbreviated interface name to its full
// form (Gi1/0/1 -> GigabitEthernet1/0/1). Names that are not recognized
// abbreviations are returned unchanged; validation happens separately.
func NormalizeInterfaceName(name string) string {
	name = strings.TrimSpace(name)

	i := 0
	for i < len(name) && (name[i] == '-' ||
		(name[i] >= 'a' && name[i] <= 'z') ||
		(name[i] >= 'A' && name[i] <= 'Z')) {
		i++
	}
	if i == 0 || i == len(name) {
		return name
	}

	prefix, rest := name[:i], name[i:]
	if full, ok := interfaceAbbreviations[strings.ToLower(prefix)]; ok {
		return full + rest
	}
	return name
}

// validateInterfaceName checks that a name is structurally a valid IOS-XE
// interface name. The check is strict on purpose: resolved names become
// RESTCONF list keys, and rejecting anything outside the expected alphabet
// prevents path injection into the datastore tree.
func validateInterfaceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "interface name", Message: "must not be empty"}
	}
	if !interfaceNamePattern.MatchString(name) {
		return &ValidationError{Field: "interface name", Message: fmt.Sprintf("%q is not a valid interface name", name)}
	}
	return nil
}

// validateVlanID checks that a VLAN id is inside the 802.1Q range.
func validateVlanID(id int) error {
	if id < MinVlanID || id > MaxVlanID {
		return &ValidationError{Field: "vlan id", Message: fmt.Sprintf("%d outside valid range %d-%d", id, MinVlanID, MaxVlanID)}
	}
	return nil
}

// validateVlanName checks a VLAN name before it is written to the device.
// The device enforces its own limits; this only rejects values that cannot
// be a VLAN name at all.
func validateVlanName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "vlan name", Message: "must not be empty"}
	}
	if strings.ContainsAny(name, " \t\n") {
		return &ValidationError{Field: "vlan name", Message: "must not contain whitespace"}
	}
	return nil
}

// normalizeLogCount clamps a requested log count to the supported bounds.
// Zero selects the default.
func normalizeLogCount(count int) (int, error) {
	if count == 0 {
		return DefaultLogCount, nil
	}
	if count < 0 || count > MaxLogCount {
		return 0, &ValidationError{Field: "log count", Message: fmt.Sprintf("%d outside valid range 1-%d", count, MaxLogCount)}
	}
	return count, nil
}

// escapeKey percent-encodes a RESTCONF list key. url.PathEscape leaves "/"
// alone, but a slash inside a key (interface units) must become %2F or the
// device parses it as a path separator.
func escapeKey(key string) string {
	return strings.ReplaceAll(url.PathEscape(key), "/", "%2F")
}

// splitInterfaceName splits a full interface name into its type and unit
// parts (GigabitEthernet1/0/1 -> GigabitEthernet, 1/0/1). The native
// configuration model keys interfaces this way.
func splitInterfaceName(name string) (ifType, unit string) {
	i := 0
	for i < len(name) && (name[i] == '-' ||
		(name[i] >= 'a' && name[i] <= 'z') ||
		(name[i] >= 'A' && name[i] <= 'Z')) {
		i++
	}
	return name[:i], name[i:]
}

// Path resolution. Each resolver is a pure function from validated
// parameters to the exact datastore path; no I/O happens here.

// interfacesOperPath resolves the operational interface list, or one entry
// when name is set.
func interfacesOperPath(name string) string {
	if name == "" {
		return pathInterfacesOper
	}
	return pathInterfacesOper + "=" + escapeKey(name)
}

// interfaceEnabledPath resolves the admin-state leaf of one interface in
// the configuration datastore.
func interfaceEnabledPath(name string) string {
	return pathInterfaceConfig + "=" + escapeKey(name) + "/enabled"
}

// interfaceDescriptionPath resolves the description leaf of one interface.
func interfaceDescriptionPath(name string) string {
	return pathInterfaceConfig + "=" + escapeKey(name) + "/description"
}

// accessVlanPath resolves the switchport access VLAN leaf of one interface
// in the native configuration model.
func accessVlanPath(name string) string {
	ifType, unit := splitInterfaceName(name)
	return fmt.Sprintf("%s/%s=%s/switchport/Cisco-IOS-XE-switch:access/vlan/vlan",
		pathNativeInterface, ifType, escapeKey(unit))
}

// vlansOperPath resolves the operational VLAN list, or one entry when id
// is set (> 0).
func vlansOperPath(id int) string {
	if id == 0 {
		return pathVlansOper
	}
	return pathVlansOper + "=" + strconv.Itoa(id)
}

// vlanNamePath resolves the name leaf of one VLAN in the native
// configuration model.
func vlanNamePath(id int) string {
	return pathNativeVlanList + "=" + strconv.Itoa(id) + "/name"
}

// syslogPath resolves the syslog message buffer.
func syslogPath() string {
	return pathSyslogMessages
}
