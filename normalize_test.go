// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"testing"
	"time"

	"github.com/tidwall/gjson"
)

// TestIntLeaf tests tolerant integer coercion
func TestIntLeaf(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int64
	}{
		{name: "number", json: `{"v": 42}`, want: 42},
		{name: "string-typed number", json: `{"v": "1000000000"}`, want: 1000000000},
		{name: "string with spaces", json: `{"v": " 7 "}`, want: 7},
		{name: "absent", json: `{}`, want: -1},
		{name: "null", json: `{"v": null}`, want: -1},
		{name: "garbage string", json: `{"v": "fast"}`, want: -1},
		{name: "empty string", json: `{"v": ""}`, want: -1},
		{name: "object", json: `{"v": {"a": 1}}`, want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := intLeaf(gjson.Get(tt.json, "v"), -1); got != tt.want {
				t.Errorf("intLeaf = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestFloatLeaf tests tolerant float coercion
func TestFloatLeaf(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		want   float64
		wantOK bool
	}{
		{name: "number", json: `{"v": -2.5}`, want: -2.5, wantOK: true},
		{name: "string-typed float", json: `{"v": "-2.5"}`, want: -2.5, wantOK: true},
		{name: "absent", json: `{}`, wantOK: false},
		{name: "garbage", json: `{"v": "n/a"}`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := floatLeaf(gjson.Get(tt.json, "v"))
			if ok != tt.wantOK {
				t.Fatalf("floatLeaf ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("floatLeaf = %g, want %g", got, tt.want)
			}
		})
	}
}

// TestSpeedString tests bps rendering with string-typed input
func TestSpeedString(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{name: "gigabit as string", json: `{"v": "1000000000"}`, want: "1Gb/s"},
		{name: "ten gigabit", json: `{"v": "10000000000"}`, want: "10Gb/s"},
		{name: "hundred megabit", json: `{"v": 100000000}`, want: "100Mb/s"},
		{name: "kilobit range", json: `{"v": 64000}`, want: "64Kb/s"},
		{name: "zero", json: `{"v": 0}`, want: StatusUnknown},
		{name: "absent", json: `{}`, want: StatusUnknown},
		{name: "garbage", json: `{"v": "auto"}`, want: StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := speedString(gjson.Get(tt.json, "v")); got != tt.want {
				t.Errorf("speedString = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestStatusMapping tests admin/oper status identity mapping
func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(gjson.Result) string
		value string
		want  string
	}{
		{name: "admin up identity", fn: adminStatus, value: "if-state-up", want: StatusUp},
		{name: "admin down identity", fn: adminStatus, value: "if-state-down", want: StatusDown},
		{name: "admin plain up", fn: adminStatus, value: "up", want: StatusUp},
		{name: "admin empty", fn: adminStatus, value: "", want: StatusUnknown},
		{name: "oper ready", fn: operStatus, value: "if-oper-state-ready", want: StatusUp},
		{name: "oper no pass", fn: operStatus, value: "if-oper-state-no-pass", want: StatusDown},
		{name: "oper lower layer down", fn: operStatus, value: "if-oper-state-lower-layer-down", want: StatusDown},
		{name: "oper empty", fn: operStatus, value: "", want: StatusUnknown},
		{name: "vlan active", fn: vlanStatus, value: "vlan-status-active", want: StatusUp},
		{name: "vlan suspended", fn: vlanStatus, value: "vlan-status-suspended", want: StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gjson.Parse(`"` + tt.value + `"`)
			if got := tt.fn(r); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestNormalizeInterfaces tests interface payload normalization with broad
// and single-entry shapes
func TestNormalizeInterfaces(t *testing.T) {
	const broad = `{
	  "Cisco-IOS-XE-interfaces-oper:interfaces": {
	    "interface": [
	      {
	        "name": "GigabitEthernet1/0/1",
	        "admin-status": "if-state-up",
	        "oper-status": "if-oper-state-ready",
	        "speed": "1000000000",
	        "description": "uplink",
	        "phys-address": "00:1e:14:9a:2b:01",
	        "ether-state": {"negotiated-duplex-mode": "full-duplex"}
	      },
	      {
	        "name": "GigabitEthernet1/0/2",
	        "admin-status": "if-state-down",
	        "oper-status": "if-oper-state-no-pass"
	      },
	      {
	        "admin-status": "if-state-up"
	      }
	    ]
	  }
	}`

	records := normalizeInterfaces(broad)
	if len(records) != 2 {
		t.Fatalf("expected 2 records (nameless entry skipped), got %d", len(records))
	}

	first := records[0]
	if first.Name != "GigabitEthernet1/0/1" {
		t.Errorf("unexpected name %q", first.Name)
	}
	if first.AdminStatus != StatusUp || first.OperStatus != StatusUp {
		t.Errorf("expected up/up, got %s/%s", first.AdminStatus, first.OperStatus)
	}
	if first.Speed != "1Gb/s" {
		t.Errorf("expected 1Gb/s, got %q", first.Speed)
	}
	if first.Duplex != "full" {
		t.Errorf("expected full duplex, got %q", first.Duplex)
	}
	if first.MACAddress != "00:1e:14:9a:2b:01" {
		t.Errorf("unexpected MAC %q", first.MACAddress)
	}

	second := records[1]
	if second.AdminStatus != StatusDown || second.OperStatus != StatusDown {
		t.Errorf("expected down/down, got %s/%s", second.AdminStatus, second.OperStatus)
	}
	if second.Speed != StatusUnknown || second.Duplex != StatusUnknown {
		t.Errorf("expected unknown speed/duplex for sparse entry, got %q/%q", second.Speed, second.Duplex)
	}

	// Single keyed entry arrives under the module-qualified list name
	const single = `{
	  "Cisco-IOS-XE-interfaces-oper:interface": {
	    "name": "GigabitEthernet1/0/1",
	    "admin-status": "if-state-up",
	    "oper-status": "if-oper-state-ready"
	  }
	}`

	records = normalizeInterfaces(single)
	if len(records) != 1 {
		t.Fatalf("expected 1 record for single entry, got %d", len(records))
	}

	if got := normalizeInterfaces(`{}`); len(got) != 0 {
		t.Errorf("expected empty slice for empty payload, got %d records", len(got))
	}
}

// TestNormalizeVlans tests VLAN payload normalization
func TestNormalizeVlans(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-vlan-oper:vlans": {
	    "vlan": [
	      {
	        "id": 1,
	        "name": "default",
	        "status": "vlan-status-active",
	        "vlan-interfaces": [
	          {"interface": "GigabitEthernet1/0/1", "status": "vlan-status-active"},
	          {"interface": "GigabitEthernet1/0/2"}
	        ]
	      },
	      {
	        "id": "120",
	        "name": "printers",
	        "status": "vlan-status-suspended"
	      }
	    ]
	  }
	}`

	vlans := normalizeVlans(raw)
	if len(vlans) != 2 {
		t.Fatalf("expected 2 VLANs, got %d", len(vlans))
	}

	first := vlans[0]
	if first.ID != 1 || first.Name != "default" || first.Status != StatusUp {
		t.Errorf("unexpected first VLAN: %+v", first)
	}
	if len(first.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(first.Members))
	}
	if first.Members[0].Status != StatusUp {
		t.Errorf("expected member status up, got %q", first.Members[0].Status)
	}
	if first.Members[1].Status != StatusUnknown {
		t.Errorf("expected unknown status for member without leaf, got %q", first.Members[1].Status)
	}

	// String-typed id is coerced; missing member list stays non-nil
	second := vlans[1]
	if second.ID != 120 {
		t.Errorf("expected coerced id 120, got %d", second.ID)
	}
	if second.Status != StatusDown {
		t.Errorf("expected suspended VLAN down, got %q", second.Status)
	}
	if second.Members == nil || len(second.Members) != 0 {
		t.Errorf("expected empty non-nil members, got %#v", second.Members)
	}
}

// TestVlanMembershipIndex tests the interface -> VLAN merge index
func TestVlanMembershipIndex(t *testing.T) {
	vlans := []VlanRecord{
		{ID: 10, Members: []VlanMember{{Interface: "GigabitEthernet1/0/1"}}},
		{ID: 20, Members: []VlanMember{
			{Interface: "GigabitEthernet1/0/2"},
			{Interface: "GigabitEthernet1/0/1"}, // first assignment wins
		}},
	}

	idx := vlanMembershipIndex(vlans)
	if idx["GigabitEthernet1/0/1"] != 10 {
		t.Errorf("expected VLAN 10 for Gi1/0/1, got %d", idx["GigabitEthernet1/0/1"])
	}
	if idx["GigabitEthernet1/0/2"] != 20 {
		t.Errorf("expected VLAN 20 for Gi1/0/2, got %d", idx["GigabitEthernet1/0/2"])
	}
}

// TestNormalizeCPU tests five-second CPU extraction
func TestNormalizeCPU(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "scoped read",
			raw:  `{"Cisco-IOS-XE-process-cpu-oper:cpu-utilization": {"five-seconds": 12}}`,
			want: 12,
		},
		{
			name: "full container",
			raw:  `{"Cisco-IOS-XE-process-cpu-oper:cpu-usage": {"cpu-utilization": {"five-seconds": "7"}}}`,
			want: 7,
		},
		{name: "absent", raw: `{}`, want: -1},
		{
			name: "out of range",
			raw:  `{"Cisco-IOS-XE-process-cpu-oper:cpu-utilization": {"five-seconds": 250}}`,
			want: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeCPU(tt.raw); got != tt.want {
				t.Errorf("normalizeCPU = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestNormalizeMemory tests processor pool extraction
func TestNormalizeMemory(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-memory-oper:memory-statistics": {
	    "memory-statistic": [
	      {"name": "lsmpi_io", "used-memory": "100", "total-memory": "200"},
	      {"name": "Processor", "used-memory": "1331980324", "total-memory": "2028113248"}
	    ]
	  }
	}`

	used, total := normalizeMemory(raw)
	if used != 1331980324 || total != 2028113248 {
		t.Errorf("expected processor pool values, got used=%d total=%d", used, total)
	}

	used, total = normalizeMemory(`{}`)
	if used != 0 || total != 0 {
		t.Errorf("expected zeros for empty payload, got used=%d total=%d", used, total)
	}
}

// TestNormalizeSensors tests environment sensor classification
func TestNormalizeSensors(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-environment-oper:environment-sensors": {
	    "environment-sensor": [
	      {"name": "Temp Sensor 0", "state": "Normal", "current-reading": 34, "sensor-units": "Celsius"},
	      {"name": "Fan 1/1", "state": "Normal", "current-reading": 11520, "sensor-units": "RPM"},
	      {"name": "PS1 Vout", "state": "Warning"},
	      {"name": "Loadmeter", "state": "Faulty"}
	    ]
	  }
	}`

	sensors := normalizeSensors(raw)
	if len(sensors) != 4 {
		t.Fatalf("expected 4 sensors, got %d", len(sensors))
	}

	if sensors[0].Type != SensorTemperature || sensors[0].State != SensorOK {
		t.Errorf("unexpected temp sensor: %+v", sensors[0])
	}
	if sensors[0].Reading != "34 Celsius" {
		t.Errorf("unexpected reading %q", sensors[0].Reading)
	}
	if sensors[1].Type != SensorFan {
		t.Errorf("expected fan type, got %q", sensors[1].Type)
	}
	if sensors[2].Type != SensorPowerSupply || sensors[2].State != SensorWarning {
		t.Errorf("unexpected PSU sensor: %+v", sensors[2])
	}
	if sensors[2].Reading != StatusUnknown {
		t.Errorf("expected unknown reading without leaf, got %q", sensors[2].Reading)
	}
	if sensors[3].State != SensorCritical {
		t.Errorf("expected faulty sensor critical, got %q", sensors[3].State)
	}
}

// TestNormalizeLogs tests buffer reversal and truncation
func TestNormalizeLogs(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-syslog-oper:syslog-messages": {
	    "message": [
	      {"time-stamp": "t1", "severity": "info", "facility": "SYS", "msg-text": "oldest"},
	      {"time-stamp": "t2", "severity": "notice", "facility": "LINK", "msg-text": "middle"},
	      {"time-stamp": "t3", "severity": "err", "facility": "LINEPROTO", "msg-text": "newest"}
	    ]
	  }
	}`

	logs := normalizeLogs(raw, 2)
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	if logs[0].Message != "newest" || logs[1].Message != "middle" {
		t.Errorf("expected most-recent-first ordering, got %q then %q", logs[0].Message, logs[1].Message)
	}
	if logs[0].Severity != "err" || logs[0].Facility != "LINEPROTO" {
		t.Errorf("unexpected first entry: %+v", logs[0])
	}

	// Count beyond buffer size returns the whole buffer
	if got := normalizeLogs(raw, 100); len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
	if got := normalizeLogs(`{}`, 50); len(got) != 0 {
		t.Errorf("expected empty slice for empty payload, got %d", len(got))
	}
}

// TestOpticalStatus tests threshold evaluation
func TestOpticalStatus(t *testing.T) {
	thresholds := gjson.Parse(`{
	  "low-alarm": -13.0,
	  "high-alarm": 3.0,
	  "low-warning": -10.0,
	  "high-warning": 1.0
	}`)

	tests := []struct {
		name string
		val  float64
		want string
	}{
		{name: "nominal", val: -5.0, want: SensorOK},
		{name: "below warning", val: -11.0, want: SensorWarning},
		{name: "above warning", val: 2.0, want: SensorWarning},
		{name: "below alarm", val: -14.0, want: SensorCritical},
		{name: "above alarm", val: 4.0, want: SensorCritical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := opticalStatus(tt.val, thresholds); got != tt.want {
				t.Errorf("opticalStatus(%g) = %q, want %q", tt.val, got, tt.want)
			}
		})
	}

	// A known value without a threshold container cannot be flagged
	if got := opticalStatus(-40.0, gjson.Result{}); got != SensorOK {
		t.Errorf("expected ok without thresholds, got %q", got)
	}
}

// TestNormalizeTransceivers tests transceiver diagnostics normalization
func TestNormalizeTransceivers(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-transceiver-oper:transceiver-oper-data": {
	    "transceiver": [
	      {
	        "name": "TenGigabitEthernet1/1/3",
	        "tx-power": "-2.5",
	        "rx-power": -3.1,
	        "temperature": 31.2,
	        "voltage": 3.29,
	        "current": 6.1,
	        "thresholds": {
	          "rx-power": {"low-alarm": -14.0, "high-alarm": 2.0, "low-warning": -2.0, "high-warning": 1.0}
	        }
	      },
	      {
	        "name": "TenGigabitEthernet1/1/4"
	      }
	    ]
	  }
	}`

	stats := normalizeTransceivers(raw)
	if len(stats) != 2 {
		t.Fatalf("expected 2 transceivers, got %d", len(stats))
	}

	first := stats[0]
	if !first.TxPower.Known || first.TxPower.Value != -2.5 || first.TxPower.Unit != "dBm" {
		t.Errorf("unexpected tx power: %+v", first.TxPower)
	}
	if first.TxPower.Status != SensorOK {
		t.Errorf("tx power without thresholds must be ok, got %q", first.TxPower.Status)
	}
	if first.RxPower.Status != SensorWarning {
		t.Errorf("rx power below low-warning must be warning, got %q", first.RxPower.Status)
	}

	// Transceiver without DOM support reports all readings unknown
	second := stats[1]
	if second.TxPower.Known || second.TxPower.Status != StatusUnknown {
		t.Errorf("expected unknown tx power, got %+v", second.TxPower)
	}
}

// TestNormalizeCounters tests error counter extraction
func TestNormalizeCounters(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-interfaces-oper:interfaces": {
	    "interface": [
	      {
	        "name": "GigabitEthernet1/0/1",
	        "statistics": {"in-errors": 3, "out-errors": "0", "in-crc-errors": "2"}
	      },
	      {
	        "name": "GigabitEthernet1/0/2",
	        "statistics": {"in-errors": 0, "out-errors": 0}
	      }
	    ]
	  }
	}`

	counters := normalizeCounters(raw)
	if len(counters) != 2 {
		t.Fatalf("expected 2 records, got %d", len(counters))
	}
	if counters[0].InErrors != 3 || counters[0].OutErrors != 0 || counters[0].CRCErrors != 2 {
		t.Errorf("unexpected counters: %+v", counters[0])
	}
	if counters[1].CRCErrors != -1 {
		t.Errorf("expected -1 for absent CRC counter, got %d", counters[1].CRCErrors)
	}
}

// TestNormalizeSystemSummary tests version, uptime and chassis inventory
func TestNormalizeSystemSummary(t *testing.T) {
	const raw = `{
	  "Cisco-IOS-XE-device-hardware-oper:device-hardware-data": {
	    "device-hardware": {
	      "device-system-data": {
	        "software-version": "17.9.4a",
	        "boot-time": "2026-08-20T08:00:00+00:00",
	        "current-time": "2026-08-21T08:30:00+00:00"
	      },
	      "device-inventory": [
	        {"hw-type": "hw-type-pwr-supply", "part-number": "PWR-C1-350WAC", "serial-number": "ART0000001"},
	        {"hw-type": "hw-type-chassis", "part-number": "C9300-24T", "serial-number": "FOC12345678"}
	      ]
	    }
	  }
	}`

	summary := normalizeSystemSummary(raw)
	if summary.Version != "17.9.4a" {
		t.Errorf("unexpected version %q", summary.Version)
	}
	if want := 24*time.Hour + 30*time.Minute; summary.Uptime != want {
		t.Errorf("expected uptime %v, got %v", want, summary.Uptime)
	}
	if summary.Model != "C9300-24T" {
		t.Errorf("expected chassis part number, got %q", summary.Model)
	}
	if summary.SerialNumber != "FOC12345678" {
		t.Errorf("unexpected serial %q", summary.SerialNumber)
	}

	// Unparsable times must not break normalization
	sparse := normalizeSystemSummary(`{"Cisco-IOS-XE-device-hardware-oper:device-hardware": {"device-system-data": {"software-version": "17.9.4a", "boot-time": "bogus"}}}`)
	if sparse.Uptime != 0 {
		t.Errorf("expected zero uptime for unparsable boot time, got %v", sparse.Uptime)
	}
	if sparse.Version != "17.9.4a" {
		t.Errorf("unexpected version %q", sparse.Version)
	}
}

// TestNormalizeCapabilities tests capability URI extraction
func TestNormalizeCapabilities(t *testing.T) {
	const raw = `{
	  "ietf-restconf-monitoring:capabilities": {
	    "capability": [
	      "urn:ietf:params:restconf:capability:depth:1.0",
	      ""
	    ]
	  }
	}`

	caps := normalizeCapabilities(raw)
	if len(caps) != 1 {
		t.Fatalf("expected 1 capability (empty string dropped), got %d", len(caps))
	}
	if caps[0] != "urn:ietf:params:restconf:capability:depth:1.0" {
		t.Errorf("unexpected capability %q", caps[0])
	}
}
