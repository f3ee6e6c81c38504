// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"github.com/tidwall/gjson"
)

// Res represents a RESTCONF response.
type Res struct {
	// StatusCode is the HTTP status returned by the device
	StatusCode int

	// Raw is the response body as returned by the device (YANG JSON)
	Raw string

	// OK indicates if the request succeeded (2xx status)
	OK bool
}

// Get retrieves a value from the response body using a gjson path.
// The path follows gjson syntax for querying JSON structures. YANG JSON
// keys carry module prefixes, so paths typically look like
// "Cisco-IOS-XE-vlan-oper:vlans.vlan.0.name".
//
// Returns gjson.Result which can be converted to specific types:
//   - result.String() for string values
//   - result.Int() for integer values
//   - result.Array() for list values
//
// Example:
//
//	res, err := client.GetData(ctx, path)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	name := res.Get("Cisco-IOS-XE-vlan-oper:vlans.vlan.0.name").String()
func (r Res) Get(path string) gjson.Result {
	return gjson.Get(r.Raw, path)
}

// String returns the raw response body. Useful for debugging and logging.
func (r Res) String() string {
	return r.Raw
}
