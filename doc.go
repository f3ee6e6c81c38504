// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

// Package catalyst provides a simple, fluent API for managing Cisco
// Catalyst IOS-XE switches over RESTCONF (RFC 8040).
//
// The library translates a small set of network-management operations
// (status queries, health checks, interface/VLAN mutations) into scoped
// RESTCONF requests against the device's YANG-modeled datastores, and
// normalizes the structured responses into canonical record types before
// they reach the caller. Connection management, retry with exponential
// backoff, and structured error handling are built in.
//
// # Quick Start
//
// Create a client and perform basic operations:
//
//	client, err := catalyst.NewClient(
//	    "172.16.1.1",
//	    catalyst.Username("admin"),
//	    catalyst.Password("secret"),
//	    catalyst.VerifyCertificate(false),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	ctx := context.Background()
//
//	// All interfaces that are administratively down
//	records, err := client.Interfaces(ctx, catalyst.InterfaceFilter{Status: "down"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range records {
//	    fmt.Printf("%s admin=%s oper=%s vlan=%d\n", r.Name, r.AdminStatus, r.OperStatus, r.AccessVLAN)
//	}
//
// # Mutations
//
// Configuration changes issue minimal single-leaf PATCH bodies so
// unrelated configuration is never reset:
//
//	err = client.SetInterfaceVlan(ctx, "Gi1/0/7", 120)
//	err = client.SetVlanName(ctx, 120, "printers")
//
//	result, err := client.BounceInterface(ctx, "Gi1/0/7")
//	var partial *catalyst.PartialFailureError
//	if errors.As(err, &partial) {
//	    // phase 1 succeeded, phase 2 failed: the interface is left down
//	}
//
// # Error Handling
//
// Errors are structured and distinguishable by kind with errors.As:
// ValidationError (bad input, no request made), AuthError (credentials
// rejected, never retried), DeviceError (device 4xx/5xx with the verbatim
// RESTCONF error payload), TransientError (transport failure after
// retries), and PartialFailureError (multi-step mutation stopped midway).
//
// # Thread Safety
//
// Read operations are safe for concurrent use. Overlapping mutations on
// the same resource are not ordered by the client; callers needing strict
// ordering must serialize themselves.
package catalyst
