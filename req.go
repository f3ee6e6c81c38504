// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"net/url"
	"strconv"
	"time"
)

// Req carries request-specific options applied via functional modifiers.
// The resource path and body are passed directly to the transport methods;
// query parameters and timeouts are attached here.
//
// Example:
//
//	res, err := client.GetData(ctx, path,
//	    catalyst.Query("fields", "name;oper-status"),
//	    catalyst.Timeout(30*time.Second))
type Req struct {
	// Query holds RESTCONF query parameters (fields, depth, content)
	Query url.Values

	// Timeout is the request-specific timeout
	// Overrides the client default timeout if set
	Timeout time.Duration
}

// Query returns a request modifier that adds a query parameter to the
// request. RFC 8040 query parameters like "fields" and "depth" scope the
// response to the minimal required subtree.
//
// Example:
//
//	res, err := client.GetData(ctx, path,
//	    catalyst.Query("fields", "name;admin-status;oper-status"))
func Query(key, value string) func(*Req) {
	return func(req *Req) {
		if req.Query == nil {
			req.Query = url.Values{}
		}
		req.Query.Set(key, value)
	}
}

// Depth returns a request modifier that sets the RFC 8040 "depth" query
// parameter, limiting how many levels of the subtree the device returns.
func Depth(levels int) func(*Req) {
	return Query("depth", strconv.Itoa(levels))
}

// Fields returns a request modifier that sets the RFC 8040 "fields" query
// parameter, selecting the leaves the device should include.
func Fields(expr string) func(*Req) {
	return Query("fields", expr)
}

// Timeout returns a request modifier that sets a custom timeout for one
// request. Timeouts apply per HTTP request, not per logical operation: a
// bounce issues two requests with two independent timeout windows.
//
// The timeout priority model is:
//  1. Request-specific timeout (this modifier) - highest priority
//  2. Context deadline (if already set) - medium priority
//  3. Client.RequestTimeout - fallback default
func Timeout(duration time.Duration) func(*Req) {
	return func(req *Req) {
		req.Timeout = duration
	}
}
