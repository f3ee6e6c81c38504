// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import "time"

// Client configuration options using the functional options pattern

// Username sets the username for device authentication (required)
func Username(username string) func(*Client) {
	return func(c *Client) {
		c.username = username
	}
}

// Password sets the password for device authentication (required)
func Password(password string) func(*Client) {
	return func(c *Client) {
		c.password = password
	}
}

// Port sets the RESTCONF port (default: 443)
func Port(port int) func(*Client) {
	return func(c *Client) {
		c.Port = port
	}
}

// VerifyCertificate enables or disables TLS certificate verification
// (default: true)
//
// WARNING: Disabling certificate verification makes the connection
// vulnerable to Man-in-the-Middle attacks. IOS-XE devices commonly ship
// with self-signed certificates, so lab use regularly needs this off;
// production use should install a trusted certificate instead.
func VerifyCertificate(verify bool) func(*Client) {
	return func(c *Client) {
		c.VerifyCertificate = verify
	}
}

// ConnectTimeout sets the TCP/TLS connection timeout (default: 10s)
func ConnectTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.ConnectTimeout = duration
	}
}

// RequestTimeout sets the per-request timeout (default: 15s)
//
// The timeout applies to each HTTP request independently; a logical
// operation composed of several requests gets one window per request.
func RequestTimeout(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.RequestTimeout = duration
	}
}

// MaxRetries sets the maximum number of retry attempts for transient
// transport errors on GET requests (default: 3). Mutations are never
// retried regardless of this setting.
func MaxRetries(retries int) func(*Client) {
	return func(c *Client) {
		c.MaxRetries = retries
	}
}

// BackoffMinDelay sets the minimum backoff delay (default: 500ms)
func BackoffMinDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMinDelay = duration
	}
}

// BackoffMaxDelay sets the maximum backoff delay (default: 10s)
func BackoffMaxDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.BackoffMaxDelay = duration
	}
}

// BackoffDelayFactor sets the backoff multiplication factor (default: 2.0)
func BackoffDelayFactor(factor float64) func(*Client) {
	return func(c *Client) {
		c.BackoffDelayFactor = factor
	}
}

// SettleDelay sets the pause between the admin-down and admin-up phases
// of BounceInterface (default: 2s). The delay blocks only the bouncing
// call, never other concurrent operations.
func SettleDelay(duration time.Duration) func(*Client) {
	return func(c *Client) {
		c.SettleDelay = duration
	}
}

// WithLogger configures a custom logger for the client
//
// By default, the client uses NoOpLogger which discards all log messages.
// Use this option to enable logging with DefaultLogger, LogrusLogger or a
// custom implementation.
//
// All JSON content logged at Debug level is automatically redacted to
// remove sensitive data (passwords, secrets, keys, tokens).
//
// Example:
//
//	logger := catalyst.NewDefaultLogger(catalyst.LogLevelInfo)
//	client, _ := catalyst.NewClient("172.16.1.1",
//	    catalyst.Username("admin"),
//	    catalyst.Password("secret"),
//	    catalyst.WithLogger(logger))
func WithLogger(logger Logger) func(*Client) {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrettyPrintLogs enables/disables JSON pretty printing in Debug logs
// (default: disabled). Disabling keeps high-frequency logging cheap.
func WithPrettyPrintLogs(enabled bool) func(*Client) {
	return func(c *Client) {
		c.prettyPrintLogs = enabled
	}
}
