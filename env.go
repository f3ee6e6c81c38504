// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names consumed by NewClientFromEnv.
const (
	EnvHost     = "CATALYST_HOST"
	EnvPort     = "CATALYST_PORT"
	EnvUsername = "CATALYST_USERNAME"
	EnvPassword = "CATALYST_PASSWORD"
	EnvInsecure = "CATALYST_INSECURE"
)

// NewClientFromEnv creates a client from the process environment,
// optionally merged from a .env file in the working directory. Host,
// username and password are required; a missing value prevents the client
// from being constructed at all.
//
// Recognized variables:
//
//	CATALYST_HOST      device address (required)
//	CATALYST_PORT      RESTCONF port (optional, default 443)
//	CATALYST_USERNAME  basic auth username (required)
//	CATALYST_PASSWORD  basic auth password (required)
//	CATALYST_INSECURE  "true" disables certificate verification (optional)
//
// Additional options are applied after the environment, so explicit
// options win over environment values.
func NewClientFromEnv(opts ...func(*Client)) (*Client, error) {
	// A .env file is a convenience, not a requirement
	_ = godotenv.Load()

	host := os.Getenv(EnvHost)
	if host == "" {
		return nil, fmt.Errorf("%s is required", EnvHost)
	}
	username := os.Getenv(EnvUsername)
	if username == "" {
		return nil, fmt.Errorf("%s is required", EnvUsername)
	}
	password := os.Getenv(EnvPassword)
	if password == "" {
		return nil, fmt.Errorf("%s is required", EnvPassword)
	}

	envOpts := []func(*Client){
		Username(username),
		Password(password),
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", EnvPort, portStr)
		}
		envOpts = append(envOpts, Port(port))
	}

	if insecureStr := os.Getenv(EnvInsecure); insecureStr != "" {
		insecure, err := strconv.ParseBool(insecureStr)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", EnvInsecure, insecureStr)
		}
		envOpts = append(envOpts, VerifyCertificate(!insecure))
	}

	return NewClient(host, append(envOpts, opts...)...)
}
