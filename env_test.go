// SPDX-License-Identifier: MPL-2.0
// Copyright (c) 2025 Daniel Schmidt

package catalyst

import (
	"strings"
	"testing"
)

// TestNewClientFromEnv tests environment-driven construction
func TestNewClientFromEnv(t *testing.T) {
	t.Setenv(EnvHost, "172.16.1.1")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvUsername, "admin")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvInsecure, "true")

	client, err := NewClientFromEnv()
	if err != nil {
		t.Fatalf("NewClientFromEnv failed: %v", err)
	}

	if client.Host != "172.16.1.1" {
		t.Errorf("unexpected host %q", client.Host)
	}
	if client.Port != 8443 {
		t.Errorf("expected port 8443, got %d", client.Port)
	}
	if client.VerifyCertificate {
		t.Error("expected certificate verification disabled")
	}
	if !client.HasCredentials() {
		t.Error("expected credentials from environment")
	}
}

// TestNewClientFromEnvMissingValues tests required variable enforcement
func TestNewClientFromEnvMissingValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantVar string
	}{
		{
			name:    "missing host",
			env:     map[string]string{EnvUsername: "admin", EnvPassword: "secret"},
			wantVar: EnvHost,
		},
		{
			name:    "missing username",
			env:     map[string]string{EnvHost: "172.16.1.1", EnvPassword: "secret"},
			wantVar: EnvUsername,
		},
		{
			name:    "missing password",
			env:     map[string]string{EnvHost: "172.16.1.1", EnvUsername: "admin"},
			wantVar: EnvPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, v := range []string{EnvHost, EnvPort, EnvUsername, EnvPassword, EnvInsecure} {
				t.Setenv(v, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := NewClientFromEnv()
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantVar) {
				t.Errorf("expected %s named in error, got %q", tt.wantVar, err.Error())
			}
		})
	}
}

// TestNewClientFromEnvInvalidValues tests malformed optional variables
func TestNewClientFromEnvInvalidValues(t *testing.T) {
	t.Setenv(EnvHost, "172.16.1.1")
	t.Setenv(EnvUsername, "admin")
	t.Setenv(EnvPassword, "secret")

	t.Setenv(EnvPort, "not-a-port")
	if _, err := NewClientFromEnv(); err == nil {
		t.Error("expected error for non-numeric port")
	}

	t.Setenv(EnvPort, "")
	t.Setenv(EnvInsecure, "sometimes")
	if _, err := NewClientFromEnv(); err == nil {
		t.Error("expected error for non-boolean insecure flag")
	}
}

// TestNewClientFromEnvOptionPrecedence verifies explicit options override
// environment values
func TestNewClientFromEnvOptionPrecedence(t *testing.T) {
	t.Setenv(EnvHost, "172.16.1.1")
	t.Setenv(EnvPort, "8443")
	t.Setenv(EnvUsername, "admin")
	t.Setenv(EnvPassword, "secret")
	t.Setenv(EnvInsecure, "")

	client, err := NewClientFromEnv(Port(9443))
	if err != nil {
		t.Fatalf("NewClientFromEnv failed: %v", err)
	}
	if client.Port != 9443 {
		t.Errorf("expected explicit option to win, got port %d", client.Port)
	}
}
