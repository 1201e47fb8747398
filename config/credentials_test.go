// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package config_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/mcp-agent/config"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want map[string]string
		has  map[string]bool
	}{
		{
			name: "all set",
			env: map[string]string{
				config.EnvGoogleAPIKey:             "g-key",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "https://example.com/sse",
				config.EnvP5APIKey:                 "k123",
			},
			want: map[string]string{
				config.EnvGoogleAPIKey:             "g-key",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "https://example.com/sse",
				config.EnvP5APIKey:                 "k123",
			},
			has: map[string]bool{
				config.EnvGoogleAPIKey:             true,
				config.EnvPostgresConnectionString: true,
				config.EnvConnectionURL:            true,
				config.EnvP5APIKey:                 true,
			},
		},
		{
			name: "values are kept verbatim",
			env: map[string]string{
				config.EnvGoogleAPIKey:             "  spaced  ",
				config.EnvPostgresConnectionString: "not a dsn at all",
				config.EnvConnectionURL:            "::::",
				config.EnvP5APIKey:                 "",
			},
			want: map[string]string{
				config.EnvGoogleAPIKey:             "  spaced  ",
				config.EnvPostgresConnectionString: "not a dsn at all",
				config.EnvConnectionURL:            "::::",
				config.EnvP5APIKey:                 "",
			},
			has: map[string]bool{
				config.EnvGoogleAPIKey:             true,
				config.EnvPostgresConnectionString: true,
				config.EnvConnectionURL:            true,
				config.EnvP5APIKey:                 true,
			},
		},
		{
			name: "missing api key",
			env: map[string]string{
				config.EnvGoogleAPIKey:             "g-key",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "https://example.com/sse",
			},
			want: map[string]string{
				config.EnvGoogleAPIKey:             "g-key",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "https://example.com/sse",
				config.EnvP5APIKey:                 "",
			},
			has: map[string]bool{
				config.EnvGoogleAPIKey:             true,
				config.EnvPostgresConnectionString: true,
				config.EnvConnectionURL:            true,
				config.EnvP5APIKey:                 false,
			},
		},
		{
			name: "nothing set",
			env:  map[string]string{},
			want: map[string]string{
				config.EnvGoogleAPIKey:             "",
				config.EnvPostgresConnectionString: "",
				config.EnvConnectionURL:            "",
				config.EnvP5APIKey:                 "",
			},
			has: map[string]bool{
				config.EnvGoogleAPIKey:             false,
				config.EnvPostgresConnectionString: false,
				config.EnvConnectionURL:            false,
				config.EnvP5APIKey:                 false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := config.Load(config.MapLookup(tt.env))

			got := make(map[string]string)
			has := make(map[string]bool)
			for _, name := range config.Names() {
				got[name] = creds.Get(name)
				has[name] = creds.Has(name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.has, has); diff != "" {
				t.Errorf("presence mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCredentialsAccessors(t *testing.T) {
	creds := config.Load(config.MapLookup(map[string]string{
		config.EnvGoogleAPIKey:             "g",
		config.EnvPostgresConnectionString: "p",
		config.EnvConnectionURL:            "c",
		config.EnvP5APIKey:                 "k",
	}))

	got := []string{creds.GoogleAPIKey(), creds.PostgresConnectionString(), creds.ConnectionURL(), creds.P5APIKey()}
	if diff := cmp.Diff([]string{"g", "p", "c", "k"}, got); diff != "" {
		t.Errorf("accessors mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIsASnapshot(t *testing.T) {
	env := map[string]string{config.EnvP5APIKey: "before"}
	creds := config.Load(config.MapLookup(env))
	env[config.EnvP5APIKey] = "after"

	if got := creds.P5APIKey(); got != "before" {
		t.Errorf("P5APIKey() = %q, want %q", got, "before")
	}
}

func TestChain(t *testing.T) {
	lookup := config.Chain(
		config.MapLookup(map[string]string{"A": "first"}),
		config.MapLookup(map[string]string{"A": "second", "B": "second"}),
	)

	if v, ok := lookup("A"); !ok || v != "first" {
		t.Errorf(`lookup("A") = %q, %v, want "first", true`, v, ok)
	}
	if v, ok := lookup("B"); !ok || v != "second" {
		t.Errorf(`lookup("B") = %q, %v, want "second", true`, v, ok)
	}
	if _, ok := lookup("C"); ok {
		t.Errorf(`lookup("C") reported a value`)
	}
}

func TestLoadWithDotEnv(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")
	writeFile(t, first, "POSTGRES_CONNECTION_STRING=user:pass@file/db\nCONNECTION_URL=https://file.example.com/sse\n")
	writeFile(t, second, "CONNECTION_URL=https://second.example.com/sse\nP5_API_KEY=file-key\n")

	t.Setenv(config.EnvGoogleAPIKey, "env-google")
	t.Setenv(config.EnvConnectionURL, "https://env.example.com/sse")
	unsetenv(t, config.EnvPostgresConnectionString)
	unsetenv(t, config.EnvP5APIKey)

	creds, err := config.LoadWithDotEnv(first, filepath.Join(dir, "missing.env"), second)
	if err != nil {
		t.Fatalf("LoadWithDotEnv: %v", err)
	}

	want := map[string]string{
		config.EnvGoogleAPIKey:             "env-google",
		config.EnvPostgresConnectionString: "user:pass@file/db",
		config.EnvConnectionURL:            "https://env.example.com/sse",
		config.EnvP5APIKey:                 "file-key",
	}
	got := make(map[string]string)
	for _, name := range config.Names() {
		got[name] = creds.Get(name)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}

	if _, ok := os.LookupEnv(config.EnvP5APIKey); ok {
		t.Errorf("LoadWithDotEnv wrote %s into the process environment", config.EnvP5APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr []string
	}{
		{
			name: "valid",
			env: map[string]string{
				config.EnvGoogleAPIKey:             "g",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "https://example.com/sse",
				config.EnvP5APIKey:                 "k123",
			},
		},
		{
			name: "missing values",
			env: map[string]string{
				config.EnvConnectionURL: "https://example.com/sse",
			},
			wantErr: []string{
				"GOOGLE_API_KEY is not set",
				"POSTGRES_CONNECTION_STRING is not set",
				"P5_API_KEY is not set",
			},
		},
		{
			name: "malformed url",
			env: map[string]string{
				config.EnvGoogleAPIKey:             "g",
				config.EnvPostgresConnectionString: "user:pass@host/db",
				config.EnvConnectionURL:            "not a url",
				config.EnvP5APIKey:                 "k123",
			},
			wantErr: []string{"CONNECTION_URL is not a valid url"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := config.Load(config.MapLookup(tt.env)).Validate()
			if len(tt.wantErr) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, config.ErrInvalidCredentials) {
				t.Fatalf("Validate() = %v, want ErrInvalidCredentials", err)
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("Validate() = %q, want it to contain %q", err, want)
				}
			}
		})
	}
}

func TestLogValueRedacts(t *testing.T) {
	creds := config.Load(config.MapLookup(map[string]string{
		config.EnvP5APIKey: "super-secret",
	}))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	logger.Info("loaded", slog.Any("credentials", creds))

	out := buf.String()
	if strings.Contains(out, "super-secret") {
		t.Errorf("log output leaks a secret: %s", out)
	}
	if !strings.Contains(out, "credentials.P5_API_KEY=true") {
		t.Errorf("log output = %q, want presence of P5_API_KEY", out)
	}
	if !strings.Contains(out, "credentials.GOOGLE_API_KEY=false") {
		t.Errorf("log output = %q, want absence of GOOGLE_API_KEY", out)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// unsetenv removes key for the duration of the test.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatal(err)
	}
}
