/*
 * Copyright (c) 2026 NimbusDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Host != "localhost" {
		t.Errorf("Expected default host 'localhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 9042 {
		t.Errorf("Expected default port 9042, got %d", cfg.Port)
	}
	if cfg.SafeMode {
		t.Error("Expected safe mode off by default")
	}
	if cfg.Format != "table" {
		t.Errorf("Expected default format 'table', got '%s'", cfg.Format)
	}
	if cfg.ConnectTimeout != 5 {
		t.Errorf("Expected default connect timeout 5, got %d", cfg.ConnectTimeout)
	}
}

func writeRC(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nimbusqlrc")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write rc file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeRC(t, `
# NimbusQL configuration
[connection]
host = db1.internal,db2.internal  ; cluster contact points
port = 9142
keyspace = analytics
tls = true

[ui]
safe_mode = true
format = json
`)

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Host != "db1.internal,db2.internal" {
		t.Errorf("Expected hosts from rc file, got '%s'", cfg.Host)
	}
	if cfg.Port != 9142 {
		t.Errorf("Expected port 9142, got %d", cfg.Port)
	}
	if cfg.Keyspace != "analytics" {
		t.Errorf("Expected keyspace 'analytics', got '%s'", cfg.Keyspace)
	}
	if !cfg.TLS {
		t.Error("Expected TLS enabled")
	}
	if !cfg.SafeMode {
		t.Error("Expected safe mode enabled from [ui] section")
	}
	if cfg.Format != "json" {
		t.Errorf("Expected format 'json', got '%s'", cfg.Format)
	}
	if cfg.ConfigFile != path {
		t.Errorf("Expected ConfigFile '%s', got '%s'", path, cfg.ConfigFile)
	}
}

func TestLoadFileUnknownKeysIgnored(t *testing.T) {
	path := writeRC(t, `
[connection]
host = example.com
future_setting = whatever

[copy]
maxrows = 500
`)

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("Expected unknown keys and sections to be ignored, got error: %v", err)
	}
	if cfg.Host != "example.com" {
		t.Errorf("Expected host 'example.com', got '%s'", cfg.Host)
	}
}

func TestLoadFileMalformed(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"unclosed section header", "[connection\nhost = x\n"},
		{"key without value", "[connection]\nhost\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			if err := cfg.LoadFile(writeRC(t, tt.contents)); err == nil {
				t.Error("Expected parse error, got nil")
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := cfg.LoadFile(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Expected error for missing rc file, got nil")
	}
}

func TestLoadEnv(t *testing.T) {
	t.Setenv(EnvHost, "envhost")
	t.Setenv(EnvPort, "7777")
	t.Setenv(EnvKeyspace, "envks")
	t.Setenv(EnvNoColor, "1")

	cfg := Default()
	cfg.LoadEnv()

	if cfg.Host != "envhost" {
		t.Errorf("Expected host 'envhost', got '%s'", cfg.Host)
	}
	if cfg.Port != 7777 {
		t.Errorf("Expected port 7777, got %d", cfg.Port)
	}
	if cfg.Keyspace != "envks" {
		t.Errorf("Expected keyspace 'envks', got '%s'", cfg.Keyspace)
	}
	if !cfg.NoColor {
		t.Error("Expected NO_COLOR to disable colors")
	}
}

func TestLoadEnvInvalidPortIgnored(t *testing.T) {
	t.Setenv(EnvPort, "not-a-port")

	cfg := Default()
	cfg.LoadEnv()

	if cfg.Port != 9042 {
		t.Errorf("Expected default port to survive bad env value, got %d", cfg.Port)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeRC(t, "[connection]\nhost = filehost\nport = 1111\n")
	t.Setenv(EnvHost, "envhost")

	cfg := Default()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	cfg.LoadEnv()

	if cfg.Host != "envhost" {
		t.Errorf("Expected env to override rc file, got '%s'", cfg.Host)
	}
	if cfg.Port != 1111 {
		t.Errorf("Expected rc file port to survive without env override, got %d", cfg.Port)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "TRUE", "True", "1", "yes", "YES", "on", "On"}
	for _, v := range truthy {
		if !ParseBool(v) {
			t.Errorf("Expected '%s' to parse as true", v)
		}
	}

	falsy := []string{"false", "0", "no", "off", "", "maybe", "2"}
	for _, v := range falsy {
		if ParseBool(v) {
			t.Errorf("Expected '%s' to parse as false", v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"empty host", func(c *Config) { c.Host = "  " }, true},
		{"bad format", func(c *Config) { c.Format = "xml" }, true},
		{"execute and file combined", func(c *Config) {
			c.Execute = "SELECT 1;"
			c.File = "script.cql"
		}, true},
		{"execute alone", func(c *Config) { c.Execute = "SELECT 1;" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContactPoints(t *testing.T) {
	tests := []struct {
		host string
		port int
		want []string
	}{
		{"localhost", 9042, []string{"localhost:9042"}},
		{"a,b", 9042, []string{"a:9042", "b:9042"}},
		{"a:1234, b", 9042, []string{"a:1234", "b:9042"}},
		{" , ", 9042, []string{"localhost:9042"}},
	}

	for _, tt := range tests {
		cfg := Default()
		cfg.Host = tt.host
		cfg.Port = tt.port
		got := cfg.ContactPoints()
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("ContactPoints(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}

func TestFindRCFileFromEnv(t *testing.T) {
	path := writeRC(t, "[connection]\nhost = x\n")
	t.Setenv(EnvRCFile, path)

	if got := FindRCFile(); got != path {
		t.Errorf("Expected FindRCFile to honor %s, got '%s'", EnvRCFile, got)
	}
}

func TestStringOmitsCredentials(t *testing.T) {
	cfg := Default()
	cfg.Username = "admin"
	out := cfg.String()
	if strings.Contains(out, "admin") {
		t.Error("Expected String() to omit the username")
	}
}
