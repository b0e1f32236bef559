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

/*
Package config provides configuration management for the nimbusql shell.

Configuration sources, in precedence order:
 1. Command-line flags (highest priority, only those explicitly set)
 2. Environment variables
 3. rc file
 4. Default values (lowest priority)

The rc file uses INI-style sections:

	# NimbusQL configuration
	[connection]
	host = localhost
	port = 9042
	keyspace = myapp
	tls = false

	[ui]
	safe_mode = true
	format = table
	no_color = false

Search order for the rc file: $NIMBUSQLRC, then
$XDG_CONFIG_HOME/nimbusql/nimbusqlrc, then ~/.nimbusql/nimbusqlrc.

Environment Variables:
  - NIMBUSQL_HOST: Contact point(s), comma-separated
  - NIMBUSQL_PORT: Server port
  - NIMBUSQL_KEYSPACE: Keyspace to use after connecting
  - NIMBUSQLRC: Path to the rc file
  - NO_COLOR: Disable colored output
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names for configuration.
const (
	EnvHost     = "NIMBUSQL_HOST"
	EnvPort     = "NIMBUSQL_PORT"
	EnvKeyspace = "NIMBUSQL_KEYSPACE"
	EnvRCFile   = "NIMBUSQLRC"
	EnvNoColor  = "NO_COLOR"
)

// DefaultPort is the NimbusDB native protocol port.
const DefaultPort = 9042

// Config holds all configuration values for one shell session. It is
// resolved once at startup and treated as read-only afterwards; the
// \safemode command toggles a copy held by the shell, never this struct.
type Config struct {
	// Connection
	Host           string // Contact point(s), comma-separated for clusters
	Port           int    // Native protocol port
	Keyspace       string // Keyspace to USE after connecting
	Username       string // Optional username sent in the startup message
	TLS            bool   // Dial with TLS
	TLSInsecure    bool   // Skip certificate verification
	ConnectTimeout int    // Dial timeout in seconds

	// Input modes
	Execute string // Statement(s) from -e; run and exit
	File    string // Statements from -f; run and exit

	// UI
	SafeMode bool   // Confirm destructive statements on a terminal
	Format   string // Output format: table, json, plain
	NoColor  bool   // Disable ANSI colors
	Debug    bool   // Debug logging

	// Metadata
	HistoryFile string // Readline history path
	ConfigFile  string // Path of the loaded rc file, if any
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Host:           "localhost",
		Port:           DefaultPort,
		ConnectTimeout: 5,
		Format:         "table",
		HistoryFile:    defaultHistoryFile(),
	}
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".nimbusql_history")
}

// FindRCFile searches the standard locations for an rc file and
// returns the first one that exists, or empty string if none does.
func FindRCFile() string {
	if envPath := os.ExpandEnv(os.Getenv(EnvRCFile)); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// XDG config dir, e.g. ~/.config/nimbusql/nimbusqlrc.
	xdgPath := filepath.Join(xdg.ConfigHome, "nimbusql", "nimbusqlrc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	if home, err := os.UserHomeDir(); err == nil {
		dotPath := filepath.Join(home, ".nimbusql", "nimbusqlrc")
		if _, err := os.Stat(dotPath); err == nil {
			return dotPath
		}
	}

	return ""
}

// LoadFile reads an rc file and applies it over the current values.
func (c *Config) LoadFile(path string) error {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read rc file: %w", err)
	}

	if err := c.parseINI(string(data)); err != nil {
		return fmt.Errorf("cannot parse rc file %s: %w", path, err)
	}

	c.ConfigFile = path
	return nil
}

// LoadEnv applies environment variables over the current values.
func (c *Config) LoadEnv() {
	if v := os.Getenv(EnvHost); v != "" {
		c.Host = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv(EnvKeyspace); v != "" {
		c.Keyspace = v
	}
	if os.Getenv(EnvNoColor) != "" {
		c.NoColor = true
	}
}

// parseINI applies rc file contents to the config. The format is a
// small INI subset: [section] headers, key = value pairs, # and ;
// comments. Unknown sections and keys are ignored so older shells can
// read newer rc files.
func (c *Config) parseINI(data string) error {
	section := ""
	for lineNum, line := range strings.Split(data, "\n") {
		if idx := strings.IndexAny(line, "#;"); idx != -1 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return fmt.Errorf("line %d: malformed section header: %s", lineNum+1, line)
			}
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("line %d: invalid syntax: %s", lineNum+1, line)
		}
		key := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.Trim(strings.TrimSpace(parts[1]), "\"'")

		c.applyValue(section, key, value)
	}
	return nil
}

func (c *Config) applyValue(section, key, value string) {
	switch section {
	case "connection":
		switch key {
		case "host", "hosts", "hostname":
			c.Host = value
		case "port":
			if port, err := strconv.Atoi(value); err == nil {
				c.Port = port
			}
		case "keyspace":
			c.Keyspace = value
		case "username", "user":
			c.Username = value
		case "tls", "ssl":
			c.TLS = ParseBool(value)
		case "tls_insecure":
			c.TLSInsecure = ParseBool(value)
		case "connect_timeout":
			if secs, err := strconv.Atoi(value); err == nil {
				c.ConnectTimeout = secs
			}
		}
	case "ui":
		switch key {
		case "safe_mode":
			c.SafeMode = ParseBool(value)
		case "format":
			c.Format = value
		case "no_color":
			c.NoColor = ParseBool(value)
		case "history_file":
			c.HistoryFile = os.ExpandEnv(value)
		}
	}
}

// ParseBool interprets the boolean-like strings accepted in rc files.
// Anything not recognized as true is false.
func ParseBool(value string) bool {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// Validate checks the resolved configuration for values the shell
// cannot start with.
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port: %d (must be 1-65535)", c.Port))
	}
	if strings.TrimSpace(c.Host) == "" {
		errs = append(errs, "host cannot be empty")
	}
	switch c.Format {
	case "table", "json", "plain":
	default:
		errs = append(errs, fmt.Sprintf("invalid format: %s (must be table, json, or plain)", c.Format))
	}
	if c.Execute != "" && c.File != "" {
		errs = append(errs, "-e and -f cannot be combined")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// ContactPoints splits the host string into host:port addresses.
// Hosts without an explicit port get the configured port.
func (c *Config) ContactPoints() []string {
	parts := strings.Split(c.Host, ",")
	points := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, ":") {
			points = append(points, part)
		} else {
			points = append(points, fmt.Sprintf("%s:%d", part, c.Port))
		}
	}
	if len(points) == 0 {
		points = append(points, fmt.Sprintf("localhost:%d", c.Port))
	}
	return points
}

// String returns a printable summary of the configuration.
func (c *Config) String() string {
	var sb strings.Builder
	sb.WriteString("NimbusQL Configuration:\n")
	sb.WriteString(fmt.Sprintf("  Host:       %s\n", c.Host))
	sb.WriteString(fmt.Sprintf("  Port:       %d\n", c.Port))
	if c.Keyspace != "" {
		sb.WriteString(fmt.Sprintf("  Keyspace:   %s\n", c.Keyspace))
	}
	sb.WriteString(fmt.Sprintf("  TLS:        %v\n", c.TLS))
	sb.WriteString(fmt.Sprintf("  Safe Mode:  %v\n", c.SafeMode))
	sb.WriteString(fmt.Sprintf("  Format:     %s\n", c.Format))
	if c.ConfigFile != "" {
		sb.WriteString(fmt.Sprintf("  RC File:    %s\n", c.ConfigFile))
	}
	return sb.String()
}
