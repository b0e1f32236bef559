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

// Command nimbusql is the interactive NimbusDB shell.
//
// Configuration precedence, lowest to highest: built-in defaults, the
// nimbusqlrc file, NIMBUSQL_* environment variables, and finally flags
// that were explicitly set on the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"nimbusql/internal/banner"
	"nimbusql/internal/cli"
	"nimbusql/internal/client"
	"nimbusql/internal/config"
	"nimbusql/internal/discovery"
	"nimbusql/internal/logging"
	"nimbusql/internal/shell"
)

// cliFlags holds raw flag values before they are merged into the
// config with precedence rules.
type cliFlags struct {
	Host        string
	Port        int
	Keyspace    string
	Username    string
	Execute     string
	File        string
	Format      string
	ConfigFile  string
	SafeMode    bool
	NoSafeMode  bool
	NoColor     bool
	TLS         bool
	TLSInsecure bool
	Timeout     int
	Debug       bool
	Discover    bool
	Version     bool
	Help        bool
}

func parseFlags() cliFlags {
	flags := cliFlags{}

	flag.StringVar(&flags.Host, "host", "localhost", "Contact point(s), comma-separated for clusters")
	flag.StringVar(&flags.Host, "H", "localhost", "Contact point(s) (shorthand)")
	flag.IntVar(&flags.Port, "port", config.DefaultPort, "Server port")
	flag.IntVar(&flags.Port, "p", config.DefaultPort, "Server port (shorthand)")
	flag.StringVar(&flags.Keyspace, "keyspace", "", "Keyspace to use after connecting")
	flag.StringVar(&flags.Keyspace, "k", "", "Keyspace (shorthand)")
	flag.StringVar(&flags.Username, "username", "", "Username for the session")
	flag.StringVar(&flags.Username, "u", "", "Username (shorthand)")
	flag.StringVar(&flags.Execute, "execute", "", "Execute statements and exit")
	flag.StringVar(&flags.Execute, "e", "", "Execute statements and exit (shorthand)")
	flag.StringVar(&flags.File, "file", "", "Execute statements from a file and exit")
	flag.StringVar(&flags.File, "f", "", "Execute statements from a file (shorthand)")
	flag.StringVar(&flags.Format, "format", "table", "Output format: table, json, plain")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to the rc file")
	flag.StringVar(&flags.ConfigFile, "c", "", "Path to the rc file (shorthand)")
	flag.BoolVar(&flags.SafeMode, "safe-mode", false, "Confirm DROP and TRUNCATE statements")
	flag.BoolVar(&flags.NoSafeMode, "no-safe-mode", false, "Disable confirmation prompts")
	flag.BoolVar(&flags.NoColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.TLS, "tls", false, "Connect with TLS")
	flag.BoolVar(&flags.TLSInsecure, "tls-insecure", false, "Skip TLS certificate verification (insecure)")
	flag.IntVar(&flags.Timeout, "connect-timeout", 5, "Connection timeout in seconds")
	flag.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	flag.BoolVar(&flags.Discover, "discover", false, "Discover a node via mDNS and connect to it")
	flag.BoolVar(&flags.Version, "version", false, "Print version information and exit")
	flag.BoolVar(&flags.Version, "v", false, "Print version information (shorthand)")
	flag.BoolVar(&flags.Help, "help", false, "Show help information")

	flag.Usage = printUsage
	flag.Parse()
	return flags
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("    nimbusql [flags]")
	fmt.Println("    nimbusql -e \"<statements>\"")
	fmt.Println("    nimbusql -f <file>")
	fmt.Println()

	fmt.Println("  " + cli.Highlight("Flags"))
	fmt.Println()
	fmt.Printf("    %s, %s <host>       Contact point(s), comma-separated for clusters\n", cli.Info("-H"), cli.Info("--host"))
	fmt.Printf("    %s, %s <port>       Server port (default: %d)\n", cli.Info("-p"), cli.Info("--port"), config.DefaultPort)
	fmt.Printf("    %s, %s <name>   Keyspace to use after connecting\n", cli.Info("-k"), cli.Info("--keyspace"))
	fmt.Printf("    %s, %s <name>   Username for the session\n", cli.Info("-u"), cli.Info("--username"))
	fmt.Printf("    %s, %s <stmts>   Execute statements and exit\n", cli.Info("-e"), cli.Info("--execute"))
	fmt.Printf("    %s, %s <file>      Execute statements from a file and exit\n", cli.Info("-f"), cli.Info("--file"))
	fmt.Printf("        %s <fmt>       Output format: table, json, plain\n", cli.Info("--format"))
	fmt.Printf("    %s, %s <file>    Path to the rc file\n", cli.Info("-c"), cli.Info("--config"))
	fmt.Printf("        %s      Confirm DROP and TRUNCATE statements\n", cli.Info("--safe-mode"))
	fmt.Printf("        %s   Disable confirmation prompts\n", cli.Info("--no-safe-mode"))
	fmt.Printf("        %s       Disable colored output\n", cli.Info("--no-color"))
	fmt.Printf("        %s            Connect with TLS\n", cli.Info("--tls"))
	fmt.Printf("        %s   Skip TLS certificate verification\n", cli.Info("--tls-insecure"))
	fmt.Printf("        %s       Discover a node via mDNS and connect\n", cli.Info("--discover"))
	fmt.Printf("        %s          Enable debug logging\n", cli.Info("--debug"))
	fmt.Printf("    %s, %s        Print version information and exit\n", cli.Info("-v"), cli.Info("--version"))
	fmt.Printf("        %s           Show this help message\n", cli.Info("--help"))
	fmt.Println()

	fmt.Println("  " + cli.Highlight("Examples"))
	fmt.Println()
	fmt.Println("    " + cli.Dimmed("# Connect to a local node"))
	fmt.Println("    " + cli.Success("nimbusql"))
	fmt.Println()
	fmt.Println("    " + cli.Dimmed("# Connect to a cluster with safe mode on"))
	fmt.Println("    " + cli.Success("nimbusql -H node1,node2,node3 --safe-mode"))
	fmt.Println()
	fmt.Println("    " + cli.Dimmed("# Run a statement and exit"))
	fmt.Println("    " + cli.Success("nimbusql -k myapp -e \"SELECT * FROM users;\""))
	fmt.Println()
	fmt.Println("    " + cli.Dimmed("# Run a script"))
	fmt.Println("    " + cli.Success("nimbusql -f schema.cql"))
	fmt.Println()

	fmt.Println("  " + cli.Highlight("Environment Variables"))
	fmt.Println()
	fmt.Printf("    %s       Default contact point(s)\n", cli.Info("NIMBUSQL_HOST"))
	fmt.Printf("    %s       Default server port\n", cli.Info("NIMBUSQL_PORT"))
	fmt.Printf("    %s   Default keyspace\n", cli.Info("NIMBUSQL_KEYSPACE"))
	fmt.Printf("    %s          Path to the rc file\n", cli.Info("NIMBUSQLRC"))
	fmt.Printf("    %s            Disable colored output\n", cli.Info("NO_COLOR"))
	fmt.Println()
}

// resolveConfig merges defaults, the rc file, environment variables,
// and explicitly-set flags, in that order.
func resolveConfig(flags cliFlags) (*config.Config, error) {
	cfg := config.Default()

	rcPath := flags.ConfigFile
	if rcPath == "" {
		rcPath = config.FindRCFile()
	}
	if rcPath != "" {
		if err := cfg.LoadFile(rcPath); err != nil {
			// An explicitly requested rc file must load; an
			// auto-discovered one may be skipped with a warning.
			if flags.ConfigFile != "" {
				return nil, err
			}
			cli.PrintWarning("Skipping rc file: %v", err)
		}
	}

	cfg.LoadEnv()

	// Only flags the user actually passed override the layers below.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "host", "H":
			cfg.Host = flags.Host
		case "port", "p":
			cfg.Port = flags.Port
		case "keyspace", "k":
			cfg.Keyspace = flags.Keyspace
		case "username", "u":
			cfg.Username = flags.Username
		case "execute", "e":
			cfg.Execute = flags.Execute
		case "file", "f":
			cfg.File = flags.File
		case "format":
			cfg.Format = flags.Format
		case "safe-mode":
			cfg.SafeMode = true
		case "no-safe-mode":
			cfg.SafeMode = false
		case "no-color":
			cfg.NoColor = true
		case "tls":
			cfg.TLS = flags.TLS
		case "tls-insecure":
			cfg.TLSInsecure = flags.TLSInsecure
		case "connect-timeout":
			cfg.ConnectTimeout = flags.Timeout
		case "debug":
			cfg.Debug = flags.Debug
		}
	})

	return cfg, cfg.Validate()
}

// discoverContactPoint finds the first NimbusDB node on the network.
func discoverContactPoint() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	nodes, err := discovery.Discover(ctx, discovery.DefaultTimeout)
	if err != nil {
		return "", err
	}
	if len(nodes) == 0 {
		return "", fmt.Errorf("no NimbusDB nodes found on the local network")
	}
	return nodes[0].Addr, nil
}

func main() {
	flags := parseFlags()

	if flags.Version {
		banner.PrintVersion(os.Stdout)
		os.Exit(0)
	}
	if flags.Help {
		printUsage()
		os.Exit(0)
	}

	cfg, err := resolveConfig(flags)
	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}

	stdinIsTerminal := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutIsTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	interactive := stdinIsTerminal && cfg.Execute == "" && cfg.File == ""

	if cfg.NoColor || !stdoutIsTerminal {
		cli.SetColorsEnabled(false)
	}
	if cfg.Debug {
		logging.SetGlobalLevel(logging.DEBUG)
	}

	if flags.Discover {
		addr, err := discoverContactPoint()
		if err != nil {
			cli.PrintError("Discovery failed: %v", err)
			os.Exit(1)
		}
		cli.PrintInfo("Discovered node at %s", addr)
		cfg.Host = addr
	}

	conn := client.New(client.Options{
		ContactPoints: cfg.ContactPoints(),
		Username:      cfg.Username,
		Keyspace:      cfg.Keyspace,
		TLS:           cfg.TLS,
		TLSInsecure:   cfg.TLSInsecure,
		DialTimeout:   time.Duration(cfg.ConnectTimeout) * time.Second,
	})

	var spinner *cli.Spinner
	if interactive {
		spinner = cli.NewSpinner(fmt.Sprintf("Connecting to %s...", cfg.Host))
		spinner.Start()
	}
	if err := conn.Connect(); err != nil {
		if spinner != nil {
			spinner.StopWithError("Connection failed")
		}
		cli.ErrConnectionFailed(cfg.Host, err).Exit()
	}
	if spinner != nil {
		spinner.StopWithSuccess(fmt.Sprintf("Connected to %s", conn.CurrentHost()))
	}
	defer conn.Close()

	sh := shell.New(cfg, conn, os.Stdout, interactive)

	switch {
	case cfg.Execute != "":
		err = sh.RunString(cfg.Execute)
	case cfg.File != "":
		f, ferr := os.Open(cfg.File)
		if ferr != nil {
			cli.PrintError("Cannot open %s: %v", cfg.File, ferr)
			os.Exit(1)
		}
		err = sh.RunPiped(f)
		f.Close()
	case interactive:
		banner.Print(os.Stdout, conn.ServerVersion(), conn.CurrentHost(), conn.Keyspace())
		err = sh.Run()
	default:
		err = sh.RunPiped(os.Stdin)
	}

	if err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
