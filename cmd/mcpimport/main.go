package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atlanticdynamic/mcpimport/internal/logging"
	"github.com/atlanticdynamic/mcpimport/internal/settings"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "mcpimport",
		Version: Version,
		Usage:   "Import pasted MCP server definitions into a server registry",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the TOML settings file",
			},
			&cli.StringFlag{
				Name:    "registry",
				Aliases: []string{"r"},
				Usage:   "Path to the registry JSON file (overrides settings)",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: trace, debug, info, warn, or error",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format: text or json",
			},
		},
		Commands: []*cli.Command{
			importCmd,
			checkCmd,
			serveCmd,
			versionCmd,
		},
	}
}

// loadSettings resolves the effective settings from the settings file and
// flag overrides, then installs the default logger.
func loadSettings(cmd *cli.Command) (*settings.Settings, error) {
	path := cmd.String("config")
	if path == "" {
		path = defaultSettingsPath()
	}

	cfg, err := settings.Load(path)
	if err != nil {
		return nil, err
	}

	if v := cmd.String("registry"); v != "" {
		cfg.RegistryPath = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := cmd.String("log-format"); v != "" {
		cfg.LogFormat = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logging.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func defaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mcpimport.toml"
	}
	return filepath.Join(dir, "mcpimport", "config.toml")
}
