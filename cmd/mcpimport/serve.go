package main

import (
	"context"
	"log/slog"

	"github.com/atlanticdynamic/mcpimport/internal/mcptool"
	"github.com/urfave/cli/v3"
)

var serveCmd = &cli.Command{
	Name:   "serve",
	Usage:  "Expose the import pipeline as MCP tools over stdio",
	Action: serveAction,
}

func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}

	svc := mcptool.NewService(
		cfg.RegistryPath,
		cfg.Policy(),
		cmd.Root().Version,
		slog.Default(),
	)
	return svc.Run(ctx)
}
