package main

import (
	"context"
	"fmt"

	"github.com/atlanticdynamic/mcpimport/internal/fancy"
	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/atlanticdynamic/mcpimport/internal/registry"
	"github.com/urfave/cli/v3"
)

var checkCmd = &cli.Command{
	Name:      "check",
	Aliases:   []string{"lint"},
	Usage:     "Extract and validate pasted definitions without writing anything",
	ArgsUsage: "[file]",
	Suggest:   true,
	Action:    checkAction,
}

func checkAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}

	text, err := readInput(cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}

	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	report := importer.Run(text, reg.Names())
	fmt.Println(fancy.RenderReport(report))

	if !report.HasServers() {
		return cli.Exit(importer.ErrNoServersFound.Error(), 1)
	}
	if !report.Validation.Valid {
		return cli.Exit("the batch has validation errors", 1)
	}

	fmt.Println(fancy.OKText(fmt.Sprintf("%d server(s) ready to import", len(report.Parse.Servers))))
	return nil
}
