package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/atlanticdynamic/mcpimport/internal/fancy"
	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/atlanticdynamic/mcpimport/internal/importer/session"
	"github.com/atlanticdynamic/mcpimport/internal/logging"
	"github.com/atlanticdynamic/mcpimport/internal/registry"
	"github.com/urfave/cli/v3"
)

var importCmd = &cli.Command{
	Name:      "import",
	Usage:     "Import pasted MCP server definitions into the registry",
	ArgsUsage: "[file]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "policy",
			Aliases: []string{"p"},
			Usage:   "Conflict policy: skip, replace, or rename",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Run the whole pipeline without writing the registry",
		},
	},
	Suggest: true,
	Action:  importAction,
}

func importAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}

	text, err := readInput(cmd)
	if err != nil {
		return cli.Exit(err, 1)
	}

	policy := cfg.Policy()
	if raw := cmd.String("policy"); raw != "" {
		policy, err = importer.ParsePolicy(raw)
		if err != nil {
			return cli.Exit(err, 1)
		}
	}

	reg, err := registry.Load(cfg.RegistryPath)
	if err != nil {
		return cli.Exit(err, 1)
	}

	sess, err := session.New(reg.Names(), logging.SetupHandler(cfg.LogLevel, cfg.LogFormat, nil))
	if err != nil {
		return cli.Exit(err, 1)
	}
	if err := sess.Extract(text); err != nil {
		return cli.Exit(err, 1)
	}
	if err := sess.Validate(); err != nil {
		return cli.Exit(err, 1)
	}

	report := sess.Report()

	if sess.IsInvalid() {
		fmt.Println(fancy.RenderReport(report))
		return cli.Exit("import blocked: the batch has validation errors", 1)
	}

	resolved, err := sess.Resolve(policy)
	if err != nil {
		fmt.Println(fancy.RenderReport(report))
		return cli.Exit(err, 1)
	}

	fmt.Println(fancy.RenderReport(report))

	if cmd.Bool("dry-run") {
		fmt.Println(fancy.SummaryText("dry run: registry not modified"))
		return nil
	}

	reg.Merge(resolved)
	if err := reg.Save(cfg.RegistryPath); err != nil {
		return cli.Exit(err, 1)
	}
	if err := sess.MarkCommitted(); err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Println(fancy.OKText(fmt.Sprintf("imported %d server(s) into %s", len(resolved), cfg.RegistryPath)))
	return nil
}

// readInput reads the pasted text from a file argument or, when no
// argument is given, from stdin.
func readInput(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() > 0 {
		path := cmd.Args().Get(0)
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file %q: %w", path, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
