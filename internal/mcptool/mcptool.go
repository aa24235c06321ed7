// Package mcptool exposes the import pipeline over the Model Context
// Protocol, so agent frontends can validate and import pasted server
// definitions through tool calls instead of the CLI.
package mcptool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/atlanticdynamic/mcpimport/internal/registry"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Service wires the pipeline and the registry store into MCP tools.
type Service struct {
	registryPath  string
	defaultPolicy importer.Policy
	version       string
	logger        *slog.Logger
}

// NewService creates a service persisting to the registry at registryPath.
func NewService(registryPath string, defaultPolicy importer.Policy, version string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registryPath:  registryPath,
		defaultPolicy: defaultPolicy,
		version:       version,
		logger:        logger,
	}
}

// BuildServer compiles the MCP server with the import tools registered.
func (s *Service) BuildServer() *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "mcpimport",
		Version: s.version,
	}

	server := mcpsdk.NewServer(impl, nil)

	server.AddTool(&mcpsdk.Tool{
		Name:        "validate_servers",
		Description: "Extract and validate MCP server definitions from pasted JSON without writing anything",
	}, s.handleValidate)

	server.AddTool(&mcpsdk.Tool{
		Name:        "import_servers",
		Description: "Import MCP server definitions from pasted JSON into the registry, resolving name conflicts by policy (skip, replace, or rename)",
	}, s.handleImport)

	return server
}

// Run serves the tools over stdio until the context is canceled.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info("serving MCP tools over stdio", "registry", s.registryPath)
	return s.BuildServer().Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Service) handleValidate(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[map[string]any]) (*mcpsdk.CallToolResultFor[any], error) {
	text, ok := params.Arguments["text"].(string)
	if !ok || text == "" {
		return errorResult("text argument required"), nil
	}

	reg, err := registry.Load(s.registryPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report := importer.Run(text, reg.Names())
	return reportResult(report, !report.Validation.Valid)
}

func (s *Service) handleImport(ctx context.Context, ss *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[map[string]any]) (*mcpsdk.CallToolResultFor[any], error) {
	text, ok := params.Arguments["text"].(string)
	if !ok || text == "" {
		return errorResult("text argument required"), nil
	}

	policy := s.defaultPolicy
	if raw, ok := params.Arguments["policy"].(string); ok && raw != "" {
		parsed, err := importer.ParsePolicy(raw)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		policy = parsed
	}
	dryRun, _ := params.Arguments["dry_run"].(bool)

	reg, err := registry.Load(s.registryPath)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	existing := reg.Names()
	report := importer.Run(text, existing)

	if !report.HasServers() {
		return reportResult(report, true)
	}
	if !report.Validation.Valid {
		s.logger.Warn("import rejected",
			"errors", len(report.Validation.Errors))
		return reportResult(report, true)
	}

	if err := report.Resolve(existing, policy); err != nil {
		return errorResult(err.Error()), nil
	}

	if !dryRun {
		reg.Merge(report.Resolved)
		if err := reg.Save(s.registryPath); err != nil {
			return errorResult(err.Error()), nil
		}
		s.logger.Info("import committed",
			"servers", len(report.Resolved),
			"policy", string(policy))
	}

	return reportResult(report, false)
}

func reportResult(report *importer.Report, isError bool) (*mcpsdk.CallToolResultFor[any], error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil
}

func errorResult(msg string) *mcpsdk.CallToolResultFor[any] {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: msg}},
		IsError: true,
	}
}
