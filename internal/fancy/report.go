package fancy

import (
	"fmt"
	"strings"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/charmbracelet/lipgloss/tree"
)

const maxArgDisplay = 60

// ReportTree builds a styled tree representation of an import report:
// extracted servers, validation findings, and registry conflicts.
func ReportTree(report *importer.Report) *tree.Tree {
	t := Tree()
	t.Root(RootStyle.Render("Import Report"))

	servers := BranchNode("Servers", fmt.Sprintf("(%d)", len(report.Parse.Servers)))
	for _, server := range report.Parse.Servers {
		servers.Child(serverNode(server))
	}
	t.Child(servers)

	if len(report.Parse.Errors) > 0 {
		parseErrors := BranchNode("Parse Errors", fmt.Sprintf("(%d)", len(report.Parse.Errors)))
		for _, msg := range report.Parse.Errors {
			parseErrors.Child(ErrorText(msg))
		}
		t.Child(parseErrors)
	}

	if len(report.Validation.Errors) > 0 {
		errs := BranchNode("Errors", fmt.Sprintf("(%d)", len(report.Validation.Errors)))
		for _, f := range report.Validation.Errors {
			errs.Child(ErrorText(findingLine(f)))
		}
		t.Child(errs)
	}

	if len(report.Validation.Warnings) > 0 {
		warns := BranchNode("Warnings", fmt.Sprintf("(%d)", len(report.Validation.Warnings)))
		for _, f := range report.Validation.Warnings {
			warns.Child(WarnText(findingLine(f)))
		}
		t.Child(warns)
	}

	if len(report.Conflicts) > 0 {
		conflicts := BranchNode("Conflicts", fmt.Sprintf("(%d)", len(report.Conflicts)))
		for _, c := range report.Conflicts {
			conflicts.Child(ConflictText(fmt.Sprintf("%s → %s", c.ServerName, c.Action)))
		}
		t.Child(conflicts)
	}

	if report.Resolved != nil {
		resolved := BranchNode("Final", fmt.Sprintf("(%d)", len(report.Resolved)))
		for _, server := range report.Resolved {
			resolved.Child(OKText(server.Name))
		}
		t.Child(resolved)
	}

	return t
}

// RenderReport renders the report tree to a string.
func RenderReport(report *importer.Report) string {
	return ReportTree(report).String()
}

func serverNode(server importer.ParsedServer) string {
	command, _ := server.Config.Command()
	launch := command
	if args := server.Config.StringArgs(); len(args) > 0 {
		launch = TruncateString(command+" "+strings.Join(args, " "), maxArgDisplay)
	}
	return fmt.Sprintf("%s %s", ServerText(server.Name), SummaryText(launch))
}

func findingLine(f importer.ValidationFinding) string {
	return fmt.Sprintf("%s %s: %s", f.ServerName, f.Field, f.Message)
}
