package importer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Launcher commands commonly used to host MCP servers. Anything else is
// flagged for review, not rejected.
var knownLaunchers = map[string]bool{
	"node":    true,
	"npx":     true,
	"python":  true,
	"python3": true,
	"deno":    true,
	"bun":     true,
}

// Tokens that suggest a destructive operation hiding in a command string.
var destructiveTokens = []string{"rm", "del", "format", "sudo", "chmod", "chown"}

// Placeholder values users forget to replace before pasting.
var placeholderTokens = []string{
	"your-token-here",
	"your-api-key",
	"your_api_key_here",
	"<project-ref>",
	"<your-token>",
	"changeme",
}

// Substrings marking an env key as likely to hold a credential.
var sensitiveKeyTokens = []string{"password", "secret", "key", "token"}

var envKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

const maxArgLength = 500

// Validate checks the whole importing batch for structural and security
// problems. Structural problems are errors and block the import; heuristic
// findings are warnings and never block. Malformed data always becomes a
// finding here, never a returned fault.
func Validate(servers []ParsedServer) ValidationResult {
	var result ValidationResult

	result.Errors = append(result.Errors, duplicateNameFindings(servers)...)

	for _, server := range servers {
		errs, warns := validateServer(server)
		result.Errors = append(result.Errors, errs...)
		result.Warnings = append(result.Warnings, warns...)
	}

	result.Valid = len(result.Errors) == 0
	return result
}

// duplicateNameFindings reports exactly one error per name that appears
// more than once in the batch, in first-occurrence order. Names are
// compared case-sensitively.
func duplicateNameFindings(servers []ParsedServer) []ValidationFinding {
	counts := make(map[string]int, len(servers))
	for _, server := range servers {
		counts[server.Name]++
	}

	var findings []ValidationFinding
	reported := make(map[string]bool)
	for _, server := range servers {
		if counts[server.Name] < 2 || reported[server.Name] {
			continue
		}
		reported[server.Name] = true
		findings = append(findings, ValidationFinding{
			Field:      "name",
			Message:    fmt.Sprintf("duplicate server name %q in the importing batch", server.Name),
			ServerName: server.Name,
			Severity:   SeverityError,
		})
	}
	return findings
}

func validateServer(server ParsedServer) (errs, warns []ValidationFinding) {
	finding := func(severity Severity, field, format string, args ...any) ValidationFinding {
		return ValidationFinding{
			Field:      field,
			Message:    fmt.Sprintf(format, args...),
			ServerName: server.Name,
			Severity:   severity,
		}
	}

	command, hasCommand := server.Config.Command()
	if !hasCommand {
		errs = append(errs, finding(SeverityError, "command", "command is missing or not a string"))
	} else {
		for _, token := range destructiveTokens {
			if strings.Contains(command, token) {
				warns = append(warns, finding(SeverityWarning, "command",
					"command contains potentially destructive token %q", token))
				break
			}
		}
		if !knownLaunchers[command] {
			warns = append(warns, finding(SeverityWarning, "command",
				"command %q is not a common MCP server launcher", command))
		}
	}

	argErrs, argWarns := validateArgs(server, command, finding)
	errs = append(errs, argErrs...)
	warns = append(warns, argWarns...)

	envErrs, envWarns := validateEnv(server, finding)
	errs = append(errs, envErrs...)
	warns = append(warns, envWarns...)

	return errs, warns
}

type findingFunc func(severity Severity, field, format string, args ...any) ValidationFinding

func validateArgs(server ParsedServer, command string, finding findingFunc) (errs, warns []ValidationFinding) {
	raw, present := server.Config["args"]
	if !present {
		return nil, nil
	}

	args, ok := raw.([]any)
	if !ok {
		errs = append(errs, finding(SeverityError, "args", "args must be an array of strings"))
		return errs, nil
	}

	for i, arg := range args {
		field := fmt.Sprintf("args[%d]", i)
		s, ok := arg.(string)
		if !ok {
			errs = append(errs, finding(SeverityError, field, "argument must be a string"))
			continue
		}
		if strings.Contains(s, "../") || strings.Contains(s, `..\`) {
			warns = append(warns, finding(SeverityWarning, field,
				"argument contains a path traversal pattern"))
		}
		if len(s) > maxArgLength {
			warns = append(warns, finding(SeverityWarning, field,
				"argument is %d characters long, over the %d character limit", len(s), maxArgLength))
		}
	}

	if command == "npx" && len(args) >= 2 && !hasPackageArg(args) {
		warns = append(warns, finding(SeverityWarning, "args",
			"npx command has no argument that looks like a package identifier"))
	}

	return errs, warns
}

func hasPackageArg(args []any) bool {
	for _, arg := range args {
		if s, ok := arg.(string); ok && looksLikePackage(s) {
			return true
		}
	}
	return false
}

func validateEnv(server ParsedServer, finding findingFunc) (errs, warns []ValidationFinding) {
	env, ok := server.Config.Env()
	if !ok {
		if _, present := server.Config["env"]; !present {
			return nil, nil
		}
		errs = append(errs, finding(SeverityError, "env", "env must be an object with string values"))
		return errs, nil
	}

	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field := "env." + key

		value, ok := env[key].(string)
		if !ok {
			errs = append(errs, finding(SeverityError, field, "env value must be a string"))
			continue
		}

		if !envKeyPattern.MatchString(key) {
			warns = append(warns, finding(SeverityWarning, field,
				"env key %q is not UPPER_SNAKE_CASE", key))
		}

		if token, found := placeholderIn(value); found {
			warns = append(warns, finding(SeverityWarning, field,
				"env value looks like an unreplaced placeholder (%q)", token))
		}

		if isSensitiveKey(key) && suspiciousSecretValue(value) {
			warns = append(warns, finding(SeverityWarning, field,
				"env key %q looks sensitive but its value looks truncated or malformed", key))
		}
	}

	return errs, warns
}

func placeholderIn(value string) (string, bool) {
	lower := strings.ToLower(value)
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			return token, true
		}
	}
	return "", false
}

func isSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, token := range sensitiveKeyTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

// suspiciousSecretValue reports values too short to be real credentials or
// containing whitespace, both usually paste accidents.
func suspiciousSecretValue(value string) bool {
	return len(value) < 10 || strings.ContainsAny(value, " \t\n\r")
}
