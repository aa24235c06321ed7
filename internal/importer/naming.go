package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// nameSeq synthesizes names for servers pasted without one. It tracks the
// fallback names it has already handed out so two nameless servers
// extracted within the same millisecond still get distinct names.
type nameSeq struct {
	now  func() time.Time
	used map[string]bool
}

func newNameSeq(now func() time.Time) *nameSeq {
	if now == nil {
		now = time.Now
	}
	return &nameSeq{now: now, used: make(map[string]bool)}
}

// synthesize derives a name for a config that carried none. For npx the
// name comes from the package identifier argument, for node from the script
// path; anything else falls back to a timestamped placeholder.
func (s *nameSeq) synthesize(command string, args []string) string {
	switch command {
	case "npx":
		for _, arg := range args {
			if looksLikePackage(arg) {
				if name := stripNameAffixes(lastPathSegment(arg)); name != "" {
					return name
				}
			}
		}
	case "node":
		if len(args) > 0 {
			if name, ok := nameFromScriptPath(args[0]); ok {
				return name
			}
		}
	}
	return s.fallback()
}

func (s *nameSeq) fallback() string {
	base := fmt.Sprintf("imported-server-%d", s.now().UnixMilli())
	name := base
	for i := 2; s.used[name]; i++ {
		name = fmt.Sprintf("%s-%d", base, i)
	}
	s.used[name] = true
	return name
}

// Bare npm package names are lowercase and limited to url-safe punctuation.
var bareNpmNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// looksLikePackage reports whether an argument looks like an npm package
// identifier, scoped (@scope/name) or bare (mcp-server-git), rather than a
// flag.
func looksLikePackage(arg string) bool {
	if strings.HasPrefix(arg, "-") {
		return false
	}
	if strings.HasPrefix(arg, "@") || strings.Contains(arg, "/") {
		return true
	}
	return bareNpmNamePattern.MatchString(arg)
}

// nameFromScriptPath derives a name from a node script path. A generic
// entrypoint basename (index.js, server.js, main.js) names the server after
// its parent directory; any other name.js uses the stem directly.
func nameFromScriptPath(scriptPath string) (string, bool) {
	segments := splitPath(scriptPath)
	if len(segments) == 0 {
		return "", false
	}

	base := segments[len(segments)-1]
	stem, ok := strings.CutSuffix(base, ".js")
	if !ok || stem == "" {
		return "", false
	}

	switch stem {
	case "index", "server", "main":
		if len(segments) < 2 {
			return "", false
		}
		if name := stripNameAffixes(segments[len(segments)-2]); name != "" {
			return name, true
		}
		return "", false
	default:
		if name := stripNameAffixes(stem); name != "" {
			return name, true
		}
		return "", false
	}
}

// stripNameAffixes removes the boilerplate affixes package authors attach
// to MCP server names.
func stripNameAffixes(name string) string {
	name = strings.TrimPrefix(name, "mcp-server-")
	name = strings.TrimSuffix(name, "-mcp")
	name = strings.TrimSuffix(name, "-server")
	return name
}

func lastPathSegment(p string) string {
	segments := splitPath(p)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// splitPath splits on both separator styles and drops empty segments, since
// pasted configs mix unix and windows paths.
func splitPath(p string) []string {
	parts := strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	return parts
}
