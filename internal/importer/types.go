// Package importer implements the MCP server import pipeline. It splits
// free-form pasted text into JSON blocks, extracts named server launch
// definitions from each block, validates the batch for structural and
// security problems, and resolves name conflicts against an existing
// registry. Every step is a pure function over its inputs; persistence
// belongs to the caller.
package importer

// ServerConfig is the raw configuration object for one server exactly as it
// appeared in the pasted JSON. Field types are deliberately unchecked at
// parse time so that malformed shapes surface as validation findings rather
// than parse failures.
type ServerConfig map[string]any

// Command returns the command field when present and a string.
func (c ServerConfig) Command() (string, bool) {
	cmd, ok := c["command"].(string)
	return cmd, ok
}

// Args returns the args field when present and an array.
func (c ServerConfig) Args() ([]any, bool) {
	args, ok := c["args"].([]any)
	return args, ok
}

// StringArgs returns the string elements of the args field, dropping any
// elements of other types.
func (c ServerConfig) StringArgs() []string {
	args, ok := c.Args()
	if !ok {
		return nil
	}
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if s, ok := arg.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Env returns the env field when present and an object.
func (c ServerConfig) Env() (map[string]any, bool) {
	env, ok := c["env"].(map[string]any)
	return env, ok
}

// ParsedServer is one named server definition discovered during extraction.
// SourceBlockIndex points back at the originating text block for error
// reporting. A ParsedServer is never mutated after creation; renaming
// produces a new value via WithName.
type ParsedServer struct {
	Name             string       `json:"name"`
	Config           ServerConfig `json:"config"`
	SourceBlockIndex int          `json:"sourceBlockIndex"`
}

// WithName returns a copy of the server carrying a different name.
func (s ParsedServer) WithName(name string) ParsedServer {
	s.Name = name
	return s
}

// ParseResult is the combined outcome of block and server extraction.
// Errors holds human-readable messages, one per block that failed to parse,
// plus a batch-level message when nothing importable was found.
type ParseResult struct {
	Servers []ParsedServer `json:"servers"`
	Errors  []string       `json:"errors"`
}

// Severity classifies a validation finding. Errors block the import of the
// whole batch; warnings are advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ValidationFinding is one problem detected in the importing batch. Field is
// a dotted path into the offending config, e.g. "env.API_KEY" or "args[2]".
type ValidationFinding struct {
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	ServerName string   `json:"serverName"`
	Severity   Severity `json:"severity"`
}

// ValidationResult partitions the findings for a batch. Findings are kept in
// the order they were produced; duplicate problems produce duplicate
// entries because the report is user-facing.
type ValidationResult struct {
	Valid    bool                `json:"valid"`
	Errors   []ValidationFinding `json:"errors"`
	Warnings []ValidationFinding `json:"warnings"`
}

// Policy selects how name collisions with the existing registry are
// resolved.
type Policy string

const (
	// PolicySkip drops colliding servers from the import.
	PolicySkip Policy = "skip"
	// PolicyReplace keeps colliding servers; the caller's merge overwrites
	// existing entries of the same name.
	PolicyReplace Policy = "replace"
	// PolicyRename assigns colliding servers a fresh unique name.
	PolicyRename Policy = "rename"
)

// ConflictInfo reports one incoming server whose name is already present in
// the registry. Action starts as PolicySkip, a neutral placeholder until a
// policy is applied.
type ConflictInfo struct {
	ServerName string `json:"serverName"`
	Action     Policy `json:"action"`
}
