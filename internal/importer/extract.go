package importer

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ParseError reports a block that could not be parsed as JSON. The block
// index is zero-based internally and rendered one-based for humans.
type ParseError struct {
	BlockIndex int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("block %d is not valid JSON: %v", e.BlockIndex+1, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseServers runs block extraction and server extraction over raw pasted
// text. A block that fails to parse contributes an error message and is
// skipped; the remaining blocks still process. Zero extractable blocks, or
// blocks that yield zero servers, surface as an explicit error message so
// callers can distinguish "nothing to do" from success.
func ParseServers(text string) ParseResult {
	var result ParseResult

	blocks := ExtractBlocks(text)
	if len(blocks) == 0 {
		result.Errors = append(result.Errors, ErrNoJSONBlocks.Error())
		return result
	}

	seq := newNameSeq(time.Now)
	for i, block := range blocks {
		servers, err := extractServers(block, i, seq)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Servers = append(result.Servers, servers...)
	}

	if len(result.Servers) == 0 {
		result.Errors = append(result.Errors, ErrNoServersFound.Error())
	}

	return result
}

// ExtractServers parses one brace-balanced JSON block and normalizes it
// into zero or more named servers. The block index is carried through for
// error reporting.
func ExtractServers(block string, blockIndex int) ([]ParsedServer, error) {
	return extractServers(block, blockIndex, newNameSeq(time.Now))
}

// extractServers dispatches on the three shapes a pasted block can take,
// in priority order:
//
//  1. a {"mcpServers": {...}} wrapper, each key naming one server
//  2. a single bare config carrying a "command", name synthesized
//  3. a bare name-to-config map whose every value carries a "command"
//
// Anything else yields zero servers without an error; the batch-level
// "nothing found" condition is reported by the caller.
func extractServers(block string, blockIndex int, seq *nameSeq) ([]ParsedServer, error) {
	var value map[string]any
	if err := json.Unmarshal([]byte(block), &value); err != nil {
		return nil, &ParseError{BlockIndex: blockIndex, Err: err}
	}

	if wrapper, ok := value["mcpServers"].(map[string]any); ok {
		return serversFromMap(wrapper, blockIndex), nil
	}

	if cmd, ok := value["command"].(string); ok {
		cfg := ServerConfig(value)
		name := seq.synthesize(cmd, cfg.StringArgs())
		return []ParsedServer{{
			Name:             name,
			Config:           cfg,
			SourceBlockIndex: blockIndex,
		}}, nil
	}

	if len(value) > 0 && isServerMap(value) {
		return serversFromMap(value, blockIndex), nil
	}

	return nil, nil
}

// serversFromMap converts a name-to-config object into servers, one per
// key. Keys are visited in sorted order so extraction is deterministic.
// Values that are not objects are skipped silently.
func serversFromMap(m map[string]any, blockIndex int) []ParsedServer {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	servers := make([]ParsedServer, 0, len(m))
	for _, name := range names {
		cfg, ok := m[name].(map[string]any)
		if !ok {
			continue
		}
		servers = append(servers, ParsedServer{
			Name:             name,
			Config:           ServerConfig(cfg),
			SourceBlockIndex: blockIndex,
		})
	}
	return servers
}

// isServerMap reports whether every value of the object is itself an
// object containing a "command" key.
func isServerMap(m map[string]any) bool {
	for _, v := range m {
		cfg, ok := v.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := cfg["command"]; !ok {
			return false
		}
	}
	return true
}
