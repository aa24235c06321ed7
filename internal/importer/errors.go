package importer

import "errors"

var (
	ErrNoJSONBlocks   = errors.New("no valid JSON blocks found")
	ErrNoServersFound = errors.New("no MCP servers found")
	ErrUnknownPolicy  = errors.New("unknown resolution policy")
)
