package registry

import "errors"

var (
	ErrParseRegistry = errors.New("failed to parse registry file")
	ErrWriteRegistry = errors.New("failed to write registry file")
)
