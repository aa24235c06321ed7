package settings

import "errors"

var (
	ErrParseToml     = errors.New("failed to parse TOML settings")
	ErrInvalidPolicy = errors.New("invalid default policy")
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
	ErrEmptyRegistry = errors.New("registry path cannot be empty")
)
