// Package settings loads the tool's own configuration from a TOML file:
// where the registry lives, the default conflict policy, and logging
// options. All values have working defaults so the file is optional.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Settings holds the tool configuration.
type Settings struct {
	// RegistryPath is the location of the server registry JSON file
	RegistryPath string `toml:"registry_path"`

	// DefaultPolicy is applied when an import does not name a policy
	DefaultPolicy string `toml:"default_policy"`

	// LogLevel is one of trace, debug, info, warn, error
	LogLevel string `toml:"log_level"`

	// LogFormat is "text" or "json"
	LogFormat string `toml:"log_format"`
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{
		RegistryPath:  DefaultRegistryPath(),
		DefaultPolicy: string(importer.PolicySkip),
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// DefaultRegistryPath places the registry under the user config dir,
// falling back to the working directory when that cannot be resolved.
func DefaultRegistryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "mcpimport.json"
	}
	return filepath.Join(dir, "mcpimport", "servers.json")
}

// Load reads settings from path. A missing file yields the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %q: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses settings file contents, filling in defaults for any
// field the file leaves out.
func LoadBytes(data []byte) (*Settings, error) {
	cfg := Default()
	if err := gotoml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseToml, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (s *Settings) Validate() error {
	if s.RegistryPath == "" {
		return ErrEmptyRegistry
	}
	if _, err := importer.ParsePolicy(s.DefaultPolicy); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, s.DefaultPolicy)
	}
	switch strings.ToLower(s.LogLevel) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLevel, s.LogLevel)
	}
	switch s.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, s.LogFormat)
	}
	return nil
}

// Policy returns the default policy as a typed value. Validate has already
// established that it parses.
func (s *Settings) Policy() importer.Policy {
	policy, _ := importer.ParsePolicy(s.DefaultPolicy)
	return policy
}
