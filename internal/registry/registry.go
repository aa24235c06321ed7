// Package registry owns the on-disk server registry: a JSON file in the
// standard {"mcpServers": {...}} client-config shape. The import pipeline
// never touches this package; it only receives the name set and hands back
// the final server list for Merge and Save.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
)

const (
	fileMode = 0o600
	dirMode  = 0o755
)

// Registry is an in-memory copy of the registry file.
type Registry struct {
	Servers map[string]importer.ServerConfig
}

// registryFile is the wire shape of the registry on disk.
type registryFile struct {
	McpServers map[string]importer.ServerConfig `json:"mcpServers"`
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{Servers: make(map[string]importer.ServerConfig)}
}

// Load reads the registry file at path. A missing file is an empty
// registry, not an error; the first Save creates it.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %q: %w", path, err)
	}
	return LoadBytes(data)
}

// LoadBytes parses registry file contents.
func LoadBytes(data []byte) (*Registry, error) {
	var file registryFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseRegistry, err)
	}

	reg := New()
	if file.McpServers != nil {
		reg.Servers = file.McpServers
	}
	return reg, nil
}

// Names returns the registered server names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Servers))
	for name := range r.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a server with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Servers[name]
	return ok
}

// Len returns the number of registered servers.
func (r *Registry) Len() int {
	return len(r.Servers)
}

// Merge writes the resolved servers into the registry. Entries with equal
// names overwrite in list order, so when the same name appears twice in
// one batch the last one wins.
func (r *Registry) Merge(servers []importer.ParsedServer) {
	for _, server := range servers {
		r.Servers[server.Name] = server.Config
	}
}

// Save writes the registry to path atomically: the content lands in a
// temp file in the same directory and is renamed over the target.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(registryFile{McpServers: r.Servers}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWriteRegistry, err)
	}
	return nil
}
