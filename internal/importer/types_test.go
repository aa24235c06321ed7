package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerConfigAccessors(t *testing.T) {
	cfg := ServerConfig{
		"command": "npx",
		"args":    []any{"-y", "@scope/pkg", 42.0},
		"env":     map[string]any{"API_KEY": "sk-abcdef0123456789"},
	}

	t.Run("command", func(t *testing.T) {
		cmd, ok := cfg.Command()
		assert.True(t, ok)
		assert.Equal(t, "npx", cmd)

		_, ok = ServerConfig{"command": 1.0}.Command()
		assert.False(t, ok)
	})

	t.Run("args", func(t *testing.T) {
		args, ok := cfg.Args()
		assert.True(t, ok)
		assert.Len(t, args, 3)

		_, ok = ServerConfig{"args": "oops"}.Args()
		assert.False(t, ok)
	})

	t.Run("string args drop non-strings", func(t *testing.T) {
		assert.Equal(t, []string{"-y", "@scope/pkg"}, cfg.StringArgs())
		assert.Nil(t, ServerConfig{}.StringArgs())
	})

	t.Run("env", func(t *testing.T) {
		env, ok := cfg.Env()
		assert.True(t, ok)
		assert.Equal(t, "sk-abcdef0123456789", env["API_KEY"])

		_, ok = ServerConfig{"env": []any{"A=1"}}.Env()
		assert.False(t, ok)
		_, ok = ServerConfig{}.Env()
		assert.False(t, ok)
	})
}

func TestParsedServerWithName(t *testing.T) {
	original := ParsedServer{Name: "fs", Config: ServerConfig{"command": "npx"}, SourceBlockIndex: 3}
	renamed := original.WithName("fs_1")

	assert.Equal(t, "fs_1", renamed.Name)
	assert.Equal(t, "fs", original.Name)
	assert.Equal(t, 3, renamed.SourceBlockIndex)
}
