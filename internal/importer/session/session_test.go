package session

import (
	"io"
	"log/slog"
	"testing"

	"github.com/atlanticdynamic/mcpimport/internal/importer"
	"github.com/atlanticdynamic/mcpimport/internal/importer/session/finitestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
}

func TestImportSession_HappyPath(t *testing.T) {
	sess, err := New([]string{"git"}, testHandler())
	require.NoError(t, err)
	assert.Equal(t, finitestate.StateCreated, sess.GetState())
	assert.False(t, sess.ID.IsNil())

	input := `{"mcpServers":{"fs":{"command":"npx","args":["-y","@modelcontextprotocol/server-filesystem","/tmp"]}}}`
	require.NoError(t, sess.Extract(input))
	assert.Equal(t, finitestate.StateExtracted, sess.GetState())

	require.NoError(t, sess.Validate())
	assert.Equal(t, finitestate.StateValidated, sess.GetState())
	assert.False(t, sess.IsInvalid())
	assert.Empty(t, sess.Report().Conflicts)

	resolved, err := sess.Resolve(importer.PolicySkip)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "fs", resolved[0].Name)
	assert.Equal(t, finitestate.StateResolved, sess.GetState())
	assert.Equal(t, importer.PolicySkip, sess.Policy())

	require.NoError(t, sess.MarkCommitted())
	assert.Equal(t, finitestate.StateCommitted, sess.GetState())
	assert.NotEmpty(t, sess.GetLogs())
}

func TestImportSession_RenameAgainstRegistry(t *testing.T) {
	sess, err := New([]string{"fs"}, testHandler())
	require.NoError(t, err)

	require.NoError(t, sess.Extract(`{"mcpServers":{"fs":{"command":"npx"}}}`))
	require.NoError(t, sess.Validate())

	require.Len(t, sess.Report().Conflicts, 1)
	assert.Equal(t, importer.PolicySkip, sess.Report().Conflicts[0].Action)

	resolved, err := sess.Resolve(importer.PolicyRename)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, "fs_1", resolved[0].Name)
	assert.Equal(t, importer.PolicyRename, sess.Report().Conflicts[0].Action)
}

func TestImportSession_InvalidBatchIsTerminal(t *testing.T) {
	sess, err := New(nil, testHandler())
	require.NoError(t, err)

	// Two servers with the same name is a batch-blocking error.
	require.NoError(t, sess.Extract(`{"x":{"command":"npx"}} {"x":{"command":"node"}}`))
	require.NoError(t, sess.Validate())
	assert.True(t, sess.IsInvalid())
	assert.Equal(t, finitestate.StateInvalid, sess.GetState())

	_, err = sess.Resolve(importer.PolicySkip)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBatchInvalid)
}

func TestImportSession_NothingExtracted(t *testing.T) {
	sess, err := New(nil, testHandler())
	require.NoError(t, err)

	require.NoError(t, sess.Extract("nothing importable here"))
	require.NoError(t, sess.Validate(), "an empty batch has no validation errors")

	_, err = sess.Resolve(importer.PolicySkip)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingExtracted)
	assert.Equal(t, finitestate.StateError, sess.GetState())
}

func TestImportSession_LifecycleOrder(t *testing.T) {
	t.Run("validate before extract", func(t *testing.T) {
		sess, err := New(nil, testHandler())
		require.NoError(t, err)
		assert.Error(t, sess.Validate())
	})

	t.Run("extract twice", func(t *testing.T) {
		sess, err := New(nil, testHandler())
		require.NoError(t, err)
		require.NoError(t, sess.Extract(`{"command":"node"}`))
		assert.Error(t, sess.Extract(`{"command":"node"}`))
	})

	t.Run("commit before resolve", func(t *testing.T) {
		sess, err := New(nil, testHandler())
		require.NoError(t, err)
		require.NoError(t, sess.Extract(`{"command":"node"}`))
		err = sess.MarkCommitted()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotResolved)
	})
}

func TestImportSession_PlaybackLogs(t *testing.T) {
	sess, err := New(nil, testHandler())
	require.NoError(t, err)

	require.NoError(t, sess.Extract(`{"command":"node","args":["app.js"]}`))
	require.NoError(t, sess.Validate())
	_, err = sess.Resolve(importer.PolicyReplace)
	require.NoError(t, err)

	require.NoError(t, sess.PlaybackLogs(testHandler()))
	assert.NotEmpty(t, sess.GetLogs())
}
