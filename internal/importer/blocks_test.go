package importer

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBlocks(t *testing.T) {
	t.Run("empty input yields no blocks", func(t *testing.T) {
		assert.Empty(t, ExtractBlocks(""))
	})

	t.Run("input without braces yields no blocks", func(t *testing.T) {
		assert.Empty(t, ExtractBlocks("here are my servers, hope they work"))
	})

	t.Run("single object", func(t *testing.T) {
		blocks := ExtractBlocks(`{"command":"npx"}`)
		require.Len(t, blocks, 1)
		assert.Equal(t, `{"command":"npx"}`, blocks[0])
	})

	t.Run("whitespace separated objects", func(t *testing.T) {
		input := "{\"a\":1}\n\n  {\"b\":2}\t{\"c\":3}"
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 3)
		for _, block := range blocks {
			assert.True(t, json.Valid([]byte(block)), "block should be valid JSON: %s", block)
		}
	})

	t.Run("back to back objects without separator", func(t *testing.T) {
		blocks := ExtractBlocks(`{"command":"node"}{"command":"python"}`)
		require.Len(t, blocks, 2)
		assert.Equal(t, `{"command":"node"}`, blocks[0])
		assert.Equal(t, `{"command":"python"}`, blocks[1])
	})

	t.Run("braces inside string values do not split blocks", func(t *testing.T) {
		input := `{"command":"echo","args":["{not a block}"]}`
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 1)
		assert.Equal(t, input, blocks[0])
	})

	t.Run("escaped quotes inside strings", func(t *testing.T) {
		input := `{"command":"echo","args":["say \"hi\" {ok}"]}`
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 1)
		assert.Equal(t, input, blocks[0])
	})

	t.Run("windows paths with backslashes", func(t *testing.T) {
		input := `{"command":"node","args":["C:\\servers\\index.js"]}`
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 1)
		assert.True(t, json.Valid([]byte(blocks[0])))
	})

	t.Run("surrounding prose is discarded", func(t *testing.T) {
		input := `paste this: {"command":"npx"} and also {"command":"node"} done`
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 2)
	})

	t.Run("unterminated block is not emitted", func(t *testing.T) {
		blocks := ExtractBlocks(`{"command":"npx"} {"command":"node"`)
		require.Len(t, blocks, 1)
		assert.Equal(t, `{"command":"npx"}`, blocks[0])
	})

	t.Run("quoted brace in prose does not start a block", func(t *testing.T) {
		blocks := ExtractBlocks(`wrap it in "{" first {"a":1}`)
		require.Len(t, blocks, 1)
		assert.Equal(t, `{"a":1}`, blocks[0])
	})

	t.Run("stray closing brace is ignored", func(t *testing.T) {
		blocks := ExtractBlocks(`} {"command":"npx"}`)
		require.Len(t, blocks, 1)
		assert.Equal(t, `{"command":"npx"}`, blocks[0])
	})

	t.Run("nested objects stay in one block", func(t *testing.T) {
		input := `{"mcpServers":{"fs":{"command":"npx","env":{"A":"1"}}}}`
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 1)
		assert.Equal(t, input, blocks[0])
	})

	t.Run("many well formed objects", func(t *testing.T) {
		input := ""
		for i := range 25 {
			input += fmt.Sprintf("{\"n\":%d}\n", i)
		}
		blocks := ExtractBlocks(input)
		require.Len(t, blocks, 25)
		for _, block := range blocks {
			assert.True(t, json.Valid([]byte(block)))
		}
	})
}
