package importer

// ExtractBlocks splits raw pasted text into self-contained top-level JSON
// object substrings. The scan keeps a brace depth counter plus string and
// escape flags, so braces inside string literals never affect depth and
// back-to-back objects separate cleanly without a delimiter. The string flag
// toggles at any depth, so a quoted brace in the prose between blocks does
// not start a phantom block. Text outside any top-level brace group is
// separator noise and is discarded. A block whose closing brace never
// arrives is not emitted. An input with no brace groups yields an empty
// slice, not an error.
func ExtractBlocks(text string) []string {
	var blocks []string

	depth := 0
	inString := false
	escaped := false
	start := -1

	for i := 0; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				// Stray closing brace in separator noise.
				continue
			}
			depth--
			if depth == 0 {
				blocks = append(blocks, text[start:i+1])
				start = -1
				inString = false
				escaped = false
			}
		}
	}

	return blocks
}
