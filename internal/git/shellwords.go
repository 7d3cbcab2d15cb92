package git

import "unicode"

// splitShellWords splits an editor setting such as `code --wait` into words, honoring
// single and double quotes and backslash escapes.
func splitShellWords(s string) []string {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	started := false

	flush := func() {
		if !started {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		started = false
	}

	for _, r := range s {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}
		if r == '\\' && !inSingle {
			escaped = true
			started = true
			continue
		}
		if r == '\'' && !inDouble {
			inSingle = !inSingle
			started = true
			continue
		}
		if r == '"' && !inSingle {
			inDouble = !inDouble
			started = true
			continue
		}
		if !inSingle && !inDouble && unicode.IsSpace(r) {
			flush()
			continue
		}
		cur = append(cur, r)
		started = true
	}

	flush()
	return out
}
