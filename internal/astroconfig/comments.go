// Package astroconfig heuristically parses content-collection config source
// (TypeScript) without a real TypeScript parser: comments are stripped, the
// collections block is located with balanced-delimiter matching, and schema
// bodies are mined with regular expressions for the helper calls the editor
// cares about.
package astroconfig

import "strings"

// StripComments removes // line comments and /* */ block comments from source
// text. Single- and double-quoted string literals are opaque to comment
// detection, including backslash escapes. Line comments keep their trailing
// newline and newlines inside block comments survive as empty lines, so
// downstream offsets stay roughly line-aligned. Unterminated constructs
// consume to end of input; stripping never fails.
//
// Template literals and regex literals are not recognized, so a `//` inside
// either is treated as a comment. Acceptable for the config files this
// targets.
func StripComments(src string) string {
	var out strings.Builder
	out.Grow(len(src))

	rs := []rune(src)
	inString := false
	inBlockComment := false
	escaped := false
	var quote rune

	for i := 0; i < len(rs); i++ {
		ch := rs[i]

		if escaped {
			if !inBlockComment {
				out.WriteRune(ch)
			}
			escaped = false
			continue
		}

		if inString {
			switch ch {
			case '\\':
				escaped = true
				out.WriteRune(ch)
			case quote:
				inString = false
				out.WriteRune(ch)
			default:
				out.WriteRune(ch)
			}
			continue
		}

		if inBlockComment {
			if ch == '*' && i+1 < len(rs) && rs[i+1] == '/' {
				i++
				inBlockComment = false
			} else if ch == '\n' {
				out.WriteRune('\n')
			}
			continue
		}

		switch ch {
		case '"', '\'':
			inString = true
			quote = ch
			out.WriteRune(ch)
		case '/':
			switch {
			case i+1 < len(rs) && rs[i+1] == '/':
				for i++; i+1 < len(rs); {
					i++
					if rs[i] == '\n' {
						out.WriteRune('\n')
						break
					}
				}
			case i+1 < len(rs) && rs[i+1] == '*':
				i++
				inBlockComment = true
			default:
				out.WriteRune(ch)
			}
		default:
			out.WriteRune(ch)
		}
	}
	return out.String()
}
