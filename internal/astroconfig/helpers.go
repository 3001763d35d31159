package astroconfig

import (
	"regexp"
	"strings"
)

type helperKind int

const (
	helperImage helperKind = iota
	helperReference
)

// helperMatch is one image()/reference() call found in a schema body.
// position is the byte offset of the helper name within the body.
type helperMatch struct {
	kind       helperKind
	position   int
	collection string
}

var (
	imageHelperPattern     = regexp.MustCompile(`image\s*\(\s*\)`)
	referenceHelperPattern = regexp.MustCompile(`reference\s*\(\s*['"]([^'"]+)['"]\s*\)`)
)

func findHelperCalls(body string) []helperMatch {
	var matches []helperMatch
	for _, loc := range imageHelperPattern.FindAllStringIndex(body, -1) {
		matches = append(matches, helperMatch{kind: helperImage, position: loc[0]})
	}
	for _, m := range referenceHelperPattern.FindAllStringSubmatchIndex(body, -1) {
		matches = append(matches, helperMatch{
			kind:       helperReference,
			position:   m[0],
			collection: body[m[2]:m[3]],
		})
	}
	return matches
}

// fieldNameBackwards finds the field name a helper call belongs to: scan
// backwards from the helper to the nearest ':' and collect the identifier
// characters immediately before it.
func fieldNameBackwards(body string, pos int) (string, bool) {
	if pos >= len(body) {
		pos = len(body) - 1
	}
	i := pos
	for i >= 0 && body[i] != ':' {
		i--
	}
	if i < 0 {
		return "", false
	}
	end := i
	for end > 0 && isSpaceByte(body[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentByte(body[start-1]) {
		start--
	}
	if start == end {
		return "", false
	}
	return body[start:end], true
}

// insideArray reports whether the helper at pos sits inside a z.array( call,
// judged by the text between the nearest preceding ':' and the helper.
func insideArray(body string, pos int) bool {
	i := pos
	for i > 0 && body[i-1] != ':' {
		i--
	}
	return strings.Contains(body[i:pos], "z.array(")
}

// parentPathSegments walks backwards from pos collecting the names of
// enclosing object literals. Brace depth counts '}' up and '{' down; a
// negative depth marks a parent boundary, at which point the nearest field
// name before that '{' is recorded and the depth resets. Consecutive
// duplicate names collapse, matching how z.object({...}) nests read back.
func parentPathSegments(body string, pos int) []string {
	var segments []string
	depth := 0
	i := pos

	for i > 0 {
		i--
		switch body[i] {
		case '}':
			depth++
		case '{':
			depth--
			if depth < 0 {
				name, ok := fieldNameBackwards(body, i)
				if !ok {
					return segments
				}
				if len(segments) == 0 || segments[len(segments)-1] != name {
					segments = append(segments, name)
				}
				depth = 0
			}
		}
	}
	return segments
}

// resolveFieldPath produces the dotted path for a helper at pos: the
// immediate field name plus any enclosing object names, outermost first.
func resolveFieldPath(body string, pos int) (string, bool) {
	name, ok := fieldNameBackwards(body, pos)
	if !ok {
		return "", false
	}
	parents := parentPathSegments(body, pos)

	path := make([]string, 0, len(parents)+1)
	for i := len(parents) - 1; i >= 0; i-- {
		path = append(path, parents[i])
	}
	path = append(path, name)
	return joinPath(path), true
}

func joinPath(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
