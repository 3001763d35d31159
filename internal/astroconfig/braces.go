package astroconfig

import (
	"errors"
	"fmt"
)

// ErrUnclosedDelimiter reports that a matching close delimiter was never
// found before end of input.
var ErrUnclosedDelimiter = errors.New("astroconfig: unclosed delimiter")

// matchDelimiter returns the offset one past the close delimiter that
// balances the open delimiter at start. text[start] must be the open
// delimiter. Depth counting only: delimiters inside string literals still
// count, which is fine for comment-stripped config source where braces in
// strings are rare.
func matchDelimiter(text string, start int, open, close byte) (int, error) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i + 1, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: no %q matching %q at offset %d", ErrUnclosedDelimiter, close, open, start)
}
