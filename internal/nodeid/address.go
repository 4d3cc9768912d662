// internal/nodeid/address.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var plainKeyRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// String serializes the Address into its canonical path string representation.
// Keys that the parser would not accept are rendered quoted in brackets, so
// the output stays unambiguous even though it cannot be parsed back.
func (a *Address) String() string {
	if a == nil {
		return ""
	}

	var sb strings.Builder
	for i, segment := range a.Path {
		switch {
		case segment.IsIndex():
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		case plainKeyRegex.MatchString(segment.Key) && isValidKey(segment.Key):
			if i > 0 {
				sb.WriteRune('.')
			}
			sb.WriteString(segment.Key)
		default:
			sb.WriteString("[" + strconv.Quote(segment.Key) + "]")
		}
	}

	return sb.String()
}

// Equal checks for deep equality between two Address pointers. A nil
// address equals only nil.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	if len(a.Path) != len(other.Path) {
		return false
	}
	for i := range a.Path {
		if a.Path[i] != other.Path[i] {
			return false
		}
	}
	return true
}
