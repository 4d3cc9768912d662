// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// partRegex parses one dot-separated part: an optional key followed by any
// number of indices, e.g. `name`, `name[1]`, `[0][2]`.
var partRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]*)((?:\[\d+\])*)$`)

var indexRegex = regexp.MustCompile(`\[(\d+)\]`)

// isValidKey checks for undesirable but technically valid names.
func isValidKey(name string) bool {
	return name != "-"
}

// Parse creates a new Address by parsing its canonical string representation.
func Parse(raw string) (*Address, error) {
	if raw == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	addr := &Address{}
	for i, part := range strings.Split(raw, ".") {
		if part == "" {
			return nil, fmt.Errorf("path %q contains empty segment", raw)
		}

		matches := partRegex.FindStringSubmatch(part)
		if matches == nil {
			return nil, fmt.Errorf("invalid path segment format: %q", part)
		}

		key := matches[1]
		if key == "" && i > 0 {
			return nil, fmt.Errorf("index-only segment %q must not follow a dot", part)
		}
		if key != "" {
			if !isValidKey(key) {
				return nil, fmt.Errorf("invalid segment name: %q", key)
			}
			addr.Path = append(addr.Path, KeySegment(key))
		}

		for _, idx := range indexRegex.FindAllStringSubmatch(matches[2], -1) {
			index, err := strconv.Atoi(idx[1])
			if err != nil {
				return nil, fmt.Errorf("index %q out of range: %w", idx[1], err)
			}
			addr.Path = append(addr.Path, IndexSegment(index))
		}
	}

	return addr, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// paths written as literals in code.
func MustParse(raw string) *Address {
	addr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
