// internal/nodeid/types.go
package nodeid

// Segment is a single step of a path: either a map key or a list index.
type Segment struct {
	Key   string
	Index int // -1 for key segments.
}

// KeySegment creates a segment that selects a map key.
func KeySegment(key string) Segment {
	return Segment{Key: key, Index: -1}
}

// IndexSegment creates a segment that selects a list element.
func IndexSegment(index int) Segment {
	return Segment{Index: index}
}

// IsIndex reports whether the segment selects a list element.
func (s Segment) IsIndex() bool {
	return s.Index >= 0
}

// Address is an ordered path from a graph root. The zero value and nil both
// address the root itself.
type Address struct {
	Path []Segment
}

// Root returns the address of a graph root.
func Root() *Address {
	return &Address{}
}

// IsRoot reports whether the address has no segments.
func (a *Address) IsRoot() bool {
	return a == nil || len(a.Path) == 0
}

// Len returns the number of segments.
func (a *Address) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Path)
}

// Child returns a new address extended by a key segment.
func (a *Address) Child(key string) *Address {
	return a.extend(KeySegment(key))
}

// Indexed returns a new address extended by an index segment.
func (a *Address) Indexed(index int) *Address {
	return a.extend(IndexSegment(index))
}

// Join returns a new address with all segments of other appended.
func (a *Address) Join(other *Address) *Address {
	out := &Address{Path: make([]Segment, 0, a.Len()+other.Len())}
	if a != nil {
		out.Path = append(out.Path, a.Path...)
	}
	if other != nil {
		out.Path = append(out.Path, other.Path...)
	}
	return out
}

func (a *Address) extend(seg Segment) *Address {
	out := &Address{Path: make([]Segment, 0, a.Len()+1)}
	if a != nil {
		out.Path = append(out.Path, a.Path...)
	}
	out.Path = append(out.Path, seg)
	return out
}
