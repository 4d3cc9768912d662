package bridge

import (
	"sync"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Object is a Go value backed by exactly one node.
type Object interface {
	Node() node.Node
}

// encoder is implemented by Base. Types embedding Base get it promoted,
// which lets ObjectCodec see local overrides.
type encoder interface {
	encoded() node.Node
}

type override struct {
	path  *nodeid.Address
	value func() cty.Value
}

// Base holds the backing node of an Object. Embed it by value and call Bind
// before declaring fields. A Base must not be copied after Bind.
type Base struct {
	typeName string
	node     node.Node

	mu        sync.Mutex
	overrides []override
}

// Bind attaches the backing node. typeName is used in validation errors.
func (b *Base) Bind(typeName string, n node.Node) {
	b.typeName = typeName
	b.node = n
}

// Node returns the backing node exactly as it was bound.
func (b *Base) Node() node.Node {
	return b.node
}

// TypeName returns the name given to Bind.
func (b *Base) TypeName() string {
	return b.typeName
}

// Modified reports whether any field was changed with Set.
func (b *Base) Modified() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.overrides) > 0
}

func (b *Base) setOverride(path *nodeid.Address, value func() cty.Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.overrides {
		if b.overrides[i].path.Equal(path) {
			b.overrides[i].value = value
			return
		}
	}
	b.overrides = append(b.overrides, override{path: path, value: value})
}

func (b *Base) encoded() node.Node {
	b.mu.Lock()
	overrides := append([]override(nil), b.overrides...)
	b.mu.Unlock()

	if len(overrides) == 0 {
		return b.node
	}
	out := b.node
	for _, o := range overrides {
		out = node.With(out, o.path, o.value())
	}
	return out
}
