package bridge

import (
	"github.com/specialistvlad/nodebridge/internal/codec"
	"github.com/specialistvlad/nodebridge/internal/node"
)

// ObjectCodec decodes and encodes an Object type W.
type ObjectCodec[W Object] struct {
	construct func(node.Node) W
}

var _ codec.Codec[Object] = (*ObjectCodec[Object])(nil)

// NewObjectCodec creates a codec from W's constructor.
func NewObjectCodec[W Object](construct func(node.Node) W) *ObjectCodec[W] {
	return &ObjectCodec[W]{construct: construct}
}

// Decode wraps n. The only check is that n is a map; construction itself
// never fails and field validation is deferred until fields are read.
func (c *ObjectCodec[W]) Decode(n node.Node) (W, error) {
	if n == nil || n.Kind() != node.KindMap {
		var zero W
		return zero, codec.Mismatch("object", n)
	}
	return c.construct(n), nil
}

// Encode returns the backing node of v. If fields of v were changed with
// Field.Set, a new node is returned with those keys replaced and every
// other key of the backing node kept. Only v's own fields count: editing an
// object read from one of v's fields does not change v's encoding.
func (c *ObjectCodec[W]) Encode(v W) node.Node {
	if e, ok := any(v).(encoder); ok {
		return e.encoded()
	}
	return v.Node()
}
