package codec

import (
	"fmt"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/zclconf/go-cty/cty"
)

type listCodec[T any] struct {
	elem Codec[T]
}

// List decodes list nodes element by element.
func List[T any](elem Codec[T]) Codec[[]T] {
	return &listCodec[T]{elem: elem}
}

func (c *listCodec[T]) Decode(n node.Node) ([]T, error) {
	if n == nil || n.Kind() != node.KindList {
		return nil, mismatch("list", n, nil)
	}
	out := make([]T, n.Len())
	for i := range out {
		child, _ := n.Index(i)
		v, err := c.elem.Decode(child)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Encode produces a tuple so elements of differing runtime types survive.
func (c *listCodec[T]) Encode(v []T) node.Node {
	if len(v) == 0 {
		return node.FromValue(cty.EmptyTupleVal)
	}
	elems := make([]cty.Value, len(v))
	for i, e := range v {
		elems[i] = c.elem.Encode(e).Value()
	}
	return node.FromValue(cty.TupleVal(elems))
}

type mapCodec[T any] struct {
	elem Codec[T]
}

// Map decodes map nodes value by value.
func Map[T any](elem Codec[T]) Codec[map[string]T] {
	return &mapCodec[T]{elem: elem}
}

func (c *mapCodec[T]) Decode(n node.Node) (map[string]T, error) {
	if n == nil || n.Kind() != node.KindMap {
		return nil, mismatch("map", n, nil)
	}
	out := make(map[string]T, n.Len())
	for _, k := range n.Keys() {
		child, _ := n.Get(k)
		v, err := c.elem.Decode(child)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		out[k] = v
	}
	return out, nil
}

func (c *mapCodec[T]) Encode(v map[string]T) node.Node {
	if len(v) == 0 {
		return node.FromValue(cty.EmptyObjectVal)
	}
	attrs := make(map[string]cty.Value, len(v))
	for k, e := range v {
		attrs[k] = c.elem.Encode(e).Value()
	}
	return node.FromValue(cty.ObjectVal(attrs))
}

type nullableCodec[T any] struct {
	elem Codec[T]
}

// Nullable decodes null nodes to nil and anything else through elem.
func Nullable[T any](elem Codec[T]) Codec[*T] {
	return &nullableCodec[T]{elem: elem}
}

func (c *nullableCodec[T]) Decode(n node.Node) (*T, error) {
	if n == nil || n.Kind() == node.KindNull {
		return nil, nil
	}
	v, err := c.elem.Decode(n)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *nullableCodec[T]) Encode(v *T) node.Node {
	if v == nil {
		return node.FromValue(cty.NullVal(cty.DynamicPseudoType))
	}
	return c.elem.Encode(*v)
}
