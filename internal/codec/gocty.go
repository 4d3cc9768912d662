package codec

import (
	"fmt"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

type goCodec[T any] struct {
	ty cty.Type
}

// Go decodes into arbitrary Go values using `cty:"name"` struct tags. The
// node is first converted to the type implied by T, so a tuple of strings
// decodes into []string and an object decodes into a map.
//
// It panics if no cty type can be implied for T.
func Go[T any]() Codec[T] {
	var zero T
	ty, err := gocty.ImpliedType(zero)
	if err != nil {
		panic(fmt.Sprintf("codec: unable to infer cty.Type for %T: %s", zero, err))
	}
	return &goCodec[T]{ty: ty}
}

func (c *goCodec[T]) Decode(n node.Node) (T, error) {
	var out T
	if n == nil || n.Kind() == node.KindNull || n.Kind() == node.KindOpaque {
		return out, mismatch(c.ty.FriendlyName(), n, nil)
	}
	converted, err := convert.Convert(n.Value(), c.ty)
	if err != nil {
		return out, mismatch(c.ty.FriendlyName(), n, err)
	}
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return out, mismatch(c.ty.FriendlyName(), n, err)
	}
	return out, nil
}

// Encode falls back to a typed null for values gocty cannot represent, such
// as nil pointers inside non-nullable fields or NaN floats.
func (c *goCodec[T]) Encode(v T) (n node.Node) {
	defer func() {
		// cty.NumberFloatVal panics on NaN.
		if recover() != nil {
			n = node.FromValue(cty.NullVal(c.ty))
		}
	}()
	val, err := gocty.ToCtyValue(v, c.ty)
	if err != nil {
		return node.FromValue(cty.NullVal(c.ty))
	}
	return node.FromValue(val)
}
