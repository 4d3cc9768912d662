package codec

import (
	"math"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/zclconf/go-cty/cty"
)

type stringCodec struct{}

// String decodes string nodes.
func String() Codec[string] { return stringCodec{} }

func (stringCodec) Decode(n node.Node) (string, error) {
	s, ok := node.AsString(n)
	if !ok {
		return "", mismatch("string", n, nil)
	}
	return s, nil
}

func (stringCodec) Encode(v string) node.Node {
	return node.FromValue(cty.StringVal(v))
}

type boolCodec struct{}

// Bool decodes bool nodes.
func Bool() Codec[bool] { return boolCodec{} }

func (boolCodec) Decode(n node.Node) (bool, error) {
	b, ok := node.AsBool(n)
	if !ok {
		return false, mismatch("bool", n, nil)
	}
	return b, nil
}

func (boolCodec) Encode(v bool) node.Node {
	return node.FromValue(cty.BoolVal(v))
}

type numberCodec struct{}

// Number decodes number nodes into float64.
func Number() Codec[float64] { return numberCodec{} }

func (numberCodec) Decode(n node.Node) (float64, error) {
	f, ok := node.AsFloat64(n)
	if !ok {
		return 0, mismatch("number", n, nil)
	}
	return f, nil
}

// Encode maps NaN, which cty numbers cannot hold, to a null number; decoding
// it again is a mismatch. Infinities are kept.
func (numberCodec) Encode(v float64) node.Node {
	if math.IsNaN(v) {
		return node.FromValue(cty.NullVal(cty.Number))
	}
	return node.FromValue(cty.NumberFloatVal(v))
}

type intCodec struct{}

// Int decodes whole number nodes into int64. Fractions are a mismatch.
func Int() Codec[int64] { return intCodec{} }

func (intCodec) Decode(n node.Node) (int64, error) {
	i, ok := node.AsInt64(n)
	if !ok {
		return 0, mismatch("whole number", n, nil)
	}
	return i, nil
}

func (intCodec) Encode(v int64) node.Node {
	return node.FromValue(cty.NumberIntVal(v))
}

type rawCodec struct{}

// Raw passes nodes through unchanged, preserving identity both ways.
func Raw() Codec[node.Node] { return rawCodec{} }

func (rawCodec) Decode(n node.Node) (node.Node, error) {
	if n == nil {
		return nil, mismatch("node", n, nil)
	}
	return n, nil
}

func (rawCodec) Encode(v node.Node) node.Node {
	if v == nil {
		return node.FromValue(cty.NullVal(cty.DynamicPseudoType))
	}
	return v
}
