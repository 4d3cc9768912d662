package node

import (
	"math/big"

	"github.com/zclconf/go-cty/cty/gocty"
)

// Primitive lists the Go types As can extract.
type Primitive interface {
	~string | ~bool | ~float64 | ~int64 | ~int
}

// AsString returns the string held by a string node.
func AsString(n Node) (string, bool) {
	if n == nil || n.Kind() != KindString {
		return "", false
	}
	return n.Value().AsString(), true
}

// AsBool returns the boolean held by a bool node.
func AsBool(n Node) (bool, bool) {
	if n == nil || n.Kind() != KindBool {
		return false, false
	}
	return n.Value().True(), true
}

// AsNumber returns the arbitrary precision number held by a number node.
func AsNumber(n Node) (*big.Float, bool) {
	if n == nil || n.Kind() != KindNumber {
		return nil, false
	}
	return n.Value().AsBigFloat(), true
}

// AsFloat64 returns a number node as float64, rounding if needed.
func AsFloat64(n Node) (float64, bool) {
	f, ok := AsNumber(n)
	if !ok {
		return 0, false
	}
	v, _ := f.Float64()
	return v, true
}

// AsInt64 returns a number node as int64. It reports false for fractional
// values or values outside the int64 range.
func AsInt64(n Node) (int64, bool) {
	if n == nil || n.Kind() != KindNumber {
		return 0, false
	}
	var out int64
	if err := gocty.FromCtyValue(n.Value(), &out); err != nil {
		return 0, false
	}
	return out, true
}

// AsFunction returns the function reference held by a function node.
func AsFunction(n Node) (*Function, bool) {
	if n == nil || n.Kind() != KindFunction {
		return nil, false
	}
	fn, ok := n.Value().EncapsulatedValue().(*Function)
	return fn, ok
}

// As extracts a primitive of type T. It succeeds only when the node's kind
// matches the shape T expects.
func As[T Primitive](n Node) (T, bool) {
	var out T
	var ok bool
	switch p := any(&out).(type) {
	case *string:
		*p, ok = AsString(n)
	case *bool:
		*p, ok = AsBool(n)
	case *float64:
		*p, ok = AsFloat64(n)
	case *int64:
		*p, ok = AsInt64(n)
	case *int:
		var i int64
		i, ok = AsInt64(n)
		*p = int(i)
	default:
		return asNamed[T](n)
	}
	return out, ok
}

// asNamed covers named types such as `type ID string`, whose zero value does
// not match the basic types in the switch above.
func asNamed[T Primitive](n Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	val := n.Value()
	if val.IsNull() || !val.IsKnown() {
		return zero, false
	}
	want, err := gocty.ImpliedType(zero)
	if err != nil || !val.Type().Equals(want) {
		return zero, false
	}
	var out T
	if err := gocty.FromCtyValue(val, &out); err != nil {
		return zero, false
	}
	return out, true
}
