package node

import (
	"reflect"

	"github.com/zclconf/go-cty/cty"
)

// Function is a reference to a callable that lives inside the runtime. The
// bridge never invokes it; it only carries the reference so it can be handed
// back to the runtime that produced it.
type Function struct {
	Name   string
	Handle any
}

// FunctionType is the capsule type used to carry function references inside
// cty values. Values of this type report KindFunction.
var FunctionType = cty.Capsule("function", reflect.TypeOf(Function{}))

// FunctionVal wraps a function reference into a cty value.
func FunctionVal(fn *Function) cty.Value {
	return cty.CapsuleVal(FunctionType, fn)
}

// OpaqueType is the capsule type for runtime objects the bridge cannot
// inspect, such as Lua userdata.
var OpaqueType = cty.Capsule("opaque", reflect.TypeOf(Opaque{}))

// Opaque holds a runtime object without exposing its structure.
type Opaque struct {
	Handle any
}

// OpaqueVal wraps an uninspectable runtime object into a cty value.
func OpaqueVal(o *Opaque) cty.Value {
	return cty.CapsuleVal(OpaqueType, o)
}
