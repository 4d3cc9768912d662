package node

import "github.com/zclconf/go-cty/cty"

// Kind is the primitive shape tag of a node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindMap
	KindFunction
	KindOpaque
)

var kindNames = [...]string{
	KindNull:     "null",
	KindBool:     "bool",
	KindNumber:   "number",
	KindString:   "string",
	KindList:     "list",
	KindMap:      "map",
	KindFunction: "function",
	KindOpaque:   "opaque",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// kindOf classifies a cty value. Unknown values cannot be inspected and are
// reported as opaque.
func kindOf(val cty.Value) Kind {
	if val.IsNull() {
		return KindNull
	}
	if !val.IsKnown() {
		return KindOpaque
	}

	ty := val.Type()
	switch {
	case ty == cty.Bool:
		return KindBool
	case ty == cty.Number:
		return KindNumber
	case ty == cty.String:
		return KindString
	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		return KindList
	case ty.IsMapType(), ty.IsObjectType():
		return KindMap
	case ty.Equals(FunctionType):
		return KindFunction
	default:
		return KindOpaque
	}
}
