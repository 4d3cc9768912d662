package node

import (
	"sort"
	"sync"

	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Node is a read-only handle to one value in a runtime value graph.
type Node interface {
	// Get looks up a map key. It reports false when the key is missing or
	// the node is not a map.
	Get(key string) (Node, bool)
	// Index looks up a list element. It reports false when the index is out
	// of range or the node is not a list.
	Index(i int) (Node, bool)
	Kind() Kind
	// Keys returns the sorted keys of a map node and nil otherwise.
	Keys() []string
	// Len returns the number of children of a list or map node.
	Len() int
	// Path is the node's address inside its graph.
	Path() *nodeid.Address
	// Value returns the underlying runtime value snapshot.
	Value() cty.Value
}

// Graph is one snapshot of a runtime value.
type Graph struct {
	source string
	root   *Value
}

// NewGraph creates a graph over val. source names where the value came from
// and is only used for diagnostics.
func NewGraph(source string, val cty.Value) *Graph {
	g := &Graph{source: source}
	g.root = &Value{graph: g, path: nodeid.Root(), val: val}
	return g
}

// FromValue wraps a detached value into its own anonymous graph.
func FromValue(val cty.Value) Node {
	return NewGraph("", val).Root()
}

// Root returns the root node of the graph.
func (g *Graph) Root() Node {
	return g.root
}

// Source returns the diagnostic name of the graph.
func (g *Graph) Source() string {
	return g.source
}

// Value is the cty-backed Node implementation.
type Value struct {
	graph *Graph
	path  *nodeid.Address
	val   cty.Value

	keys     sync.Map // string -> *Value
	elements sync.Map // int -> *Value
	keysOnce sync.Once
	sorted   []string
}

var _ Node = (*Value)(nil)

func (v *Value) Kind() Kind {
	return kindOf(v.val)
}

func (v *Value) Value() cty.Value {
	return v.val
}

func (v *Value) Path() *nodeid.Address {
	return v.path
}

// Graph returns the snapshot the node belongs to.
func (v *Value) Graph() *Graph {
	return v.graph
}

func (v *Value) Get(key string) (Node, bool) {
	if cached, ok := v.keys.Load(key); ok {
		return cached.(*Value), true
	}
	if v.Kind() != KindMap {
		return nil, false
	}

	var child cty.Value
	ty := v.val.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(key) {
			return nil, false
		}
		child = v.val.GetAttr(key)
	default:
		k := cty.StringVal(key)
		if !v.val.HasIndex(k).True() {
			return nil, false
		}
		child = v.val.Index(k)
	}

	actual, _ := v.keys.LoadOrStore(key, v.child(v.path.Child(key), child))
	return actual.(*Value), true
}

func (v *Value) Index(i int) (Node, bool) {
	if cached, ok := v.elements.Load(i); ok {
		return cached.(*Value), true
	}
	if i < 0 || v.Kind() != KindList || i >= v.val.LengthInt() {
		return nil, false
	}

	var child cty.Value
	if v.val.Type().IsSetType() {
		// Sets have no index; iteration order is the stable order cty
		// defines for set elements.
		child = v.val.AsValueSlice()[i]
	} else {
		child = v.val.Index(cty.NumberIntVal(int64(i)))
	}

	actual, _ := v.elements.LoadOrStore(i, v.child(v.path.Indexed(i), child))
	return actual.(*Value), true
}

func (v *Value) Keys() []string {
	if v.Kind() != KindMap {
		return nil
	}
	v.keysOnce.Do(func() {
		m := v.val.AsValueMap()
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v.sorted = keys
	})
	return v.sorted
}

func (v *Value) Len() int {
	switch v.Kind() {
	case KindList, KindMap:
		return v.val.LengthInt()
	default:
		return 0
	}
}

func (v *Value) child(path *nodeid.Address, val cty.Value) *Value {
	return &Value{graph: v.graph, path: path, val: val}
}

// Same reports whether a and b are the same node of the same graph.
func Same(a, b Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	av, aok := a.(*Value)
	bv, bok := b.(*Value)
	if aok && bok {
		return av == bv
	}
	return a == b
}
