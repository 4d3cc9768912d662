package node

import (
	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// Lookup walks addr from n. It reports false as soon as any segment is
// absent. An empty address returns n itself.
func Lookup(n Node, addr *nodeid.Address) (Node, bool) {
	if n == nil {
		return nil, false
	}
	cur := n
	for _, seg := range pathOf(addr) {
		var ok bool
		if seg.IsIndex() {
			cur, ok = cur.Index(seg.Index)
		} else {
			cur, ok = cur.Get(seg.Key)
		}
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// With returns a new detached node equal to n except that the value at addr
// is replaced by val. Missing intermediate maps are created; lists shorter
// than a requested index are padded with nulls. n itself is never modified.
func With(n Node, addr *nodeid.Address, val cty.Value) Node {
	base := cty.NullVal(cty.DynamicPseudoType)
	if n != nil {
		base = n.Value()
	}
	return FromValue(replaceAt(base, pathOf(addr), val))
}

func pathOf(addr *nodeid.Address) []nodeid.Segment {
	if addr == nil {
		return nil
	}
	return addr.Path
}

func replaceAt(cur cty.Value, path []nodeid.Segment, val cty.Value) cty.Value {
	if len(path) == 0 {
		return val
	}
	seg, rest := path[0], path[1:]

	if seg.IsIndex() {
		var elems []cty.Value
		if kindOf(cur) == KindList {
			elems = cur.AsValueSlice()
		}
		for len(elems) <= seg.Index {
			elems = append(elems, cty.NullVal(cty.DynamicPseudoType))
		}
		elems[seg.Index] = replaceAt(elems[seg.Index], rest, val)
		return cty.TupleVal(elems)
	}

	attrs := map[string]cty.Value{}
	if kindOf(cur) == KindMap {
		for k, v := range cur.AsValueMap() {
			attrs[k] = v
		}
	}
	child, ok := attrs[seg.Key]
	if !ok {
		child = cty.NullVal(cty.DynamicPseudoType)
	}
	attrs[seg.Key] = replaceAt(child, rest, val)
	return cty.ObjectVal(attrs)
}
