package hclrt

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// blockGroup collects every block of one type within a body.
type blockGroup struct {
	unlabeled []cty.Value
	labeled   labelTree
}

func (g *blockGroup) value() (cty.Value, error) {
	switch {
	case len(g.unlabeled) > 0 && len(g.labeled) > 0:
		return cty.NilVal, fmt.Errorf("must either all have labels or none")
	case len(g.unlabeled) == 1:
		return g.unlabeled[0], nil
	case len(g.unlabeled) > 1:
		return cty.TupleVal(g.unlabeled), nil
	default:
		return g.labeled.value(), nil
	}
}

// labelTree nests block bodies by their labels. Leaves are cty.Value,
// inner nodes are labelTree.
type labelTree map[string]any

func (t labelTree) insert(labels []string, val cty.Value) error {
	head, rest := labels[0], labels[1:]
	existing, ok := t[head]

	if len(rest) == 0 {
		if ok {
			return fmt.Errorf("%q is already defined", head)
		}
		t[head] = val
		return nil
	}

	if !ok {
		sub := labelTree{}
		t[head] = sub
		return sub.insert(rest, val)
	}
	sub, isTree := existing.(labelTree)
	if !isTree {
		return fmt.Errorf("%q is already defined with fewer labels", head)
	}
	if err := sub.insert(rest, val); err != nil {
		return fmt.Errorf("%s %w", head, err)
	}
	return nil
}

func (t labelTree) value() cty.Value {
	attrs := make(map[string]cty.Value, len(t))
	for k, v := range t {
		switch v := v.(type) {
		case labelTree:
			attrs[k] = v.value()
		case cty.Value:
			attrs[k] = v
		}
	}
	return cty.ObjectVal(attrs)
}
