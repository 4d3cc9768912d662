package hclrt

import (
	"context"
	"testing"

	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/specialistvlad/nodebridge/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const viewHCL = `
id    = "welcome"
title = upper(var.name)

asset {
  id   = "greeting"
  type = "text"
  value = format("Hello, %s", var.name)
  onClick = var.submit
}

action "next" {
  label = "Continue"
}

action "back" {
  label = "Back"
}

step {
  order = 1
}

step {
  order = 2
}
`

func lookup(t *testing.T, n node.Node, path string) node.Node {
	t.Helper()
	child, ok := node.Lookup(n, nodeid.MustParse(path))
	require.True(t, ok, "path %s", path)
	return child
}

func TestEval(t *testing.T) {
	// --- Arrange ---
	rt := New(
		WithStringVariables(map[string]string{"name": "Ada"}),
		WithVariable("submit", node.FunctionVal(&node.Function{Name: "submit"})),
	)

	// --- Act ---
	g, err := rt.Eval(context.Background(), "view.hcl", []byte(viewHCL))

	// --- Assert ---
	require.NoError(t, err)
	root := g.Root()
	assert.Equal(t, "view.hcl", g.Source())

	s, _ := node.AsString(lookup(t, root, "title"))
	assert.Equal(t, "ADA", s)
	s, _ = node.AsString(lookup(t, root, "asset.value"))
	assert.Equal(t, "Hello, Ada", s)
	s, _ = node.AsString(lookup(t, root, "action.next.label"))
	assert.Equal(t, "Continue", s)

	fn, ok := node.AsFunction(lookup(t, root, "asset.onClick"))
	require.True(t, ok)
	assert.Equal(t, "submit", fn.Name)

	steps := lookup(t, root, "step")
	assert.Equal(t, node.KindList, steps.Kind())
	order, _ := node.AsInt64(lookup(t, root, "step[1].order"))
	assert.Equal(t, int64(2), order)
}

func TestEvalFile(t *testing.T) {
	ctx, logs := testutil.LoggerContext(t)
	path := testutil.WriteFile(t, t.TempDir(), "main.hcl", `asset { id = "a" }`)

	g, err := New().EvalFile(ctx, path)
	require.NoError(t, err)
	s, _ := node.AsString(lookup(t, g.Root(), "asset.id"))
	assert.Equal(t, "a", s)
	assert.Equal(t, path, g.Source())
	assert.Contains(t, logs.String(), "Evaluated HCL content.")
}

func TestEval_Errors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{name: "syntax", src: "asset {", want: "failed to parse"},
		{name: "unknown variable", src: `id = var.nope`, want: "failed to evaluate"},
		{name: "unknown function", src: `id = shout("x")`, want: "failed to evaluate"},
		{name: "duplicate labels", src: "a \"x\" {}\na \"x\" {}", want: "Duplicate block"},
		{name: "mixed labels", src: "a {}\na \"x\" {}", want: "Mixed block labels"},
		{name: "block clashes with attribute", src: "a = 1\na {}", want: "conflicts with attribute"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New().Eval(context.Background(), "bad.hcl", []byte(tc.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLabelTree(t *testing.T) {
	tree := labelTree{}
	require.NoError(t, tree.insert([]string{"text", "greeting"}, cty.StringVal("a")))
	require.NoError(t, tree.insert([]string{"text", "farewell"}, cty.StringVal("b")))
	assert.Error(t, tree.insert([]string{"text"}, cty.StringVal("c")))
	assert.Error(t, tree.insert([]string{"text", "greeting", "deeper"}, cty.StringVal("d")))

	val := tree.value()
	assert.True(t, val.GetAttr("text").GetAttr("farewell").RawEquals(cty.StringVal("b")))
}
