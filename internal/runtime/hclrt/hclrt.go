// Package hclrt evaluates HCL content definitions into node graphs.
//
// Top-level attributes become keys of the root map. Blocks become nested
// maps: an unlabeled block is stored under its type (several unlabeled
// blocks of one type become a list), and labels add one level of nesting
// each, so `asset "text" "greeting" { ... }` is reachable at
// `asset.text.greeting`.
package hclrt

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Runtime evaluates HCL sources. It is safe for concurrent use once built.
type Runtime struct {
	vars  map[string]cty.Value
	funcs map[string]function.Function
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithVariable exposes val to expressions as `var.<name>`. Use
// node.FunctionVal to hand a host callback to content as a function
// reference.
func WithVariable(name string, val cty.Value) Option {
	return func(r *Runtime) {
		r.vars[name] = val
	}
}

// WithStringVariables exposes each entry as a string `var.<name>`.
func WithStringVariables(vars map[string]string) Option {
	return func(r *Runtime) {
		for k, v := range vars {
			r.vars[k] = cty.StringVal(v)
		}
	}
}

// WithFunction makes fn callable from expressions as name(...).
func WithFunction(name string, fn function.Function) Option {
	return func(r *Runtime) {
		r.funcs[name] = fn
	}
}

// New creates a runtime with the cty standard functions available.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		vars: make(map[string]cty.Value),
		funcs: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"title":     stdlib.TitleFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"format":    stdlib.FormatFunc,
			"join":      stdlib.JoinFunc,
			"concat":    stdlib.ConcatFunc,
			"length":    stdlib.LengthFunc,
			"coalesce":  stdlib.CoalesceFunc,
			"merge":     stdlib.MergeFunc,
			"keys":      stdlib.KeysFunc,
			"values":    stdlib.ValuesFunc,
			"min":       stdlib.MinFunc,
			"max":       stdlib.MaxFunc,
		},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// EvalFile parses and evaluates the HCL file at path.
func (r *Runtime) EvalFile(ctx context.Context, path string) (*node.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return r.eval(ctx, path, file)
}

// Eval parses and evaluates src. filename is used in diagnostics.
func (r *Runtime) Eval(ctx context.Context, filename string, src []byte) (*node.Graph, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	return r.eval(ctx, filename, file)
}

func (r *Runtime) eval(ctx context.Context, source string, file *hcl.File) (*node.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("runtime", "hcl", "source", source)

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("HCL source %s is not native syntax", source)
	}

	val, diags := evalBody(body, r.evalContext())
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate HCL source %s: %w", source, diags)
	}

	logger.Debug("Evaluated HCL content.", "attributes", len(body.Attributes), "blocks", len(body.Blocks))
	return node.NewGraph(source, val), nil
}

func (r *Runtime) evalContext() *hcl.EvalContext {
	ectx := &hcl.EvalContext{Functions: r.funcs}
	if len(r.vars) > 0 {
		ectx.Variables = map[string]cty.Value{"var": cty.ObjectVal(r.vars)}
	}
	return ectx
}

// evalBody turns a body into an object value.
func evalBody(body *hclsyntax.Body, ectx *hcl.EvalContext) (cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	attrs := make(map[string]cty.Value, len(body.Attributes))

	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val, valDiags := body.Attributes[name].Expr.Value(ectx)
		diags = append(diags, valDiags...)
		attrs[name] = val
	}

	groups := make(map[string]*blockGroup)
	var order []string
	for _, block := range body.Blocks {
		if _, clash := attrs[block.Type]; clash {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Block name conflicts with attribute",
				Detail:   fmt.Sprintf("A block of type %q cannot appear alongside an attribute of the same name.", block.Type),
				Subject:  block.TypeRange.Ptr(),
			})
			continue
		}

		inner, innerDiags := evalBody(block.Body, ectx)
		diags = append(diags, innerDiags...)

		g, ok := groups[block.Type]
		if !ok {
			g = &blockGroup{labeled: labelTree{}}
			groups[block.Type] = g
			order = append(order, block.Type)
		}
		if len(block.Labels) == 0 {
			g.unlabeled = append(g.unlabeled, inner)
			continue
		}
		if err := g.labeled.insert(block.Labels, inner); err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate block",
				Detail:   fmt.Sprintf("Block %s: %s.", block.Type, err),
				Subject:  block.TypeRange.Ptr(),
			})
		}
	}

	for _, typ := range order {
		val, err := groups[typ].value()
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Mixed block labels",
				Detail:   fmt.Sprintf("Blocks of type %q %s.", typ, err),
			})
			continue
		}
		attrs[typ] = val
	}

	return cty.ObjectVal(attrs), diags
}
