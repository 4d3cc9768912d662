// Package luart runs Lua content chunks and snapshots the table they return
// into a node graph.
//
// Tables whose keys are exactly 1..n become lists; every other table becomes
// a map with its keys rendered as strings. Functions become function
// references named after their path, and userdata becomes opaque.
package luart

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/nodebridge/internal/ctxlog"
	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// DefaultMaxDepth bounds table nesting; self-referencing tables hit it.
const DefaultMaxDepth = 64

// Runtime runs Lua chunks, each in a fresh state.
type Runtime struct {
	maxDepth int
}

// New creates a Lua runtime.
func New() *Runtime {
	return &Runtime{maxDepth: DefaultMaxDepth}
}

// EvalFile runs the chunk at path.
func (r *Runtime) EvalFile(ctx context.Context, path string) (*node.Graph, error) {
	state := newState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua %s: %w", path, err)
	}
	return r.run(ctx, state, path)
}

// Eval runs src. name is used as the chunk name in diagnostics.
func (r *Runtime) Eval(ctx context.Context, name, src string) (*node.Graph, error) {
	state := newState()
	if err := lua.LoadBuffer(state, src, name, ""); err != nil {
		return nil, fmt.Errorf("load lua %s: %w", name, err)
	}
	return r.run(ctx, state, name)
}

func newState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	return state
}

func (r *Runtime) run(ctx context.Context, state *lua.State, source string) (*node.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("runtime", "lua", "source", source)

	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua %s: %w", source, err)
	}
	if state.TypeOf(-1) != lua.TypeTable {
		state.Pop(1)
		return nil, fmt.Errorf("lua chunk %s must return a table", source)
	}

	s := &snapshotter{state: state, maxDepth: r.maxDepth}
	val, err := s.convert(-1, nodeid.Root(), 0)
	state.Pop(1)
	if err != nil {
		return nil, fmt.Errorf("snapshot lua %s: %w", source, err)
	}

	logger.Debug("Snapshotted Lua content.", "functions", s.functions)
	return node.NewGraph(source, val), nil
}

type snapshotter struct {
	state     *lua.State
	maxDepth  int
	functions int
}

func (s *snapshotter) convert(index int, path *nodeid.Address, depth int) (cty.Value, error) {
	state := s.state
	switch state.TypeOf(index) {
	case lua.TypeNil, lua.TypeNone:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case lua.TypeBoolean:
		return cty.BoolVal(state.ToBoolean(index)), nil
	case lua.TypeNumber:
		f, _ := state.ToNumber(index)
		if math.IsNaN(f) {
			return cty.NilVal, fmt.Errorf("at %q: NaN cannot be represented", path)
		}
		return cty.NumberFloatVal(f), nil
	case lua.TypeString:
		str, _ := state.ToString(index)
		return cty.StringVal(str), nil
	case lua.TypeTable:
		if depth >= s.maxDepth {
			return cty.NilVal, fmt.Errorf("at %q: tables nested deeper than %d, possibly cyclic", path, s.maxDepth)
		}
		return s.table(index, path, depth+1)
	case lua.TypeFunction:
		s.functions++
		return node.FunctionVal(&node.Function{Name: path.String()}), nil
	case lua.TypeUserData, lua.TypeLightUserData:
		return node.OpaqueVal(&node.Opaque{Handle: state.ToUserData(index)}), nil
	default:
		return node.OpaqueVal(&node.Opaque{}), nil
	}
}

func (s *snapshotter) table(index int, path *nodeid.Address, depth int) (cty.Value, error) {
	state := s.state
	index = state.AbsIndex(index)

	if n, ok := s.sequenceLength(index); ok {
		elems := make([]cty.Value, 0, n)
		for i := 1; i <= n; i++ {
			state.RawGetInt(index, i)
			val, err := s.convert(-1, path.Indexed(i-1), depth)
			state.Pop(1)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, val)
		}
		return cty.TupleVal(elems), nil
	}

	attrs := map[string]cty.Value{}
	state.PushNil()
	for state.Next(index) {
		key, ok := s.key(-2)
		if !ok {
			state.Pop(1)
			continue
		}
		val, err := s.convert(-1, path.Child(key), depth)
		if err != nil {
			state.Pop(2)
			return cty.NilVal, err
		}
		attrs[key] = val
		state.Pop(1)
	}
	return cty.ObjectVal(attrs), nil
}

// sequenceLength reports n when the table's keys are exactly 1..n.
func (s *snapshotter) sequenceLength(index int) (int, bool) {
	state := s.state
	isArray := true
	maxIndex, count := 0, 0

	state.PushNil()
	for state.Next(index) {
		if isArray {
			if state.TypeOf(-2) != lua.TypeNumber {
				isArray = false
			} else if idx, ok := state.ToInteger(-2); ok && idx > 0 {
				f, _ := state.ToNumber(-2)
				if f != math.Trunc(f) {
					isArray = false
				}
				count++
				if idx > maxIndex {
					maxIndex = idx
				}
			} else {
				isArray = false
			}
		}
		state.Pop(1)
	}

	if isArray && count > 0 && maxIndex == count {
		return maxIndex, true
	}
	return 0, false
}

// key renders the table key at index without converting it in place, which
// would confuse Next.
func (s *snapshotter) key(index int) (string, bool) {
	state := s.state
	switch state.TypeOf(index) {
	case lua.TypeString:
		str, _ := state.ToString(index)
		return str, true
	case lua.TypeNumber:
		f, _ := state.ToNumber(index)
		return strconv.FormatFloat(f, 'f', -1, 64), true
	case lua.TypeBoolean:
		return strconv.FormatBool(state.ToBoolean(index)), true
	default:
		return "", false
	}
}
