package bridge

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/nodebridge/internal/codec"
	"github.com/specialistvlad/nodebridge/internal/node"
	"github.com/specialistvlad/nodebridge/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// FieldState is the evaluation state of a Field.
type FieldState int

const (
	Unevaluated FieldState = iota
	Cached
	Failed
)

func (s FieldState) String() string {
	switch s {
	case Unevaluated:
		return "unevaluated"
	case Cached:
		return "cached"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Field is a lazily decoded, memoized property of an Object.
type Field[T any] struct {
	owner    *Base
	key      *nodeid.Address
	codec    codec.Codec[T]
	fallback func() (T, error)

	mu    sync.Mutex
	state FieldState
	value T
	err   error
}

// NewField declares a field of owner read from key, a path such as `asset`
// or `meta.values[0]`. It panics on a malformed key.
//
// fallback runs when the key is missing or its value fails to decode. It
// either returns a replacement value or an error, usually from Invalid. A
// nil fallback fails with a generic ValidationError. The fallback must not
// read the field it belongs to.
func NewField[T any](owner *Base, key string, c codec.Codec[T], fallback func() (T, error)) *Field[T] {
	return &Field[T]{
		owner:    owner,
		key:      nodeid.MustParse(key),
		codec:    c,
		fallback: fallback,
	}
}

// Get evaluates the field on first use and returns the committed outcome on
// every call. Concurrent first reads evaluate once; the losers wait and see
// the winner's result.
func (f *Field[T]) Get() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Unevaluated {
		f.value, f.err = f.evaluate()
		if f.err != nil {
			f.state = Failed
		} else {
			f.state = Cached
		}
	}
	return f.value, f.err
}

// MustGet is like Get but panics with the error.
func (f *Field[T]) MustGet() T {
	v, err := f.Get()
	if err != nil {
		panic(err)
	}
	return v
}

// State returns the current evaluation state without evaluating.
func (f *Field[T]) State() FieldState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Key returns the field's path within the owner's node.
func (f *Field[T]) Key() string {
	return f.key.String()
}

// Set replaces the field's value locally. The owner's backing node is left
// untouched; encoding the owner produces a new node carrying v.
func (f *Field[T]) Set(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.value, f.err, f.state = v, nil, Cached
	// Registered under f.mu so the override always matches the cached value.
	f.owner.setOverride(f.key, func() cty.Value {
		return f.codec.Encode(v).Value()
	})
}

// evaluate decodes the field or runs the fallback. A panicking decoder or
// fallback is committed as a failure like a returned error.
func (f *Field[T]) evaluate() (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, f.attribute(&ValidationError{Message: fmt.Sprintf("panic while reading value: %v", r)})
		}
	}()
	return f.resolve()
}

func (f *Field[T]) resolve() (T, error) {
	if child, ok := node.Lookup(f.owner.Node(), f.key); ok {
		if v, err := f.codec.Decode(child); err == nil {
			return v, nil
		}
	}

	if f.fallback == nil {
		var zero T
		return zero, f.attribute(Invalid("missing or invalid value"))
	}
	v, err := f.fallback()
	if err != nil {
		return v, f.attribute(err)
	}
	return v, nil
}

// attribute ties err to this field's owner and key. Errors that are not a
// ValidationError are wrapped in one.
func (f *Field[T]) attribute(err error) error {
	out, ok := err.(*ValidationError)
	if ok {
		cp := *out
		out = &cp
	} else {
		out = &ValidationError{Err: err}
	}
	if out.Type == "" {
		out.Type = f.owner.TypeName()
	}
	if out.Field == "" {
		out.Field = f.Key()
	}
	return out
}
