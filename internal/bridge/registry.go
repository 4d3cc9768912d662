package bridge

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/specialistvlad/nodebridge/internal/codec"
	"github.com/specialistvlad/nodebridge/internal/node"
)

type entry struct {
	name   string
	typ    reflect.Type
	decode func(node.Node) (any, error)
	encode func(any) node.Node
}

// Registry maps Go types to the codecs that bridge them. It is constructed
// explicitly and passed to whatever needs it; there is no global instance.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]*entry
	byName map[string]*entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]*entry),
		byName: make(map[string]*entry),
	}
}

// Register adds the codec for T under name. Each type and each name may be
// registered once.
func Register[T any](r *Registry, name string, c codec.Codec[T]) error {
	typ := reflect.TypeFor[T]()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byType[typ]; exists {
		return fmt.Errorf("%s: %w", typ, ErrDuplicateType)
	}
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("name %q: %w", name, ErrDuplicateType)
	}

	e := &entry{
		name: name,
		typ:  typ,
		decode: func(n node.Node) (any, error) {
			return c.Decode(n)
		},
		encode: func(v any) node.Node {
			return c.Encode(v.(T))
		},
	}
	r.byType[typ] = e
	r.byName[name] = e
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister[T any](r *Registry, name string, c codec.Codec[T]) {
	if err := Register(r, name, c); err != nil {
		panic(err)
	}
}

// Encode encodes v with the codec registered for its dynamic type.
func (r *Registry) Encode(v any) (node.Node, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot encode nil: %w", ErrUnregistered)
	}
	e, err := r.lookupType(reflect.TypeOf(v))
	if err != nil {
		return nil, err
	}
	return e.encode(v), nil
}

// Decode decodes n with the codec registered for T.
func Decode[T any](r *Registry, n node.Node) (T, error) {
	var zero T
	e, err := r.lookupType(reflect.TypeFor[T]())
	if err != nil {
		return zero, err
	}
	v, err := e.decode(n)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// DecodeNamed decodes n with the codec registered under name.
func (r *Registry) DecodeNamed(name string, n node.Node) (any, error) {
	r.mu.RLock()
	e, ok := r.byName[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("name %q: %w", name, ErrUnregistered)
	}
	return e.decode(n)
}

// NameOf returns the name T was registered under.
func NameOf[T any](r *Registry) (string, bool) {
	e, err := r.lookupType(reflect.TypeFor[T]())
	if err != nil {
		return "", false
	}
	return e.name, true
}

// IsRegistered reports whether a codec exists for the dynamic type of v.
func (r *Registry) IsRegistered(v any) bool {
	_, err := r.lookupType(reflect.TypeOf(v))
	return err == nil
}

// Names returns all registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) lookupType(typ reflect.Type) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byType[typ]
	if !ok {
		return nil, fmt.Errorf("%v: %w", typ, ErrUnregistered)
	}
	return e, nil
}
