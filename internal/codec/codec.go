package codec

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/nodebridge/internal/node"
)

// ErrShapeMismatch is matched by every *DecodeError.
var ErrShapeMismatch = errors.New("shape mismatch")

// Codec converts between a node and a Go value of type T.
type Codec[T any] interface {
	Decode(n node.Node) (T, error)
	// Encode must be total for every valid T.
	Encode(v T) node.Node
}

// DecodeError reports that a node could not be decoded into the wanted shape.
type DecodeError struct {
	Want string
	Got  node.Kind
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("cannot decode %s into %s", e.Got, e.Want)
	if e.Path != "" {
		msg = fmt.Sprintf("at %q: %s", e.Path, msg)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// mismatch builds a DecodeError for n.
func mismatch(want string, n node.Node, err error) *DecodeError {
	de := &DecodeError{Want: want, Err: err}
	if n == nil {
		de.Got = node.KindNull
		return de
	}
	de.Got = n.Kind()
	de.Path = n.Path().String()
	return de
}

// funcCodec adapts a pair of functions to Codec.
type funcCodec[T any] struct {
	decode func(node.Node) (T, error)
	encode func(T) node.Node
}

// Func builds a Codec from a decode and an encode function.
func Func[T any](decode func(node.Node) (T, error), encode func(T) node.Node) Codec[T] {
	return &funcCodec[T]{decode: decode, encode: encode}
}

func (c *funcCodec[T]) Decode(n node.Node) (T, error) { return c.decode(n) }
func (c *funcCodec[T]) Encode(v T) node.Node { return c.encode(v) }

// Mismatch returns a DecodeError stating that n is not a want. It is meant
// for codecs implemented outside this package.
func Mismatch(want string, n node.Node) error {
	return mismatch(want, n, nil)
}
