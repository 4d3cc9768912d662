package encoding

import (
	_ "crypto/sha256"
	"fmt"

	"github.com/opencontainers/go-digest"
	"github.com/specialistvlad/nodebridge/internal/bridge"
	"github.com/specialistvlad/nodebridge/internal/node"
)

// Protocol marshals registered Go types through a Format.
type Protocol struct {
	registry *bridge.Registry
	format   Format
}

// NewProtocol creates a protocol over reg using f.
func NewProtocol(reg *bridge.Registry, f Format) *Protocol {
	return &Protocol{registry: reg, format: f}
}

// Format returns the protocol's wire format.
func (p *Protocol) Format() Format {
	return p.format
}

// Marshal encodes v with its registered codec and serializes the result.
func (p *Protocol) Marshal(v any) ([]byte, error) {
	n, err := p.registry.Encode(v)
	if err != nil {
		return nil, err
	}
	return p.MarshalNode(n)
}

// MarshalNode serializes a node directly.
func (p *Protocol) MarshalNode(n node.Node) ([]byte, error) {
	if n == nil {
		return nil, fmt.Errorf("%s: cannot marshal nil node", p.format.Name())
	}
	return p.format.Marshal(n.Value())
}

// UnmarshalNode parses data into a fresh node graph named source.
func (p *Protocol) UnmarshalNode(source string, data []byte) (node.Node, error) {
	val, err := p.format.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return node.NewGraph(source, val).Root(), nil
}

// Unmarshal parses data and decodes it with the codec registered for T.
func Unmarshal[T any](p *Protocol, data []byte) (T, error) {
	var zero T
	n, err := p.UnmarshalNode(p.format.Name(), data)
	if err != nil {
		return zero, err
	}
	return bridge.Decode[T](p.registry, n)
}

// Fingerprint returns the sha256 digest of the canonical JSON form of n.
// Nodes holding equal data have equal fingerprints regardless of key order
// or which runtime produced them.
func Fingerprint(n node.Node) (digest.Digest, error) {
	if n == nil {
		return "", fmt.Errorf("cannot fingerprint nil node")
	}
	data, err := JSON{Canonical: true}.Marshal(n.Value())
	if err != nil {
		return "", err
	}
	return digest.FromBytes(data), nil
}
