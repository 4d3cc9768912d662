// Package asset provides typed views over content assets evaluated by a
// runtime: an Asset carries an id and a type, and a Wrapper is the
// container that holds one Asset plus any wrapper-level metadata.
package asset

import (
	"github.com/specialistvlad/nodebridge/internal/bridge"
	"github.com/specialistvlad/nodebridge/internal/codec"
	"github.com/specialistvlad/nodebridge/internal/node"
)

// Asset is a single renderable unit of content.
type Asset struct {
	bridge.Base
	id  *bridge.Field[string]
	typ *bridge.Field[string]
}

// AssetCodec bridges Asset to the encoding layer.
var AssetCodec = bridge.NewObjectCodec(NewAsset)

// NewAsset wraps n as an Asset. Validation happens when fields are read.
func NewAsset(n node.Node) *Asset {
	a := &Asset{}
	a.Bind("Asset", n)
	a.id = bridge.NewField(&a.Base, "id", codec.String(), func() (string, error) {
		return "", bridge.Invalid("Asset is missing an id")
	})
	a.typ = bridge.NewField(&a.Base, "type", codec.String(), func() (string, error) {
		return "", bridge.Invalid("Asset is missing a type")
	})
	return a
}

// ID returns the asset's id.
func (a *Asset) ID() (string, error) {
	return a.id.Get()
}

// Type returns the asset's type, e.g. "text" or "action".
func (a *Asset) Type() (string, error) {
	return a.typ.Get()
}

// SetID replaces the id locally; the backing node is not modified.
func (a *Asset) SetID(id string) {
	a.id.Set(id)
}

// Property returns any other key of the asset without interpreting it.
func (a *Asset) Property(key string) (node.Node, bool) {
	if a.Node() == nil {
		return nil, false
	}
	return a.Node().Get(key)
}

// Wrapper is a container for an Asset. Its node is exposed because there
// may be metadata at the wrapper level. Edits made on the Asset it returns,
// such as SetID, are not carried into the wrapper's encoding; encode the
// Asset itself to see them.
type Wrapper struct {
	bridge.Base
	asset *bridge.Field[*Asset]
}

// WrapperCodec bridges Wrapper to the encoding layer.
var WrapperCodec = bridge.NewObjectCodec(NewWrapper)

// NewWrapper wraps n as a Wrapper.
func NewWrapper(n node.Node) *Wrapper {
	w := &Wrapper{}
	w.Bind("AssetWrapper", n)
	w.asset = bridge.NewField(&w.Base, "asset", codec.Codec[*Asset](AssetCodec), func() (*Asset, error) {
		return nil, bridge.Invalid("AssetWrapper is not wrapping a valid asset")
	})
	return w
}

// Asset returns the wrapped asset.
func (w *Wrapper) Asset() (*Asset, error) {
	return w.asset.Get()
}

// MustAsset is like Asset but panics on a validation error.
func (w *Wrapper) MustAsset() *Asset {
	return w.asset.MustGet()
}

// Register adds the asset codecs to reg.
func Register(reg *bridge.Registry) error {
	if err := bridge.Register(reg, "Asset", codec.Codec[*Asset](AssetCodec)); err != nil {
		return err
	}
	return bridge.Register(reg, "AssetWrapper", codec.Codec[*Wrapper](WrapperCodec))
}
