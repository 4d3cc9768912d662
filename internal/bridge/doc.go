// Package bridge lets Go types present typed, lazily decoded views over
// runtime nodes.
//
// # Objects
//
// An Object is a Go value whose only backing state is one node.Node. Types
// embed Base to get the backing node and local override tracking, and
// declare their properties as *Field values bound to that Base:
//
//	type Wrapper struct {
//		bridge.Base
//		asset *bridge.Field[*Asset]
//	}
//
//	func NewWrapper(n node.Node) *Wrapper {
//		w := &Wrapper{}
//		w.Bind("AssetWrapper", n)
//		w.asset = bridge.NewField(&w.Base, "asset", AssetCodec, func() (*Asset, error) {
//			return nil, bridge.Invalid("AssetWrapper is not wrapping a valid asset")
//		})
//		return w
//	}
//
// # Fields
//
// A Field is evaluated on first read: the key is looked up in the owner's
// node and decoded. A missing key and a key that fails to decode both run
// the fallback; the two cases are deliberately indistinguishable. The
// outcome, value or error, is committed once and returned by every later
// read. A failed field stays failed for the lifetime of the owner.
//
// # Encoding
//
// ObjectCodec plugs an Object type into anything that speaks codec.Codec.
// Decoding wraps the node without validation; encoding returns the exact
// backing node, so a wrap/unwrap round trip is O(1) and loses nothing the Go
// type never read. Only fields changed with Field.Set cause a new node to
// be produced.
package bridge
