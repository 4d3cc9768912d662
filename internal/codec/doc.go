// Package codec defines the conversion contract between runtime nodes and
// concrete Go types, along with codecs for primitives, collections and
// `cty`-tagged structs.
//
// A Codec decodes a node into a T, failing with a *DecodeError when the
// node's shape does not match, and encodes a T back into a node without
// ever failing. For every built-in codec, Decode(Encode(v)) is equivalent
// to v.
package codec
