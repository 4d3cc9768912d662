// Package node provides read-only handles into values produced by an
// embedded dynamic runtime.
//
// # Purpose
//
// A runtime (HCL evaluation, a Lua chunk) produces a tree of dynamically
// typed values. Native code never owns that tree; it holds a Node, a closed
// capability with keyed/indexed lookup, kind probing and primitive
// extraction. Every shape decision ("is this a valid asset?") lives above
// this package, in codecs and fallbacks.
//
// # Identity
//
// A Graph is one snapshot of a runtime value. Children are memoized on
// their parent, so looking up the same key twice returns the same *Value
// pointer for the lifetime of the graph. Identity is therefore pointer
// identity, and Same compares it.
//
// # Failure Model
//
// No operation on a Node fails. Missing keys, out-of-range indices and
// kind mismatches all surface as an absent (false) result.
package node
