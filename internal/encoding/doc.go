// Package encoding connects bridged objects to structured wire formats.
//
// A Format turns runtime values into bytes and back; it knows nothing about
// Go types. A Protocol pairs a Format with a bridge.Registry: marshalling
// looks up the codec registered for the value's type, encodes it to a node
// and serializes the node's value, so an untouched object is written out
// exactly as the runtime produced it, including keys the Go type never
// reads.
package encoding
