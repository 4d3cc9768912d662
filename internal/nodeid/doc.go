// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation for paths into a node
graph. A path is used both as the lookup key of a lazily bound field and as
the stable identity of a node inside its graph snapshot.

The canonical format is a dot-separated sequence of keys, each optionally
followed by one or more indices, e.g. `asset.values[0].label` or `[2].id`.
*/
package nodeid
