// Package memory provides in-memory implementations of the driven
// storage ports. Each store is mutex-guarded and acts as the single
// serialization point for its data; snapshots are deep copies safe to
// iterate during concurrent writes.
//
// Used as the default backend for the CLI and as fixtures in tests.
package memory
