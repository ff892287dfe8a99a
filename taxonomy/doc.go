// Package taxonomy composes the Dump Loader, Taxon Store, Euler-Tour
// Builder, RMQ Index, LCA Engine, Rank Projector, Clade Counter, and
// Weighted-Majority LCA into one construction path and a single Engine
// type exposing the query surface as methods. Construction advances a
// five-state lifecycle (Uninitialized -> NodesLoaded -> MergedApplied ->
// NamesResolved -> Indexed); query methods are only meaningful once an
// Engine reaches Indexed, and panic otherwise, the same way calling a
// method on a nil map would be treated as a programmer error rather than
// a recoverable one.
package taxonomy
