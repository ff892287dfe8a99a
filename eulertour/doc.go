// Package eulertour linearizes a rooted tree into the Euler-tour arrays
// that the rmq package indexes and the lca package queries.
//
// The tour is produced with an explicit stack rather than recursion:
// flat index arithmetic over recursive tree walks keeps the traversal
// off the goroutine stack, which matters because taxonomy trees can run
// deep enough that a recursive port risks it. It reproduces the
// reference taxonomy implementation's tour-building routine's exact
// construction, entry-for-entry: each node contributes one entry when
// first descended into, and one "return to parent" entry once every child
// subtree has been walked — including the root itself, whose return entry
// points at itself and carries depth -1. That padding entry is never a
// first-occurrence for any node, so it never affects an RMQ query, but it
// is why the tour's length is exactly 2N rather than 2N-1.
package eulertour
