// Package lca answers lowest-common-ancestor and ancestor queries over an
// Euler tour and its RMQ index. Every method is a read-only consumer of
// the taxon.Store, eulertour.Tour, and rmq.Index it's built from.
package lca
