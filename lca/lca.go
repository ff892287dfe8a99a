package lca

import (
	"github.com/Thomas1664/go-taxonomy/eulertour"
	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/rmq"
	"github.com/Thomas1664/go-taxonomy/taxon"
)

// Engine answers pairwise and n-ary LCA queries, and ancestor tests, over
// an already-built Store, Tour, and RMQ Index. It holds no state of its
// own and is safe for concurrent use.
type Engine struct {
	store *taxon.Store
	tour  *eulertour.Tour
	index *rmq.Index
	log   logging.Logger
}

// New wires an Engine to its three read-only dependencies. log may be nil,
// in which case warnings about unknown taxa are discarded.
func New(store *taxon.Store, tour *eulertour.Tour, index *rmq.Index, log logging.Logger) *Engine {
	if log == nil {
		log = logging.NoOp()
	}
	return &Engine{store: store, tour: tour, index: index, log: log}
}

// lcaInternal is the O(1) pairwise LCA over internal indices.
//
// If either argument is the root's internal index, the root is returned
// without a tour lookup ("root absorbs everything"). The root's index is
// taken from the Store, so the shortcut holds wherever the root appeared
// in the nodes dump.
func (e *Engine) lcaInternal(a, b int) int {
	root := e.store.RootInternalIndex()
	if a == root || b == root {
		return root
	}
	if a == b {
		return a
	}
	i, j := e.tour.First[a], e.tour.First[b]
	if i > j {
		i, j = j, i
	}
	return e.tour.Visit[e.index.Query(i, j)]
}

// LCA returns the lowest common ancestor of a and b, by external id. If
// one of the two is absent from the Store, the other is returned
// unchanged (degenerate LCA) rather than treated as an error.
func (e *Engine) LCA(a, b int64) int64 {
	ia, okA := e.store.InternalOf(a)
	ib, okB := e.store.InternalOf(b)
	if !okA {
		return b
	}
	if !okB {
		return a
	}
	result := e.lcaInternal(ia, ib)
	return e.store.Record(result).ExternalID
}

// LCAAll folds LCA left-to-right over ids, skipping (and logging a
// warning for) every id absent from the Store. It returns nil if no id in
// the set is known.
func (e *Engine) LCAAll(ids []int64) *taxon.Record {
	var acc int
	have := false
	for _, id := range ids {
		idx, ok := e.store.InternalOf(id)
		if !ok {
			e.log.Warnf("lca: unknown taxon %d, skipping", id)
			continue
		}
		if !have {
			acc, have = idx, true
			continue
		}
		acc = e.lcaInternal(acc, idx)
	}
	if !have {
		return nil
	}
	rec := e.store.Record(acc)
	return &rec
}

// IsAncestor reports whether candidate is an ancestor of (or equal to)
// child, by external id.
func (e *Engine) IsAncestor(candidate, child int64) bool {
	if candidate == child {
		return true
	}
	ic, okC := e.store.InternalOf(candidate)
	ik, okK := e.store.InternalOf(child)
	if !okC || !okK {
		return false
	}
	return e.lcaInternal(ik, ic) == ic
}
