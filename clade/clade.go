package clade

import "github.com/Thomas1664/go-taxonomy/taxon"

// Entry is one output row: the evidence assigned directly to this taxon,
// the sum over its whole subtree, and the external ids of its immediate
// children that themselves appear in the output, in Store insertion
// order.
type Entry struct {
	SelfCount  uint64
	CladeCount uint64
	Children   []int64
}

// Counts folds counts (external id -> evidence hits) into per-clade sums.
// An id absent from store contributes only to its own entry, since its
// lineage can't be walked.
func Counts(store *taxon.Store, counts map[int64]uint64) map[int64]*Entry {
	result := make(map[int64]*Entry, len(counts))
	entry := func(id int64) *Entry {
		e, ok := result[id]
		if !ok {
			e = &Entry{}
			result[id] = e
		}
		return e
	}

	for id, c := range counts {
		self := entry(id)
		self.SelfCount = c
		self.CladeCount += c

		idx, ok := store.InternalOf(id)
		if !ok {
			continue
		}
		rec := store.Record(idx)
		for !rec.IsRoot() {
			rec = store.Record(rec.ParentInternalIndex)
			entry(rec.ExternalID).CladeCount += c
		}
	}

	store.Each(func(r taxon.Record) {
		if r.IsRoot() {
			return
		}
		if _, ok := result[r.ExternalID]; !ok {
			return
		}
		parent, ok := result[r.ParentExternalID]
		if !ok {
			return
		}
		parent.Children = append(parent.Children, r.ExternalID)
	})

	return result
}
