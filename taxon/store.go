package taxon

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateExternalID is fatal: the same external id appeared twice
	// in the nodes dump with two different parents.
	ErrDuplicateExternalID = errors.New("taxon: duplicate external id with differing parent")
	// ErrDanglingParent is fatal: a node's parent external id resolves to
	// no record in the Store.
	ErrDanglingParent = errors.New("taxon: parent external id has no record")
	// ErrMissingRoot is fatal: no record in the nodes dump is its own
	// parent.
	ErrMissingRoot = errors.New("taxon: no root record found (no external id is its own parent)")
	// ErrUnknownMergeTarget is fatal: a merged dump row names a new
	// external id that the Store has no record for.
	ErrUnknownMergeTarget = errors.New("taxon: merged alias target has no record")
	// ErrUnknownTaxon is the query-time, non-fatal error RecordOf returns
	// in strict mode for an absent external id.
	ErrUnknownTaxon = errors.New("taxon: unknown external id")
)

// RawNode is one row parsed from the nodes dump, before parent references
// have been resolved to internal indices.
type RawNode struct {
	ExternalID       int64
	ParentExternalID int64
	Rank             string
}

// Store is the dense arena of TaxonRecords plus the external-id to
// internal-index table. It is built once, in order, from a nodes dump and
// is read-only afterward.
type Store struct {
	records       []Record
	externalIndex []int // dense table, sized maxExternalID+1, Absent sentinel
	maxExternalID int64
	rootInternal  int
}

func (s *Store) grow(externalID int64) {
	if externalID < int64(len(s.externalIndex)) {
		return
	}
	grown := make([]int, externalID+1)
	for i := range grown {
		grown[i] = Absent
	}
	copy(grown, s.externalIndex)
	s.externalIndex = grown
	if externalID > s.maxExternalID {
		s.maxExternalID = externalID
	}
}

// BuildFromNodes constructs a Store from the raw node rows of a nodes
// dump, in the order given (insertion order is preserved for every
// downstream consumer that depends on Store iteration order, notably the
// Clade Counter's children lists).
func BuildFromNodes(nodes []RawNode) (*Store, error) {
	s := &Store{
		records:      make([]Record, 0, len(nodes)),
		rootInternal: Absent,
	}

	seen := make(map[int64]int, len(nodes))
	for _, n := range nodes {
		if existing, ok := seen[n.ExternalID]; ok {
			if s.records[existing].ParentExternalID != n.ParentExternalID {
				return nil, fmt.Errorf("%w: %d", ErrDuplicateExternalID, n.ExternalID)
			}
			continue
		}

		idx := len(s.records)
		s.records = append(s.records, Record{
			InternalIndex:    idx,
			ExternalID:       n.ExternalID,
			ParentExternalID: n.ParentExternalID,
			Rank:             n.Rank,
		})
		seen[n.ExternalID] = idx

		s.grow(n.ExternalID)
		s.externalIndex[n.ExternalID] = idx
	}

	for i := range s.records {
		rec := &s.records[i]
		if rec.IsRoot() {
			rec.ParentInternalIndex = rec.InternalIndex
			s.rootInternal = rec.InternalIndex
			continue
		}
		parentIdx, ok := s.InternalOf(rec.ParentExternalID)
		if !ok {
			return nil, fmt.Errorf("%w: taxon %d references parent %d", ErrDanglingParent, rec.ExternalID, rec.ParentExternalID)
		}
		rec.ParentInternalIndex = parentIdx
	}

	if s.rootInternal == Absent {
		return nil, ErrMissingRoot
	}

	return s, nil
}

// Alias installs old as a merged id pointing at new's internal index. It
// is a no-op if old already has a live record (the reverse direction is
// never stored, and an id is never aliased over itself). It fails if new
// has no record.
func (s *Store) Alias(old, newID int64) error {
	if s.Exists(old) {
		return nil
	}
	idx, ok := s.InternalOf(newID)
	if !ok {
		return fmt.Errorf("%w: %d -> %d", ErrUnknownMergeTarget, old, newID)
	}
	s.grow(old)
	s.externalIndex[old] = idx
	return nil
}

// Len returns the number of live taxon records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// RootInternalIndex returns the internal index of the tree root.
func (s *Store) RootInternalIndex() int {
	return s.rootInternal
}

// MaxExternalID returns the largest external id known to the Store,
// including aliases installed by Alias.
func (s *Store) MaxExternalID() int64 {
	return s.maxExternalID
}

// Exists reports whether externalID resolves to a live record.
func (s *Store) Exists(externalID int64) bool {
	_, ok := s.InternalOf(externalID)
	return ok
}

// InternalOf maps an external id to its dense internal index. ok is false
// for ids outside the table or unused slots within it.
func (s *Store) InternalOf(externalID int64) (int, bool) {
	if externalID < 0 || externalID >= int64(len(s.externalIndex)) {
		return Absent, false
	}
	idx := s.externalIndex[externalID]
	return idx, idx != Absent
}

// Record returns the record at internal index idx. Callers must only pass
// indices obtained from this Store (0 <= idx < Len()).
func (s *Store) Record(idx int) Record {
	return s.records[idx]
}

// RecordOf resolves an external id to its Record. In strict mode, an
// absent id returns ErrUnknownTaxon. In lenient mode it returns a nil
// record and a nil error.
func (s *Store) RecordOf(externalID int64, strict bool) (*Record, error) {
	idx, ok := s.InternalOf(externalID)
	if !ok {
		if strict {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTaxon, externalID)
		}
		return nil, nil
	}
	rec := s.records[idx]
	return &rec, nil
}

// SetName sets the scientific name for externalID. It is a no-op if
// externalID has no record (callers are expected to have already checked
// Exists and reported the failure as a names-dump error).
func (s *Store) SetName(externalID int64, name string) {
	idx, ok := s.InternalOf(externalID)
	if !ok {
		return
	}
	s.records[idx].Name = name
}

// Each calls fn once per record in Store insertion order.
func (s *Store) Each(fn func(Record)) {
	for _, r := range s.records {
		fn(r)
	}
}
