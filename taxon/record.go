package taxon

// Absent is the sentinel internal index for an external id with no record.
const Absent = -1

// Unassigned is the external id reserved to mean "no taxon assigned".
const Unassigned int64 = 0

// Record is one taxon: its position in the Store's arena, its external
// identity, its parent's identity (both forms), its rank, and its
// scientific name. Name may be empty until the names dump has been
// applied.
type Record struct {
	InternalIndex       int
	ExternalID          int64
	ParentExternalID    int64
	ParentInternalIndex int
	Rank                string
	Name                string
}

// IsRoot reports whether r is its own parent, the sole loop-termination
// condition lineage walks must use (external id 0 is never a valid parent
// to test against, since unassigned ids never appear as parents).
func (r Record) IsRoot() bool {
	return r.ExternalID == r.ParentExternalID
}

// HasRank reports whether r carries a rank distinct from the "no rank" /
// "no_rank" spellings the rank projector treats as semantically equivalent
// and excludes from rank maps.
func (r Record) HasRank() bool {
	return r.Rank != "no rank" && r.Rank != "no_rank" && r.Rank != ""
}
