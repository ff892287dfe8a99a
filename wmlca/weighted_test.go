package wmlca

import (
	"testing"

	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/rank"
	"github.com/Thomas1664/go-taxonomy/taxon"
	"github.com/stretchr/testify/require"
)

// buildTree is the standard sample used across packages:
//
//	1 (root, no rank)
//	├── 2 (phylum)
//	│   ├── 4 (genus)
//	│   └── 5 (genus)
//	└── 3 (phylum)
//	    └── 6 (genus)
func buildTree(t *testing.T) (*taxon.Store, *rank.Table) {
	t.Helper()
	nodes := []taxon.RawNode{
		{ExternalID: 1, ParentExternalID: 1, Rank: "no rank"},
		{ExternalID: 2, ParentExternalID: 1, Rank: "phylum"},
		{ExternalID: 3, ParentExternalID: 1, Rank: "phylum"},
		{ExternalID: 4, ParentExternalID: 2, Rank: "genus"},
		{ExternalID: 5, ParentExternalID: 2, Rank: "genus"},
		{ExternalID: 6, ParentExternalID: 3, Rank: "genus"},
	}
	s, err := taxon.BuildFromNodes(nodes)
	require.NoError(t, err)
	// Ordered most-specific-first, with "no rank" pinned to index 0 so
	// the rank-walk's idx>0 quirk excludes it rather than a real rank.
	table := rank.NewTable([]string{"no rank", "genus", "phylum", "superkingdom"}, nil)
	return s, table
}

func TestSelectUnanimousVoteGoesToLeaf(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: 4, Evidence: 1}, {TaxonID: 4, Evidence: 1}}
	r, err := Select(s, table, hits, VoteUniform, 0.5, logging.NoOp())
	require.NoError(t, err)
	require.Equal(t, int64(4), r.Selected)
	require.Equal(t, 2, r.Assigned)
	require.Equal(t, 2, r.Agreeing)
}

func TestSelectSplitVoteClimbsToCommonAncestor(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: 4, Evidence: 1}, {TaxonID: 5, Evidence: 1}}
	r, err := Select(s, table, hits, VoteUniform, 0.9, logging.NoOp())
	require.NoError(t, err)
	require.Equal(t, int64(2), r.Selected)
	require.Equal(t, 2, r.Agreeing)
}

func TestSelectDisjointVoteClimbsToRoot(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: 4, Evidence: 1}, {TaxonID: 6, Evidence: 1}}
	r, err := Select(s, table, hits, VoteUniform, 0.9, logging.NoOp())
	require.NoError(t, err)
	require.Equal(t, int64(1), r.Selected)
	require.Equal(t, 2, r.Agreeing)
}

func TestSelectRaisingCutoffNeverSpecializes(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: 4, Evidence: 1}, {TaxonID: 4, Evidence: 1}, {TaxonID: 5, Evidence: 1}}

	// At the low cutoff both node 4 (2/3, genus) and node 2 (3/3, phylum)
	// qualify; the more specific of the two, node 4, wins. Raising the
	// cutoff past node 4's share leaves only node 2 - never the reverse.
	low, err := Select(s, table, hits, VoteUniform, 0.5, logging.NoOp())
	require.NoError(t, err)
	high, err := Select(s, table, hits, VoteUniform, 0.9, logging.NoOp())
	require.NoError(t, err)

	require.Equal(t, int64(4), low.Selected)
	require.Equal(t, int64(2), high.Selected)
}

func TestSelectUnknownTaxonIsFatal(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: 999, Evidence: 1}}
	_, err := Select(s, table, hits, VoteUniform, 0.5, logging.NoOp())
	require.ErrorIs(t, err, taxon.ErrUnknownTaxon)
}

func TestSelectUnassignedHitsDoNotCountTowardTotal(t *testing.T) {
	s, table := buildTree(t)
	hits := []Hit{{TaxonID: taxon.Unassigned}, {TaxonID: 4, Evidence: 1}}
	r, err := Select(s, table, hits, VoteUniform, 0.5, logging.NoOp())
	require.NoError(t, err)
	require.Equal(t, 1, r.Unassigned)
	require.Equal(t, 1, r.Assigned)
	require.Equal(t, int64(4), r.Selected)
}

func TestWeightMinusLogEvalue(t *testing.T) {
	w, err := Weight(VoteMinusLogEvalue, 0.01)
	require.NoError(t, err)
	require.InDelta(t, 4.6, w, 0.1)

	w, err = Weight(VoteMinusLogEvalue, 0)
	require.NoError(t, err)
	require.Equal(t, MaxWeight, w)

	w, err = Weight(VoteMinusLogEvalue, MaxEvidence)
	require.NoError(t, err)
	require.Equal(t, MaxEvidence, w)
}

func TestWeightInvalidMode(t *testing.T) {
	_, err := Weight(VoteMode(99), 1)
	require.ErrorIs(t, err, ErrInvalidVoteMode)
}

func TestSelectNoHitsReturnsZeroResult(t *testing.T) {
	s, table := buildTree(t)
	r, err := Select(s, table, nil, VoteUniform, 0.5, logging.NoOp())
	require.NoError(t, err)
	require.Equal(t, int64(taxon.Unassigned), r.Selected)
}
