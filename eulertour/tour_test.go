package eulertour

import (
	"testing"

	"github.com/Thomas1664/go-taxonomy/taxon"
	"github.com/stretchr/testify/require"
)

func buildSample(t *testing.T) *taxon.Store {
	t.Helper()
	nodes := []taxon.RawNode{
		{ExternalID: 1, ParentExternalID: 1},
		{ExternalID: 2, ParentExternalID: 1},
		{ExternalID: 3, ParentExternalID: 1},
		{ExternalID: 4, ParentExternalID: 2},
		{ExternalID: 5, ParentExternalID: 2},
		{ExternalID: 6, ParentExternalID: 3},
	}
	s, err := taxon.BuildFromNodes(nodes)
	require.NoError(t, err)
	return s
}

func TestBuildLength(t *testing.T) {
	s := buildSample(t)
	tour := Build(s)
	require.Len(t, tour.Visit, 2*s.Len())
	require.Len(t, tour.Depth, 2*s.Len())
}

func TestBuildSequenceMatchesReferenceTraversal(t *testing.T) {
	s := buildSample(t)
	tour := Build(s)

	idx := func(ext int64) int {
		i, ok := s.InternalOf(ext)
		require.True(t, ok)
		return i
	}

	wantVisit := []int64{1, 2, 4, 2, 5, 2, 1, 3, 6, 3, 1, 1}
	wantDepth := []int{0, 1, 2, 1, 2, 1, 0, 1, 2, 1, 0, -1}

	require.Len(t, tour.Visit, len(wantVisit))
	for i, ext := range wantVisit {
		require.Equal(t, idx(ext), tour.Visit[i], "position %d", i)
	}
	require.Equal(t, wantDepth, tour.Depth)
}

func TestFirstOccurrenceIsEarliest(t *testing.T) {
	s := buildSample(t)
	tour := Build(s)

	for v := 0; v < s.Len(); v++ {
		first := tour.First[v]
		require.GreaterOrEqual(t, first, 0)
		require.Equal(t, v, tour.Visit[first])
		for i := 0; i < first; i++ {
			require.NotEqual(t, v, tour.Visit[i])
		}
	}
}

func TestStartsAndEndsAtRoot(t *testing.T) {
	s := buildSample(t)
	tour := Build(s)
	root := s.RootInternalIndex()
	require.Equal(t, root, tour.Visit[0])
	require.Equal(t, root, tour.Visit[len(tour.Visit)-1])
}

func TestLeafContributesOneFirstOccurrenceEntry(t *testing.T) {
	s := buildSample(t)
	tour := Build(s)
	leaf, ok := s.InternalOf(4)
	require.True(t, ok)

	count := 0
	for _, v := range tour.Visit {
		if v == leaf {
			count++
		}
	}
	// leaf 4 is entered once; its exit appends its parent, never itself,
	// so it appears exactly once in Visit.
	require.Equal(t, 1, count)
}
