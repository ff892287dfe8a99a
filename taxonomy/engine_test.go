package taxonomy

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/stretchr/testify/require"
)

// writeDump writes a minimal nodes/names/merged dump trio under a fresh
// temp dir using the "<prefix>_<kind>" naming discoverFiles prefers, and
// returns the prefix to pass to Load.
func writeDump(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prefix := filepath.Join(dir, "P")

	nodes := "1\t|\t1\t|\tno rank\t|\n" +
		"2\t|\t1\t|\tphylum\t|\n" +
		"3\t|\t1\t|\tphylum\t|\n" +
		"4\t|\t2\t|\tgenus\t|\n" +
		"5\t|\t2\t|\tgenus\t|\n" +
		"6\t|\t3\t|\tgenus\t|\n"
	require.NoError(t, os.WriteFile(prefix+"_nodes.dmp", []byte(nodes), 0o644))

	names := "1\t|\tRoot\t|\t\t|\tscientific name\t|\n" +
		"4\t|\tFourium\t|\t\t|\tscientific name\t|\n"
	require.NoError(t, os.WriteFile(prefix+"_names.dmp", []byte(names), 0o644))

	merged := "99\t|\t4\t|\n"
	require.NoError(t, os.WriteFile(prefix+"_merged.dmp", []byte(merged), 0o644))

	return prefix
}

func TestLoadReachesIndexedState(t *testing.T) {
	prefix := writeDump(t)
	term := &RecordingTerminator{}
	e, err := Load(context.Background(), prefix, nil, logging.NoOp(), term)
	require.NoError(t, err)
	require.Nil(t, term.Err)
	require.Equal(t, Indexed, e.State())
}

func TestLoadedEngineAnswersQueries(t *testing.T) {
	prefix := writeDump(t)
	term := &RecordingTerminator{}
	e, err := Load(context.Background(), prefix, nil, logging.NoOp(), term)
	require.NoError(t, err)

	require.Equal(t, int64(2), e.LCA(4, 5))
	require.True(t, e.IsAncestor(1, 6))
	require.False(t, e.IsAncestor(2, 6))

	rec, err := e.RecordOf(4)
	require.NoError(t, err)
	require.Equal(t, "Fourium", rec.Name)

	// 99 was merged into 4.
	rec, err = e.RecordOf(99)
	require.NoError(t, err)
	require.Equal(t, int64(4), rec.ExternalID)

	counts := e.CladeCounts(map[int64]uint64{4: 2, 6: 3})
	require.Equal(t, uint64(5), counts[1].CladeCount)
}

func TestLoadMissingNodesDumpIsFatal(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "missing")
	term := &RecordingTerminator{}
	e, err := Load(context.Background(), prefix, nil, logging.NoOp(), term)
	require.Error(t, err)
	require.Nil(t, e)
	require.Error(t, term.Err)
}

func TestLoadFallsBackToBareNamesWhenNoPrefixedFilesExist(t *testing.T) {
	dir := t.TempDir()

	nodes := "1\t|\t1\t|\tno rank\t|\n" +
		"2\t|\t1\t|\tphylum\t|\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.dmp"), []byte(nodes), 0o644))

	names := "1\t|\tRoot\t|\t\t|\tscientific name\t|\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "names.dmp"), []byte(names), 0o644))

	merged := "" // empty is fine, the file just needs to exist
	require.NoError(t, os.WriteFile(filepath.Join(dir, "merged.dmp"), []byte(merged), 0o644))

	term := &RecordingTerminator{}
	e, err := Load(context.Background(), filepath.Join(dir, "P"), nil, logging.NoOp(), term)
	require.NoError(t, err)
	require.Nil(t, term.Err)
	require.Equal(t, Indexed, e.State())

	rec, err := e.RecordOf(1)
	require.NoError(t, err)
	require.Equal(t, "Root", rec.Name)
}

func TestLoadPartialDumpSetIsFatal(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "P")

	// Only the prefixed nodes dump exists; neither the prefixed nor the
	// bare scheme has all three files, so discovery must fail rather
	// than silently loading names/merged as empty.
	nodes := "1\t|\t1\t|\tno rank\t|\n"
	require.NoError(t, os.WriteFile(prefix+"_nodes.dmp", []byte(nodes), 0o644))

	term := &RecordingTerminator{}
	e, err := Load(context.Background(), prefix, nil, logging.NoOp(), term)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrDumpFilesNotFound)
	require.Nil(t, e)
	require.Error(t, term.Err)
}

func TestQueryBeforeIndexedPanics(t *testing.T) {
	e := &Engine{}
	require.Panics(t, func() { e.LCA(1, 2) })
}
