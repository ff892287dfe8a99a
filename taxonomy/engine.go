package taxonomy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Thomas1664/go-taxonomy/clade"
	"github.com/Thomas1664/go-taxonomy/config"
	"github.com/Thomas1664/go-taxonomy/dmp"
	"github.com/Thomas1664/go-taxonomy/eulertour"
	lcapkg "github.com/Thomas1664/go-taxonomy/lca"
	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/rank"
	"github.com/Thomas1664/go-taxonomy/rmq"
	"github.com/Thomas1664/go-taxonomy/taxon"
	"github.com/Thomas1664/go-taxonomy/wmlca"
)

// Engine is the composed, queryable taxonomy. Construct one with Load.
type Engine struct {
	state State

	store *taxon.Store
	tour  *eulertour.Tour
	index *rmq.Index

	lca       *lcapkg.Engine
	rankTable *rank.Table
	projector *rank.Projector

	voteMode       wmlca.VoteMode
	majorityCutoff float64

	log logging.Logger
}

// State reports the Engine's current construction state.
func (e *Engine) State() State {
	return e.state
}

// Load drives the full construction path: file discovery, dump parsing,
// merged-alias application, name resolution, Euler-tour build, and RMQ
// build, advancing state after each phase completes. cfg may be nil, in
// which case config.Default() is used. log may be nil, in which case
// query methods discard their warnings.
//
// A fatal error at any phase is reported to term and also returned, so a
// RecordingTerminator-backed caller in a test can inspect it without
// relying on an os.Exit that never happens.
func Load(ctx context.Context, prefix string, cfg *config.Config, log logging.Logger, term Terminator) (*Engine, error) {
	if log == nil {
		log = logging.NoOp()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	e := &Engine{log: log}

	fail := func(err error) (*Engine, error) {
		term.Fatal(err)
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	nodesPath, namesPath, mergedPath, err := discoverFiles(prefix)
	if err != nil {
		return fail(err)
	}

	nodes, err := dmp.LoadNodes(nodesPath)
	if err != nil {
		return fail(err)
	}
	store, err := taxon.BuildFromNodes(nodes)
	if err != nil {
		return fail(err)
	}
	e.store = store
	e.state = NodesLoaded

	if err := dmp.LoadMerged(mergedPath, store, log); err != nil {
		return fail(err)
	}
	e.state = MergedApplied

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	if err := dmp.LoadNames(namesPath, store, log); err != nil {
		return fail(err)
	}
	e.state = NamesResolved

	e.tour = eulertour.Build(store)
	e.index = rmq.Build(e.tour.Depth)
	e.lca = lcapkg.New(store, e.tour, e.index, log)

	e.rankTable = cfg.RankTable()
	e.projector = rank.New(store, e.rankTable)

	mode, err := cfg.VoteMode()
	if err != nil {
		return fail(err)
	}
	e.voteMode = mode
	e.majorityCutoff = cfg.Vote.MajorityCutoff

	e.state = Indexed
	return e, nil
}

// ErrDumpFilesNotFound is InvalidConfiguration: neither the prefixed nor
// the bare form of all three dump files (nodes, names, merged) could be
// found under one consistent scheme.
var ErrDumpFilesNotFound = errors.New("taxonomy: dump files not found")

// discoverFiles resolves nodes, names, and merged as one atomic scheme,
// not three independent lookups. It first tries every file as
// "<prefix>_<kind>" (e.g. "P_nodes.dmp"); if any of the three is missing
// under that scheme, it falls back to trying every file bare
// ("<kind>.dmp") in prefix's directory; if that also leaves any file
// missing, discovery fails.
func discoverFiles(prefix string) (nodes, names, merged string, err error) {
	dir := filepath.Dir(prefix)
	kinds := []string{"nodes.dmp", "names.dmp", "merged.dmp"}

	prefixed := make([]string, len(kinds))
	allPrefixed := true
	for i, kind := range kinds {
		prefixed[i] = prefix + "_" + kind
		if !fileExists(prefixed[i]) {
			allPrefixed = false
		}
	}
	if allPrefixed {
		return prefixed[0], prefixed[1], prefixed[2], nil
	}

	bare := make([]string, len(kinds))
	allBare := true
	for i, kind := range kinds {
		bare[i] = filepath.Join(dir, kind)
		if !fileExists(bare[i]) {
			allBare = false
		}
	}
	if allBare {
		return bare[0], bare[1], bare[2], nil
	}

	return "", "", "", fmt.Errorf("%w: neither %q_{nodes,names,merged}.dmp nor bare {nodes,names,merged}.dmp in %q are all present", ErrDumpFilesNotFound, prefix, dir)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (e *Engine) requireIndexed(method string) {
	if e.state != Indexed {
		panic(fmt.Sprintf("taxonomy: %s called before Indexed (state is %s)", method, e.state))
	}
}

// LCA returns the lowest common ancestor of a and b, by external id.
func (e *Engine) LCA(a, b int64) int64 {
	e.requireIndexed("LCA")
	return e.lca.LCA(a, b)
}

// LCAAll returns the lowest common ancestor of every id in ids, by
// external id, skipping unknown ids. Returns nil if none are known.
func (e *Engine) LCAAll(ids []int64) *taxon.Record {
	e.requireIndexed("LCAAll")
	return e.lca.LCAAll(ids)
}

// IsAncestor reports whether candidate is an ancestor of (or equal to)
// child, by external id.
func (e *Engine) IsAncestor(candidate, child int64) bool {
	e.requireIndexed("IsAncestor")
	return e.lca.IsAncestor(candidate, child)
}

// RecordOf resolves id to its taxon.Record.
func (e *Engine) RecordOf(id int64) (*taxon.Record, error) {
	e.requireIndexed("RecordOf")
	return e.store.RecordOf(id, true)
}

// LineageString renders id's lineage root-to-node, ';'-joined, as
// external ids or as rank-coded names.
func (e *Engine) LineageString(id int64, asNames bool) (string, error) {
	e.requireIndexed("LineageString")
	rec, err := e.store.RecordOf(id, true)
	if err != nil {
		return "", err
	}
	return e.projector.LineageString(*rec, asNames), nil
}

// AtRanks reports id's lineage name at each requested canonical rank.
func (e *Engine) AtRanks(id int64, ranks []string) ([]string, error) {
	e.requireIndexed("AtRanks")
	if err := e.rankTable.Validate(ranks); err != nil {
		return nil, err
	}
	rec, err := e.store.RecordOf(id, true)
	if err != nil {
		return nil, err
	}
	return e.projector.AtRanks(*rec, ranks), nil
}

// CladeCounts folds counts into per-clade subtree sums.
func (e *Engine) CladeCounts(counts map[int64]uint64) map[int64]*clade.Entry {
	e.requireIndexed("CladeCounts")
	return clade.Counts(e.store, counts)
}

// WeightedMajorityLCA runs the weighted-majority LCA over hits, using the
// vote mode and majority cutoff this Engine was configured with.
func (e *Engine) WeightedMajorityLCA(hits []wmlca.Hit) (wmlca.Result, error) {
	e.requireIndexed("WeightedMajorityLCA")
	return wmlca.Select(e.store, e.rankTable, hits, e.voteMode, e.majorityCutoff, e.log)
}
