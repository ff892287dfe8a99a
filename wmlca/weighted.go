package wmlca

import (
	"errors"
	"fmt"
	"math"

	"github.com/Thomas1664/go-taxonomy/logging"
	"github.com/Thomas1664/go-taxonomy/rank"
	"github.com/Thomas1664/go-taxonomy/taxon"
)

// MaxWeight is the ceiling a single hit's weight is clamped to under
// VoteMinusLogEvalue when its evidence is non-positive, mirroring the
// reference implementation's MAX_TAX_WEIGHT constant.
const MaxWeight = 1000.0

// MaxEvidence is the sentinel evidence value that passes through
// VoteMinusLogEvalue unmodified, mirroring the reference implementation's
// use of FLT_MAX to mean "treat this hit as maximally weighted already".
const MaxEvidence = float64(math.MaxFloat32)

// VoteMode selects how a Hit's Evidence is converted into a vote weight.
type VoteMode int

const (
	// VoteUniform gives every hit a weight of 1, regardless of evidence.
	VoteUniform VoteMode = iota
	// VoteMinusLogEvalue weights a hit by -log(evidence), treating
	// evidence as an e-value: smaller e-values (more significant hits)
	// get larger weight.
	VoteMinusLogEvalue
	// VoteRawScore uses Evidence directly as the weight.
	VoteRawScore
)

// ErrInvalidVoteMode is InvalidConfiguration: Select was called with a
// VoteMode it doesn't recognize.
var ErrInvalidVoteMode = errors.New("wmlca: invalid vote weight mode")

// Hit is one piece of evidence: a taxon assignment plus whatever evidence
// backs it (an e-value, a raw score, or nothing meaningful under
// VoteUniform). TaxonID taxon.Unassigned marks a hit with no taxon
// assignment at all; it is counted but contributes no weight.
type Hit struct {
	TaxonID  int64
	Evidence float64
}

// Result summarizes one weighted-majority selection.
type Result struct {
	Selected        int64
	SelectedPercent float64
	Assigned        int
	Unassigned      int
	Agreeing        int
}

// Weight converts one hit's evidence into a vote weight under mode.
func Weight(mode VoteMode, evidence float64) (float64, error) {
	switch mode {
	case VoteUniform:
		return 1, nil
	case VoteMinusLogEvalue:
		if evidence == MaxEvidence {
			return evidence, nil
		}
		if evidence > 0 {
			return -math.Log(evidence), nil
		}
		return MaxWeight, nil
	case VoteRawScore:
		return evidence, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidVoteMode, mode)
	}
}

// accNode is the per-taxon accumulator used while folding hits up their
// lineages: weight is the sum of every hit weight that passed through (or
// landed on) this taxon; isCandidate marks a taxon reached by at least two
// distinct child paths, or hit directly; lastChild remembers which child
// path was last seen here, taxon.Unassigned meaning "none yet".
type accNode struct {
	weight      float64
	isCandidate bool
	lastChild   int64
}

// Select runs the weighted-majority LCA over hits: every hit's weight is
// added to its own taxon and to every ancestor up to the root; a taxon
// becomes a selection candidate if it received a direct hit or if two
// distinct children routed weight through it; among candidates whose
// share of the total weight meets cutoff, the one with the lowest
// canonical rank index wins, ties broken toward higher share.
//
// The per-candidate rank walk stops at the first ranked level found
// walking from the candidate toward the root -- including the candidate's
// own rank, checked first -- rather than scanning the whole lineage for
// its true minimum. This is the behavior observed in the reference
// implementation and is preserved deliberately; see doc.go.
//
// An id in hits absent from store is fatal (taxon.ErrUnknownTaxon);
// taxon.Unassigned is not an error, it simply contributes to Unassigned
// and nothing else.
func Select(store *taxon.Store, table *rank.Table, hits []Hit, mode VoteMode, cutoff float64, log logging.Logger) (Result, error) {
	if log == nil {
		log = logging.NoOp()
	}

	acc := make(map[int64]*accNode)
	get := func(id int64) *accNode {
		n, ok := acc[id]
		if !ok {
			n = &accNode{}
			acc[id] = n
		}
		return n
	}

	var totalWeight float64
	var assigned, unassigned int

	for _, h := range hits {
		if h.TaxonID == taxon.Unassigned {
			unassigned++
			continue
		}
		rec, err := store.RecordOf(h.TaxonID, true)
		if err != nil {
			return Result{}, err
		}
		w, err := Weight(mode, h.Evidence)
		if err != nil {
			return Result{}, err
		}
		assigned++
		totalWeight += w

		own := get(h.TaxonID)
		own.weight += w
		own.isCandidate = true

		cur := *rec
		childID := h.TaxonID
		for !cur.IsRoot() {
			parent := store.Record(cur.ParentInternalIndex)
			pn := get(parent.ExternalID)
			pn.weight += w
			if pn.lastChild != taxon.Unassigned && pn.lastChild != childID {
				pn.isCandidate = true
			}
			pn.lastChild = childID
			childID = parent.ExternalID
			cur = parent
		}
	}

	result := Result{Assigned: assigned, Unassigned: unassigned}
	if totalWeight == 0 {
		return result, nil
	}

	rootID := store.Record(store.RootInternalIndex()).ExternalID
	minRank := math.MaxInt32
	for id, n := range acc {
		if !n.isCandidate {
			continue
		}
		percent := n.weight / totalWeight
		if percent < cutoff {
			continue
		}

		rec, _ := store.RecordOf(id, false)
		currMinRank := math.MaxInt32
		cur := *rec
		for !cur.IsRoot() {
			if idx := table.Index(cur.Rank); idx > 0 && idx < currMinRank {
				currMinRank = idx
				break
			}
			cur = store.Record(cur.ParentInternalIndex)
		}

		if currMinRank < minRank || (currMinRank == minRank && percent > result.SelectedPercent) {
			minRank = currMinRank
			result.Selected = id
			result.SelectedPercent = percent
		}
	}

	if result.Selected == taxon.Unassigned {
		return result, nil
	}
	if result.Selected == rootID {
		result.Agreeing = assigned
		return result, nil
	}

	for _, h := range hits {
		if h.TaxonID == taxon.Unassigned {
			continue
		}
		rec, _ := store.RecordOf(h.TaxonID, true)
		cur := *rec
		for {
			if cur.ExternalID == result.Selected {
				result.Agreeing++
				break
			}
			if cur.IsRoot() {
				break
			}
			cur = store.Record(cur.ParentInternalIndex)
		}
	}

	log.Infof("wmlca: selected %d (%.2f%% of %d assigned, %d agreeing)", result.Selected, result.SelectedPercent*100, assigned, result.Agreeing)
	return result, nil
}
