package rank

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Thomas1664/go-taxonomy/taxon"
)

// Table is the fixed, ordered vocabulary of canonical ranks: a rank's
// canonical index (smaller = more specific, larger = more general, "no
// rank" and anything outside the vocabulary sorting below every real
// rank) and its single-character short code. It is configuration, owned
// by the config package; rank only consumes it.
type Table struct {
	index []string       // canonical order, index position = canonical index
	pos   map[string]int // rank -> canonical index
	short map[string]byte
}

// NewTable builds a Table from an ordered rank list and a short-code map.
// Ranks not present in short are given the short code '-'.
func NewTable(ordered []string, short map[string]byte) *Table {
	t := &Table{
		index: ordered,
		pos:   make(map[string]int, len(ordered)),
		short: make(map[string]byte, len(short)),
	}
	for i, r := range ordered {
		t.pos[r] = i
	}
	for r, c := range short {
		t.short[r] = c
	}
	return t
}

// Index returns rank's canonical index, or -1 if rank is not in the
// vocabulary.
func (t *Table) Index(rankName string) int {
	if i, ok := t.pos[rankName]; ok {
		return i
	}
	return -1
}

// ShortCode returns rank's single-character code, or '-' if unknown.
func (t *Table) ShortCode(rankName string) byte {
	if c, ok := t.short[rankName]; ok {
		return c
	}
	return '-'
}

// ErrUnknownRank reports that a caller asked for a rank outside the
// canonical vocabulary.
var ErrUnknownRank = errors.New("rank: unknown canonical rank")

// Validate fails fast on any rank name outside the vocabulary, the same
// construction-time check the reference taxonomy implementation performs
// before classifying any record against the requested ranks.
func (t *Table) Validate(ranks []string) error {
	for _, r := range ranks {
		if t.Index(r) < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownRank, r)
		}
	}
	return nil
}

// Projector classifies taxa against a Table, reading lineages from a
// taxon.Store.
type Projector struct {
	store *taxon.Store
	table *Table
}

// New wires a Projector to its Store and Table.
func New(store *taxon.Store, table *Table) *Projector {
	return &Projector{store: store, table: table}
}

// AllRanks walks from node to root, collecting one (rank, name) pair per
// canonical rank encountered. The walk starts at node itself (not its
// parent): if node's own rank is canonical it is included. "no rank" and
// "no_rank" are suppressed except for the root, which is always inserted
// regardless of its own rank. The nearest ancestor for a given rank wins
// (first-writer-wins, walking upward).
func (p *Projector) AllRanks(node taxon.Record) map[string]string {
	result := make(map[string]string)
	cur := node
	for {
		if cur.IsRoot() {
			result[cur.Rank] = cur.Name
			return result
		}
		if cur.HasRank() {
			if _, exists := result[cur.Rank]; !exists {
				result[cur.Rank] = cur.Name
			}
		}
		cur = p.store.Record(cur.ParentInternalIndex)
	}
}

// AtRanks reports, for each requested canonical rank, the name found on
// node's lineage at that rank; "uc_"+node.Name if the requested rank is
// more specific than node's own rank (the LCA is below the requested
// level, so it can't be represented); or the literal "unknown" otherwise.
func (p *Projector) AtRanks(node taxon.Record, requested []string) []string {
	all := p.AllRanks(node)
	baseIdx := p.table.Index(node.Rank)
	unclassified := "uc_" + node.Name

	out := make([]string, 0, len(requested))
	for _, r := range requested {
		if name, ok := all[r]; ok {
			out = append(out, name)
			continue
		}
		if p.table.Index(r) < baseIdx {
			out = append(out, unclassified)
			continue
		}
		out = append(out, "unknown")
	}
	return out
}

// LineageString walks node to root and renders the chain root-to-node,
// joined by ';'. If asNames, each token is shortCode+"_"+name; otherwise
// each token is the taxon's external id.
func (p *Projector) LineageString(node taxon.Record, asNames bool) string {
	chain := make([]taxon.Record, 0, 16)
	cur := node
	for {
		chain = append(chain, cur)
		if cur.IsRoot() {
			break
		}
		cur = p.store.Record(cur.ParentInternalIndex)
	}

	tokens := make([]string, len(chain))
	for i, rec := range chain {
		pos := len(chain) - 1 - i
		if asNames {
			tokens[pos] = string(p.table.ShortCode(rec.Rank)) + "_" + rec.Name
		} else {
			tokens[pos] = strconv.FormatInt(rec.ExternalID, 10)
		}
	}
	return strings.Join(tokens, ";")
}
