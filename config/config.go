package config

import (
	"errors"
	"fmt"
	"io"

	"github.com/Thomas1664/go-taxonomy/rank"
	"github.com/Thomas1664/go-taxonomy/wmlca"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVoteMode is InvalidConfiguration: the vote.mode string in a
// loaded document doesn't name a wmlca.VoteMode this package recognizes.
var ErrUnknownVoteMode = errors.New("config: unknown vote mode")

// Ranks holds the canonical rank order and the short-code overrides for a
// subset of it. Ranks outside ShortCodes fall back to rank.Table's '-'.
type Ranks struct {
	Order      []string          `yaml:"order"`
	ShortCodes map[string]string `yaml:"short_codes"`
}

// Vote holds the defaults wmlca.Select is run with absent an explicit
// per-call override.
type Vote struct {
	Mode           string  `yaml:"mode"`
	MajorityCutoff float64 `yaml:"majority_cutoff"`
}

// Config is the full document; every field has a sensible default from
// Default(), so a loaded document only needs to set what it overrides.
type Config struct {
	Ranks Ranks `yaml:"ranks"`
	Vote  Vote  `yaml:"vote"`
}

// Default returns the built-in NCBI-style rank vocabulary (most specific
// to most general, including the sub-/super- variants the original rank
// tables carry, and "no rank" pinned to index 0 so it - not any real
// rank - is the one the canonical index never treats as "found") and a
// uniform-vote, 50%-majority default for wmlca.
func Default() *Config {
	return &Config{
		Ranks: Ranks{
			Order: []string{
				"no rank",
				"forma", "varietas",
				"subspecies", "species",
				"species subgroup", "species group",
				"subgenus", "genus",
				"subfamily", "family", "superfamily",
				"suborder", "order", "superorder",
				"subclass", "class", "superclass",
				"subphylum", "phylum", "superphylum",
				"kingdom", "superkingdom",
			},
			ShortCodes: map[string]string{
				"superkingdom": "d",
				"kingdom":      "k",
				"phylum":       "p",
				"class":        "c",
				"order":        "o",
				"family":       "f",
				"genus":        "g",
				"species":      "s",
			},
		},
		Vote: Vote{
			Mode:           "uniform",
			MajorityCutoff: 0.5,
		},
	}
}

// Load reads a YAML document from r, starting from Default() and
// overriding whatever the document sets.
func Load(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("config: decoding document: %w", err)
	}
	return cfg, nil
}

// RankTable builds the rank.Table described by c.Ranks.
func (c *Config) RankTable() *rank.Table {
	short := make(map[string]byte, len(c.Ranks.ShortCodes))
	for r, code := range c.Ranks.ShortCodes {
		if len(code) > 0 {
			short[r] = code[0]
		}
	}
	return rank.NewTable(c.Ranks.Order, short)
}

// VoteMode resolves c.Vote.Mode to a wmlca.VoteMode.
func (c *Config) VoteMode() (wmlca.VoteMode, error) {
	switch c.Vote.Mode {
	case "uniform", "":
		return wmlca.VoteUniform, nil
	case "minus_log_evalue":
		return wmlca.VoteMinusLogEvalue, nil
	case "raw_score":
		return wmlca.VoteRawScore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVoteMode, c.Vote.Mode)
	}
}
