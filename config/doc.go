// Package config owns the one piece of external configuration the engine
// needs beyond the dump files themselves: the canonical rank vocabulary
// and short-code mapping consumed by rank.Table, and the vote-weight mode
// and majority cutoff consumed by wmlca.Select. A built-in default covers
// the NCBI-style rank set; a YAML document can override either or both.
package config
