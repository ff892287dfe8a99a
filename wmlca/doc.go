// Package wmlca implements the weighted-majority LCA: given a set of
// (taxon, evidence) hits, it selects the most specific ancestor whose
// accumulated weighted evidence covers at least a configured fraction of
// the total, breaking ties toward higher coverage.
//
// The rank-minimum walk used during selection deliberately preserves an
// early-break quirk present in the reference weighted-majority LCA
// algorithm this package is ported from: it stops at the first ranked
// level found walking from the candidate toward the root, which is the
// most specific ranked level on that lineage, rather than scanning the
// whole lineage for the minimum canonical index the variable naming
// suggests. This package keeps that behavior rather than
// "fixing" it, to match observed outputs.
package wmlca
