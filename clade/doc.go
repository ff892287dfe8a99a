// Package clade folds per-taxon evidence counts into per-clade subtree
// sums: every count assigned to a taxon also accrues to each of its
// ancestors, up to and including the root.
package clade
