// Package taxon owns the dense taxon record arena and the external-id to
// internal-index lookup table that every other package in this module
// indexes into.
//
// Taxa live in one contiguous slice owned by the Store; everything else
// refers to them by internal index, never by pointer. This mirrors the
// arena+index strategy the mmr/massifs packages use for tree positions:
// indices are cheap to copy, compare, and store in flat arrays, and they
// never entangle the lifetime of a node with the lifetime of its
// references.
package taxon
