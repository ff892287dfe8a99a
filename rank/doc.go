// Package rank classifies taxa against a fixed, ordered vocabulary of
// canonical ranks and builds the textual lineage strings used for
// reporting. The vocabulary and its order are supplied by the config
// package; rank itself knows nothing about where that configuration came
// from.
package rank
