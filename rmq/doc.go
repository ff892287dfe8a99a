// Package rmq builds and serves a sparse-table Range Minimum Query index
// over an array of depths, the classical O(n log n)-preprocessing,
// O(1)-query structure that turns Euler-tour depth comparisons into LCA
// answers.
package rmq
