// Package redundancy finds near-duplicate sentences via string
// similarity.
//
// Normalized sentences are compared pairwise in an upper-triangular
// scan. Short strings use classic edit distance; very long strings fall
// back to token-set overlap so the quadratic distance matrix never runs
// on pathological input. The scan itself is bounded by a sentence cap
// and a comparison budget, and reports a partial flag when a bound
// trips rather than failing.
package redundancy
