// Package textutil provides text segmentation and normalization for the
// analysis engine.
//
// The package splits raw article text into sentences and paragraphs,
// strips wiki markup noise before segmentation, and produces the
// normalized sentence form used for near-duplicate comparison.
//
// All functions are pure and never fail: empty or nil-equivalent input
// yields an empty result. Sentence-terminal punctuation from both the
// Arabic and Latin scripts is supported.
package textutil
