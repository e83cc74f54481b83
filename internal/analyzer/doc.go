// Package analyzer implements the per-axis article analyzers and the
// coordinator that fans them out.
//
// Each axis (language, structure, references, media, links, grammar,
// maintenance, revision, crossproject) is a pure function over the
// article model: it never mutates the article and it never fails an
// entire analysis run over a single weak signal. Axes report a score in
// [0, Max], a details map the scoring engine reads back, and
// improvement notes in emission order.
package analyzer
