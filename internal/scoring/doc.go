// Package scoring aggregates per-axis results into the final weighted
// report.
//
// The engine is strict where the analyzers are lenient: a missing axis
// is a caller bug and fails fast, while the axes themselves degrade on
// weak input. Three axes (language, references, media) are recomputed
// here from their detail maps so cross-axis adjustments live in one
// place instead of inside the analyzers.
package scoring
