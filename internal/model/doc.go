// Package model defines the core data structures used throughout wikiqual.
//
// This package contains the following main types:
//   - Article: The pre-extracted document model the engine analyzes
//   - AxisResult: The output of one per-axis analyzer
//   - Report: The aggregated analysis result
//   - Tier: The discrete quality level mapped from the total score
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (analyzer, scoring, report) need to use these
// types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
