// Package log provides logging construction for wikiqual, built on top
// of the standard slog package.
//
// This package extends slog to provide:
//   - Capping of long string attribute values (article excerpts)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Analyzers attach text excerpts (detected sentences, rule hits) to log
// records. The TruncatingHandler cuts such values at a fixed rune count
// so one long sentence never swallows a whole log line.
//
// # Usage
//
//	// Create a logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("redundant sentence",
//	    "excerpt", sentence, // Capped at 120 runes
//	    "similarity", 0.91,
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
