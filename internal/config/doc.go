// Package config provides configuration structures and utilities for wikiqual.
// It defines the main configuration options for scoring article documents,
// rule loading, caching, and report generation preferences.
package config
