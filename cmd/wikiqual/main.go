// Package main provides the entry point for the wikiqual CLI.
//
// wikiqual scores encyclopedia article documents against nine quality
// axes and reports a 0-100 total, a quality tier, and improvement notes.
//
// Usage:
//
//	wikiqual analyze <article.json>
//	wikiqual analyze --list <file>
//
// See --help for all available options.
package main

// main is the entry point for wikiqual.
func main() {
	Execute()
}
