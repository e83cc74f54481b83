// Package rules loads and validates the grammar rule set applied by the
// language axis.
//
// Rules arrive as pattern/description/suggestion triples, either from
// the built-in default set or from a YAML rule file. Patterns are
// validated and compiled once at load; malformed patterns are skipped
// with a warning and heuristically unsafe patterns are rejected before
// compilation. A loaded rule is never re-interpreted per analysis call.
//
// The package also provides an optional SQLite-backed pull-through cache
// keyed by rule-file path and modification time, so repeated runs skip
// re-reading and re-validating unchanged rule files. The cache is
// explicitly constructed and passed in; the analysis core itself stays
// cache-free.
package rules
