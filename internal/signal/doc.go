// Package signal detects linguistic and stylistic signal patterns in
// article text.
//
// The package carries a fixed library of categorized pattern groups
// (machine-translation markers, filler phrases, weak and preposition-led
// sentence openings, narrative-weakness phrases) and applies
// caller-supplied grammar rules on top of them.
//
// Design decision: pattern groups are declared as package-level compiled
// variables rather than built per call because:
//  1. Compilation happens once at startup and failures surface immediately
//  2. Detection stays allocation-light on the hot path
//  3. The declaration order fixes the deterministic evaluation order
//
// Arabic text carries no ASCII word boundaries, so patterns anchor on
// whitespace or start-of-text instead of \b.
package signal
