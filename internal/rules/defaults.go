package rules

import "regexp"

// defaultRules is the built-in Arabic spelling and style rule set, used
// whenever no rule file is supplied. Declared precompiled so a typo
// here fails at startup rather than silently shrinking the set.
var defaultRules = []Rule{
	NewCompiledRule("haatha",
		regexp.MustCompile(`هاذا`),
		"misspelling: هاذا should be هذا",
		"replace هاذا with هذا"),
	NewCompiledRule("haathihi",
		regexp.MustCompile(`هاذه`),
		"misspelling: هاذه should be هذه",
		"replace هاذه with هذه"),
	NewCompiledRule("thaalika",
		regexp.MustCompile(`ذالك`),
		"misspelling: ذالك should be ذلك",
		"replace ذالك with ذلك"),
	NewCompiledRule("lithaalika",
		regexp.MustCompile(`لذالك`),
		"misspelling: لذالك should be لذلك",
		"replace لذالك with لذلك"),
	NewCompiledRule("masooliya",
		regexp.MustCompile(`مسؤلية`),
		"misspelling: مسؤلية should be مسؤولية",
		"replace مسؤلية with مسؤولية"),
	NewCompiledRule("ila-hamza",
		regexp.MustCompile(`\sالى\s`),
		"misspelling: الى should be إلى",
		"replace الى with إلى"),
	NewCompiledRule("hifdh",
		regexp.MustCompile(`حفض`),
		"misspelling: حفض should be حفظ",
		"replace حفض with حفظ"),
	NewCompiledRule("muadham",
		regexp.MustCompile(`معضم`),
		"misspelling: معضم should be معظم",
		"replace معضم with معظم"),
	NewCompiledRule("colloquial-kida",
		regexp.MustCompile(`كده|كدا|كدة`),
		"colloquial expression unsuited to encyclopedic register",
		"rewrite in formal Arabic"),
	NewCompiledRule("colloquial-ashan",
		regexp.MustCompile(`علشان|عشان`),
		"colloquial expression unsuited to encyclopedic register",
		"rewrite in formal Arabic"),
	NewCompiledRule("doubled-jiddan",
		regexp.MustCompile(`جداً جداً`),
		"redundant intensifier",
		"keep a single جداً or drop it"),
	NewCompiledRule("literal-translation",
		regexp.MustCompile(`هو كان|كانت هي`),
		"awkward machine-translated construction",
		"restructure the sentence without the redundant pronoun"),
	NewCompiledRule("space-before-comma",
		regexp.MustCompile(` ,`),
		"punctuation error: space before comma",
		"attach the comma to the preceding word"),
	NewCompiledRule("doubled-exclamation",
		regexp.MustCompile(`!!`),
		"excessive punctuation",
		"use a single exclamation mark at most"),
}

// DefaultRules returns a copy of the built-in rule set.
func DefaultRules() []Rule {
	out := make([]Rule, len(defaultRules))
	copy(out, defaultRules)
	return out
}
