package analyzer

import "github.com/kljensen/snowball"

// stem reduces term to its English Snowball stem. Used only when the
// Analyzer has Stem enabled (off by default — spec.md's overview names
// stemming but pins no operation contract for it, so standard/advanced
// tokenization keeps its literal surface-form behavior unless a caller
// opts in). Errors (unsupported input) leave the term unchanged.
func stem(term string) string {
	stemmed, err := snowball.Stem(term, "english", true)
	if err != nil || stemmed == "" {
		return term
	}
	return stemmed
}
