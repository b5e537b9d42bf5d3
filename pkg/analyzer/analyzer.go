// Package analyzer turns raw field text into a positioned sequence of
// normalized terms (spec §4.1). Each Analyzer owns an optional stopword
// filter and a configurable pattern-mode regex; all other modes are fixed
// rule sets.
package analyzer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Inquir-search/search-engine-sub000/pkg/stopword"
)

// Mode names a tokenization strategy.
type Mode string

const (
	Standard   Mode = "standard"
	Simple     Mode = "simple"
	Whitespace Mode = "whitespace"
	Keyword    Mode = "keyword"
	Email      Mode = "email"
	URL        Mode = "url"
	Phone      Mode = "phone"
	Pattern    Mode = "pattern"
	Advanced   Mode = "advanced"
)

// Token is a single emitted term with its sequential position.
type Token struct {
	Term     string
	Position int
}

var defaultPatternRe = regexp.MustCompile(`[A-Za-z0-9]+`)

// Analyzer tokenizes text according to a named mode.
type Analyzer struct {
	// Stopwords, if non-nil, is consulted by standard/simple/advanced modes.
	Stopwords *stopword.Set

	// PatternRe is the regex used by Pattern mode. Defaults to runs of
	// alphanumerics when nil.
	PatternRe *regexp.Regexp

	// Stem enables an English Snowball stemming pass over standard,
	// simple, and advanced mode output. Off by default.
	Stem bool
}

// New creates an Analyzer with the given stopword set (may be nil).
func New(stopwords *stopword.Set) *Analyzer {
	return &Analyzer{Stopwords: stopwords}
}

// Tokenize runs text through the named analyzer mode. An empty or
// non-string-shaped input yields an empty sequence; an unknown mode name
// falls back to Standard.
func (a *Analyzer) Tokenize(text string, mode Mode) []Token {
	if text == "" {
		return nil
	}

	switch mode {
	case Standard:
		return a.tokenizeStandard(text)
	case Simple:
		return a.tokenizeSimple(text)
	case Whitespace:
		return tokenizeWhitespace(text)
	case Keyword:
		return []Token{{Term: text, Position: 0}}
	case Email:
		return tokenizeEmail(text)
	case URL:
		return tokenizeURL(text)
	case Phone:
		return tokenizePhone(text)
	case Pattern:
		return a.tokenizePattern(text)
	case Advanced:
		return a.tokenizeAdvanced(text)
	default:
		return a.tokenizeStandard(text)
	}
}

func (a *Analyzer) filterAndEmit(raw []string) []Token {
	tokens := make([]Token, 0, len(raw))
	pos := 0
	for _, term := range raw {
		if term == "" {
			continue
		}
		if a.Stopwords != nil && a.Stopwords.Contains(term) {
			continue
		}
		if a.Stem {
			term = stem(term)
		}
		tokens = append(tokens, Token{Term: term, Position: pos})
		pos++
	}
	return tokens
}

// tokenizeStandard lowercases, splits on non-alphanumeric, drops empties
// and stopwords.
func (a *Analyzer) tokenizeStandard(text string) []Token {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return a.filterAndEmit(fields)
}

// tokenizeSimple lowercases, splits on non-letter, drops stopwords.
func (a *Analyzer) tokenizeSimple(text string) []Token {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	return a.filterAndEmit(fields)
}

// tokenizeWhitespace splits on whitespace only; case preserved, no
// stopword filter.
func tokenizeWhitespace(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for i, f := range fields {
		tokens = append(tokens, Token{Term: f, Position: i})
	}
	return tokens
}

// tokenizeEmail emits the local part, full domain, and each domain label,
// lowercased.
func tokenizeEmail(text string) []Token {
	lower := strings.ToLower(strings.TrimSpace(text))
	at := strings.LastIndex(lower, "@")
	if at < 0 {
		return nil
	}
	local := lower[:at]
	domain := lower[at+1:]
	if local == "" || domain == "" {
		return nil
	}

	terms := []string{local, domain}
	terms = append(terms, strings.Split(domain, ".")...)
	return dedupPositioned(terms)
}

// tokenizeURL strips the scheme and emits host, each host label, and
// non-empty path/query segments, lowercased.
func tokenizeURL(text string) []Token {
	rest := strings.TrimSpace(text)
	if idx := strings.Index(rest, "://"); idx >= 0 {
		rest = rest[idx+3:]
	}
	if rest == "" {
		return nil
	}
	rest = strings.ToLower(rest)

	var host, pathAndQuery string
	if idx := strings.IndexAny(rest, "/?"); idx >= 0 {
		host = rest[:idx]
		pathAndQuery = rest[idx:]
	} else {
		host = rest
	}
	// Drop userinfo and port from host, if present.
	if at := strings.LastIndex(host, "@"); at >= 0 {
		host = host[at+1:]
	}
	if colon := strings.Index(host, ":"); colon >= 0 {
		host = host[:colon]
	}

	var terms []string
	if host != "" {
		terms = append(terms, host)
		terms = append(terms, strings.Split(host, ".")...)
	}

	segments := strings.FieldsFunc(pathAndQuery, func(r rune) bool {
		return r == '/' || r == '?' || r == '&' || r == '='
	})
	terms = append(terms, segments...)

	return dedupPositioned(terms)
}

// tokenizePhone emits each digit group, overlapping 3-digit suffix windows
// of the last group, and the fully concatenated digit string.
func tokenizePhone(text string) []Token {
	groups := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsDigit(r)
	})
	groups = removeEmpty(groups)
	if len(groups) == 0 {
		return nil
	}

	var terms []string
	terms = append(terms, groups...)

	last := groups[len(groups)-1]
	for i := 0; i+3 <= len(last); i++ {
		terms = append(terms, last[i:i+3])
	}

	concat := strings.Join(groups, "")
	terms = append(terms, concat)

	return dedupPositioned(terms)
}

// tokenizePattern applies the configured regex (default: alphanumeric
// runs) to extract tokens.
func (a *Analyzer) tokenizePattern(text string) []Token {
	re := a.PatternRe
	if re == nil {
		re = defaultPatternRe
	}
	matches := re.FindAllString(text, -1)
	tokens := make([]Token, 0, len(matches))
	for i, m := range matches {
		tokens = append(tokens, Token{Term: m, Position: i})
	}
	return tokens
}

var possessiveRe = regexp.MustCompile(`'s\b|s'\b`)

// tokenizeAdvanced behaves like Standard plus apostrophe/possessive
// stripping and punctuation normalization.
func (a *Analyzer) tokenizeAdvanced(text string) []Token {
	normalized := possessiveRe.ReplaceAllString(text, "")
	normalized = strings.ReplaceAll(normalized, "'", "")
	return a.tokenizeStandard(normalized)
}

func dedupPositioned(terms []string) []Token {
	seen := make(map[string]struct{}, len(terms))
	tokens := make([]Token, 0, len(terms))
	pos := 0
	for _, term := range terms {
		if term == "" {
			continue
		}
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		tokens = append(tokens, Token{Term: term, Position: pos})
		pos++
	}
	return tokens
}

func removeEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
