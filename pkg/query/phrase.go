package query

import (
	"github.com/Inquir-search/search-engine-sub000/pkg/index"
	"github.com/Inquir-search/search-engine-sub000/pkg/postings"
)

// evalPhrase implements spec §4.9 match_phrase/phrase: every token must
// have a posting in the candidate document, with at least one position
// assignment where successive tokens occur within +-slop of the
// expected consecutive offset.
func (e *Executor) evalPhrase(p PhraseClause) *postings.Set {
	mode := e.analyzerModeFor(p.Field)
	tokens := e.Analyzer.Tokenize(p.Value, mode)
	if len(tokens) == 0 {
		return postings.NewSet()
	}

	keys := make([]string, len(tokens))
	for i, tok := range tokens {
		keys[i] = e.termKey(p.Field, tok.Term)
	}

	postingSets := make([]map[string]index.Posting, len(keys))
	for i, key := range keys {
		postingSets[i] = e.Index.GetPosting(key)
	}

	var ids []string
	for docID, first := range postingSets[0] {
		candidate := true
		for i := 1; i < len(postingSets); i++ {
			if _, ok := postingSets[i][docID]; !ok {
				candidate = false
				break
			}
		}
		if !candidate {
			continue
		}

		positions := make([][]int32, len(postingSets))
		positions[0] = first.Positions
		for i := 1; i < len(postingSets); i++ {
			positions[i] = postingSets[i][docID].Positions
		}
		if phraseSequenceMatches(positions, p.Slop) {
			ids = append(ids, docID)
		}
	}
	return e.idsToSet(ids)
}

// phraseSequenceMatches reports whether there is some starting position
// p0 in positions[0] such that for every i, some position in
// positions[i] lies within +-slop of p0+i.
func phraseSequenceMatches(positions [][]int32, slop int) bool {
	for _, p0 := range positions[0] {
		if matchesFrom(positions, p0, slop) {
			return true
		}
	}
	return false
}

func matchesFrom(positions [][]int32, p0 int32, slop int) bool {
	for i := 1; i < len(positions); i++ {
		expected := p0 + int32(i)
		found := false
		for _, p := range positions[i] {
			diff := p - expected
			if diff < 0 {
				diff = -diff
			}
			if int(diff) <= slop {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
