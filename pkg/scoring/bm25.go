// Package scoring implements the BM25 relevance scorer (spec §4.8).
// Grounded on pkg/resorank/math.go's CalculateIDF/Saturate/
// NormalizedTermFrequency: the same BM25 algebra, repackaged to the
// spec's literal per-call formula (df, idf, dl/avgdl folded into one
// Score call) instead of resorank's three-function pipeline, since this
// engine has no entropy/proximity extensions to compose in.
package scoring

import (
	"math"

	"github.com/Inquir-search/search-engine-sub000/pkg/engineerr"
)

// DefaultK1 and DefaultB are the spec's BM25 defaults.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// Scorer computes BM25 scores given term statistics supplied by the
// caller (the inverted index and document store own those; this package
// only does the arithmetic).
type Scorer struct {
	K1     float64
	B      float64
	Boosts map[string]float64 // field -> multiplier; absent field defaults to 1
}

// New builds a Scorer with the spec defaults and no per-field boosts.
func New() *Scorer {
	return &Scorer{K1: DefaultK1, B: DefaultB}
}

// NewWithParams validates k1 >= 0 and b in [0,1] (spec §7 ConfigError).
func NewWithParams(k1, b float64, boosts map[string]float64) (*Scorer, error) {
	if k1 < 0 {
		return nil, engineerr.NewConfigError("k1", "must be >= 0")
	}
	if b < 0 || b > 1 {
		return nil, engineerr.NewConfigError("b", "must be in [0,1]")
	}
	return &Scorer{K1: k1, B: b, Boosts: boosts}, nil
}

func (s *Scorer) boost(field string) float64 {
	if s.Boosts == nil {
		return 1
	}
	if v, ok := s.Boosts[field]; ok {
		return v
	}
	return 1
}

// Score computes the BM25 contribution of one (field, term) occurrence:
// tf occurrences in a document of length dl, against a corpus of N total
// documents where the term appears in df of them and the average
// document length is avgdl.
func (s *Scorer) Score(field string, tf, df, totalDocs, docLen int, avgDocLength float64) float64 {
	if df == 0 {
		return 0
	}
	n := float64(totalDocs)
	dfF := float64(df)
	idf := math.Log((n-dfF+0.5)/(dfF+0.5) + 1)

	avgdl := avgDocLength
	if avgdl < 1 {
		avgdl = 1
	}
	dl := float64(docLen)

	numerator := float64(tf) * (s.K1 + 1)
	denominator := float64(tf) + s.K1*(1-s.B+s.B*dl/avgdl)
	if denominator == 0 {
		return 0
	}

	score := s.boost(field) * idf * (numerator / denominator)
	if score < 0 {
		return 0
	}
	return score
}
