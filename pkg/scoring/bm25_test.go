package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_ZeroDocFreqIsZero(t *testing.T) {
	s := New()
	assert.Equal(t, 0.0, s.Score("body", 3, 0, 100, 10, 12.0))
}

func TestScore_HigherTFScoresHigher(t *testing.T) {
	s := New()
	low := s.Score("body", 1, 10, 100, 10, 12.0)
	high := s.Score("body", 5, 10, 100, 10, 12.0)
	assert.Greater(t, high, low)
}

func TestScore_RarerTermScoresHigher(t *testing.T) {
	s := New()
	common := s.Score("body", 2, 80, 100, 10, 12.0)
	rare := s.Score("body", 2, 2, 100, 10, 12.0)
	assert.Greater(t, rare, common)
}

func TestScore_FieldBoostMultiplies(t *testing.T) {
	s := New()
	s.Boosts = map[string]float64{"title": 2.0}
	plain := s.Score("body", 2, 10, 100, 10, 12.0)
	boosted := s.Score("title", 2, 10, 100, 10, 12.0)
	assert.InDelta(t, plain*2, boosted, 1e-9)
}

func TestScore_NeverNegative(t *testing.T) {
	s := New()
	score := s.Score("body", 1, 99, 100, 1000, 12.0)
	assert.GreaterOrEqual(t, score, 0.0)
}

func TestNewWithParams_ValidatesK1AndB(t *testing.T) {
	_, err := NewWithParams(-1, 0.75, nil)
	assert.Error(t, err)

	_, err = NewWithParams(1.2, 1.5, nil)
	assert.Error(t, err)

	s, err := NewWithParams(1.2, 0.75, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.2, s.K1)
}

func TestScore_AvgDocLengthClampedToOne(t *testing.T) {
	s := New()
	score := s.Score("body", 1, 1, 1, 1, 0.0)
	assert.Greater(t, score, 0.0)
}
