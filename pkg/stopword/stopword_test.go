package stopword

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet_AddRemoveContains(t *testing.T) {
	s := New()
	assert.False(t, s.Contains("the"))
	s.Add("The")
	assert.True(t, s.Contains("the"))
	assert.True(t, s.Contains("THE"))
	s.Remove("the")
	assert.False(t, s.Contains("the"))
}

func TestSet_AutoDetect(t *testing.T) {
	s := New()
	freqs := map[string]int{
		"common": 80,
		"rare":   1,
	}
	s.AutoDetect(freqs, 100, 0.5)
	assert.True(t, s.Contains("common"))
	assert.False(t, s.Contains("rare"))
}

func TestSet_AutoDetect_NoDocsNoop(t *testing.T) {
	s := New()
	s.AutoDetect(map[string]int{"x": 5}, 0, 0.5)
	assert.False(t, s.Contains("x"))
}

func TestSet_S1Scenario(t *testing.T) {
	s := New()
	s.Add("the")
	assert.True(t, s.Contains("the"))
	assert.False(t, s.Contains("quick"))
}
