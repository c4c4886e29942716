package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsearch/internal/domain"
)

func TestSpanScoreMinimalWindow(t *testing.T) {
	// Occurrences: a at 0 and 3, target at 4. Best window covers
	// positions 3..4, width 2.
	score := spanScore("a b c a target b", []string{"a", "target"})
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
}

func TestSpanScoreAbsentTermIsZero(t *testing.T) {
	score := spanScore("a b c a target b", []string{"a", "missing"})
	assert.Equal(t, 0.0, score)
}

func TestSpanScoreSingleTerm(t *testing.T) {
	// One term alone always spans a single position.
	score := spanScore("x y z x", []string{"x"})
	assert.InDelta(t, 0.5, score, 1e-9)
}

func TestSpanScoreDuplicateQueryTermsCollapse(t *testing.T) {
	a := spanScore("a b target", []string{"a", "target"})
	b := spanScore("a b target", []string{"a", "a", "target"})
	assert.Equal(t, a, b)
}

func TestSpanScoreAccentAndCaseInsensitive(t *testing.T) {
	score := spanScore("Le CAFÉ ouvre", []string{"cafe", "ouvre"})
	assert.InDelta(t, 1.0/3.0, score, 1e-9)
}

func TestRerankSpanIsStableOnTies(t *testing.T) {
	store := buildStore(t,
		"nothing here",          // id 0: span score 0
		"alpha beta",            // id 1: both terms adjacent
		"still nothing",         // id 2: span score 0
	)
	hits := []domain.Hit{{ChunkID: 0, Score: 3}, {ChunkID: 1, Score: 2}, {ChunkID: 2, Score: 1}}

	out := rerankSpan(store, hits, []string{"alpha", "beta"})
	require.Len(t, out, 3)
	assert.Equal(t, 1, out[0].ChunkID)
	// Zero-score candidates keep their retrieval order.
	assert.Equal(t, 0, out[1].ChunkID)
	assert.Equal(t, 2, out[2].ChunkID)
	assert.InDelta(t, 1.0/3.0, out[0].Score, 1e-9)
}
