package memory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsearch/internal/domain"
)

func TestBuildSkipsChunksWithoutTextOrEmbedding(t *testing.T) {
	s := New()
	err := s.Build([]domain.Chunk{
		{ID: 0, Text: "kept", Embedding: []float64{1, 0}},
		{ID: 1, Text: "", Embedding: []float64{1, 1}},
		{ID: 2, Text: "no vector"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Dimension())
}

func TestBuildRejectsMixedDimensions(t *testing.T) {
	s := New()
	err := s.Build([]domain.Chunk{
		{ID: 0, Text: "a", Embedding: []float64{1, 0}},
		{ID: 1, Text: "b", Embedding: []float64{1}},
	})
	assert.Error(t, err)
}

func TestScoreAllComputesDotProducts(t *testing.T) {
	s := New()
	require.NoError(t, s.Build([]domain.Chunk{
		{ID: 0, Text: "aa", Embedding: []float64{1, 0}},
		{ID: 3, Text: "bb", Embedding: []float64{0.5, 0.5}},
	}))

	hits, err := s.ScoreAll([]float64{1, 0})
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.Equal(t, 3, hits[1].ChunkID)
	assert.InDelta(t, 0.5, hits[1].Score, 1e-9)
}

func TestScoreAllRejectsWrongQueryDimension(t *testing.T) {
	s := New()
	require.NoError(t, s.Build([]domain.Chunk{
		{ID: 0, Text: "aa", Embedding: []float64{1, 0}},
	}))

	_, err := s.ScoreAll([]float64{1, 0, 0})
	assert.Error(t, err)
}

func TestTopKSortsDescendingWithIDTieBreak(t *testing.T) {
	s := New()
	require.NoError(t, s.Build([]domain.Chunk{
		{ID: 2, Text: "x", Embedding: []float64{0.5}},
		{ID: 0, Text: "x", Embedding: []float64{0.5}},
		{ID: 1, Text: "x", Embedding: []float64{0.9}},
	}))

	hits, err := s.TopK([]float64{1}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].ChunkID)
	assert.Equal(t, 0, hits[1].ChunkID)
	assert.Equal(t, 2, hits[2].ChunkID)

	hits, err = s.TopK([]float64{1}, 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestTopKAdjustedRewardsLongerText(t *testing.T) {
	s := New()
	require.NoError(t, s.Build([]domain.Chunk{
		{ID: 0, Text: "a", Embedding: []float64{1}},                 // raw 1.0, adjusted 1.0
		{ID: 1, Text: "abcdefghi", Embedding: []float64{0.5}},       // raw 0.5, adjusted 1.5
		{ID: 2, Text: "ab", Embedding: []float64{0.1}},              // raw 0.1, adjusted ~0.14
	}))

	hits, err := s.TopKAdjusted([]float64{1}, 10)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, 1, hits[0].ChunkID)
	assert.InDelta(t, 0.5*math.Sqrt(9), hits[0].Score, 1e-9)
	assert.Equal(t, 0, hits[1].ChunkID)
}

func TestTopKAdjustedOnlyPermutesWithinWindow(t *testing.T) {
	// The long chunk ranks last by raw score; with k=2 it never enters
	// the window, so the adjustment cannot resurrect it.
	s := New()
	require.NoError(t, s.Build([]domain.Chunk{
		{ID: 0, Text: "aa", Embedding: []float64{1.0}},
		{ID: 1, Text: "bb", Embedding: []float64{0.9}},
		{ID: 2, Text: "a very long chunk of text indeed", Embedding: []float64{0.2}},
	}))

	hits, err := s.TopKAdjusted([]float64{1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	for _, h := range hits {
		assert.NotEqual(t, 2, h.ChunkID)
	}
}

func TestEmptyStoreScoresNothing(t *testing.T) {
	s := New()
	hits, err := s.ScoreAll([]float64{1})
	require.NoError(t, err)
	assert.Empty(t, hits)
}
