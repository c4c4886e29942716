package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfsearch/internal/domain"
)

func chunksFromTexts(texts ...string) []domain.Chunk {
	out := make([]domain.Chunk, len(texts))
	for i, txt := range texts {
		out[i] = domain.Chunk{ID: i, Text: txt}
	}
	return out
}

func TestRetrieveFavorsHigherTermFrequency(t *testing.T) {
	idx := NewBM25(0, 0)
	idx.Build(chunksFromTexts("cat dog", "dog dog dog"))

	hits := idx.Retrieve("dog", 10)
	require.Len(t, hits, 2)
	assert.Equal(t, 1, hits[0].ChunkID)
	assert.Equal(t, 0, hits[1].ChunkID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestRetrieveIsDeterministicWithIDTieBreak(t *testing.T) {
	idx := NewBM25(0, 0)
	idx.Build(chunksFromTexts("dog park", "dog park", "dog park"))

	first := idx.Retrieve("dog park", 10)
	second := idx.Retrieve("dog park", 10)
	require.Equal(t, first, second)

	require.Len(t, first, 3)
	assert.Equal(t, []int{0, 1, 2}, []int{first[0].ChunkID, first[1].ChunkID, first[2].ChunkID})
	assert.Equal(t, first[0].Score, first[1].Score)
}

func TestRetrieveMatchesAcrossCaseAndAccents(t *testing.T) {
	idx := NewBM25(0, 0)
	idx.Build(chunksFromTexts("the CAFE downtown", "nothing relevant"))

	hits := idx.Retrieve("café", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].ChunkID)
}

func TestRetrieveEmptyQueryAndCorpus(t *testing.T) {
	idx := NewBM25(0, 0)
	assert.Empty(t, idx.Retrieve("dog", 10))

	idx.Build(chunksFromTexts("cat dog"))
	assert.Empty(t, idx.Retrieve("", 10))
	assert.Empty(t, idx.Retrieve("the of and", 10))
}

func TestRetrieveTruncatesToK(t *testing.T) {
	idx := NewBM25(0, 0)
	idx.Build(chunksFromTexts("dog one", "dog two", "dog three", "dog four"))

	hits := idx.Retrieve("dog", 2)
	assert.Len(t, hits, 2)
}

func TestRetrieveIgnoresUnknownTerms(t *testing.T) {
	idx := NewBM25(0, 0)
	idx.Build(chunksFromTexts("cat dog"))

	hits := idx.Retrieve("zebra", 10)
	assert.Empty(t, hits)

	hits = idx.Retrieve("zebra dog", 10)
	require.Len(t, hits, 1)
	assert.Equal(t, 0, hits[0].ChunkID)
}
