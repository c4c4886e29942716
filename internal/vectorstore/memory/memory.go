package memory

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"unicode/utf8"

	"pdfsearch/internal/domain"
)

// Store is an in-memory brute-force dot-product scorer over the chunks
// that carry an embedding. Corpus sizes here are desktop-scale, so no
// approximate index is kept; every query scores every vector.
type Store struct {
	mu        sync.RWMutex
	dimension int
	ids       []int
	vectors   [][]float64
	textLens  []int
}

// New returns an empty store.
func New() *Store { return &Store{} }

// Build replaces the store contents with the embeddings of the given
// chunks. Chunks with empty text or without an embedding are skipped.
// The corpus-wide dimensionality is fixed by the first vector seen;
// later vectors of a different length are rejected.
func (s *Store) Build(chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = 0
	s.ids = nil
	s.vectors = nil
	s.textLens = nil

	for i := range chunks {
		ch := &chunks[i]
		if len(ch.Embedding) == 0 || ch.Text == "" {
			continue
		}
		if s.dimension == 0 {
			s.dimension = len(ch.Embedding)
		} else if len(ch.Embedding) != s.dimension {
			return fmt.Errorf("embedding dimension mismatch for chunk %d: got %d, corpus uses %d",
				ch.ID, len(ch.Embedding), s.dimension)
		}
		s.ids = append(s.ids, ch.ID)
		s.vectors = append(s.vectors, ch.Embedding)
		s.textLens = append(s.textLens, utf8.RuneCountInString(ch.Text))
	}
	return nil
}

// Len returns the number of stored vectors.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Dimension returns the corpus-wide vector length, 0 when empty.
func (s *Store) Dimension() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimension
}

// ScoreAll returns the raw dot product of the query against every
// stored vector, in id order. A query of the wrong length is a contract
// violation and aborts with an error.
func (s *Store) ScoreAll(query []float64) ([]domain.Hit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.ids) == 0 {
		return nil, nil
	}
	if len(query) != s.dimension {
		return nil, fmt.Errorf("query dimension %d does not match corpus dimension %d",
			len(query), s.dimension)
	}
	hits := make([]domain.Hit, len(s.ids))
	for i, vec := range s.vectors {
		hits[i] = domain.Hit{ChunkID: s.ids[i], Score: dot(vec, query)}
	}
	return hits, nil
}

// TopK sorts the raw scores descending (ties by ascending chunk id)
// and returns the first k.
func (s *Store) TopK(query []float64, k int) ([]domain.Hit, error) {
	hits, err := s.ScoreAll(query)
	if err != nil {
		return nil, err
	}
	sortHits(hits)
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// TopKAdjusted truncates to the top k by raw dot product, then rescales
// each survivor by the square root of its text length in characters and
// re-sorts. Dense embeddings favor very short chunks; the adjustment
// rewards longer, more substantive pages within the candidate window
// only, so its cost is bounded by k rather than corpus size.
func (s *Store) TopKAdjusted(query []float64, k int) ([]domain.Hit, error) {
	hits, err := s.TopK(query, k)
	if err != nil || len(hits) == 0 {
		return hits, err
	}
	s.mu.RLock()
	lenByID := make(map[int]int, len(s.ids))
	for i, id := range s.ids {
		lenByID[id] = s.textLens[i]
	}
	s.mu.RUnlock()

	for i := range hits {
		hits[i].Score *= math.Sqrt(float64(lenByID[hits[i].ChunkID]))
	}
	sortHits(hits)
	return hits, nil
}

func sortHits(hits []domain.Hit) {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
