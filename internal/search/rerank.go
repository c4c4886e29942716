package search

import (
	"fmt"
	"sort"
	"strings"

	"pdfsearch/internal/corpus"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/index"
)

// rerankSpan replaces each candidate's score with its minimal-span
// score and re-sorts descending. Candidates with equal span scores keep
// their retrieval order.
func rerankSpan(store *corpus.Store, hits []domain.Hit, queryTerms []string) []domain.Hit {
	out := make([]domain.Hit, len(hits))
	for i, h := range hits {
		out[i] = domain.Hit{ChunkID: h.ChunkID, Score: spanScore(store.Text(h.ChunkID), queryTerms)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// rerankExact stably partitions the candidates: chunks whose normalized
// text contains the normalized full query as a substring come first,
// then the rest, both halves in their original order. Scores are left
// untouched.
func rerankExact(store *corpus.Store, hits []domain.Hit, raw string) []domain.Hit {
	query := index.Normalize(raw)
	matched := make([]domain.Hit, 0, len(hits))
	var unmatched []domain.Hit
	for _, h := range hits {
		if strings.Contains(index.Normalize(store.Text(h.ChunkID)), query) {
			matched = append(matched, h)
		} else {
			unmatched = append(unmatched, h)
		}
	}
	return append(matched, unmatched...)
}

// rerankCross asks the cross-encoder to score every (query, candidate)
// pair and re-sorts descending by that score. This is the one reranker
// that needs the raw untokenized query.
func rerankCross(store *corpus.Store, hits []domain.Hit, raw string, encoder domain.CrossEncoder) ([]domain.Hit, error) {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = store.Text(h.ChunkID)
	}
	scores, err := encoder.Score(raw, texts)
	if err != nil {
		return nil, err
	}
	if len(scores) != len(hits) {
		return nil, fmt.Errorf("cross-encoder returned %d scores for %d candidates", len(scores), len(hits))
	}
	out := make([]domain.Hit, len(hits))
	for i, h := range hits {
		out[i] = domain.Hit{ChunkID: h.ChunkID, Score: scores[i]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out, nil
}
