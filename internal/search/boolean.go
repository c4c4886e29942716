package search

import (
	"regexp"
	"strings"

	"pdfsearch/internal/corpus"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/index"
)

// simpleQueryPattern splits a raw query into quoted phrases and bare
// words: a phrase is any run between double quotes, everything else
// splits on whitespace.
var simpleQueryPattern = regexp.MustCompile(`"([^"]+)"|(\S+)`)

// parseSimpleQuery returns the quoted phrases and unquoted words of a
// raw query, in input order.
func parseSimpleQuery(raw string) (phrases, words []string) {
	for _, m := range simpleQueryPattern.FindAllStringSubmatch(raw, -1) {
		switch {
		case m[1] != "":
			phrases = append(phrases, m[1])
		case m[2] != "":
			words = append(words, m[2])
		}
	}
	return phrases, words
}

// booleanRetrieve returns, in ascending chunk-id order, every chunk
// whose normalized text contains all quoted phrases and all bare words
// as substrings. Scores are a constant 1.0; the only signal is
// inclusion. The result is capped at k.
func booleanRetrieve(store *corpus.Store, raw string, k int) []domain.Hit {
	phrases, words := parseSimpleQuery(raw)
	for i := range phrases {
		phrases[i] = index.Normalize(phrases[i])
	}
	for i := range words {
		words[i] = index.Normalize(words[i])
	}

	var hits []domain.Hit
	for _, ch := range store.Chunks() {
		text := index.Normalize(ch.Text)
		if !containsAll(text, phrases) || !containsAll(text, words) {
			continue
		}
		hits = append(hits, domain.Hit{ChunkID: ch.ID, Score: 1.0})
		if k > 0 && len(hits) == k {
			break
		}
	}
	return hits
}

func containsAll(text string, needles []string) bool {
	for _, n := range needles {
		if !strings.Contains(text, n) {
			return false
		}
	}
	return true
}
