package index

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// wordPattern matches one word: a run of letters, digits or underscores.
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// deaccent decomposes to NFD and drops combining marks, so "café" and
// "CAFE" normalize to the same token.
var deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases text and strips diacritics. The same
// normalization is applied to indexed text and to queries; substring
// matching (boolean search, exact rerank) operates on this form.
func Normalize(text string) string {
	lower := strings.ToLower(text)
	out, _, err := transform.String(deaccent, lower)
	if err != nil {
		return lower
	}
	return out
}

// Tokenize normalizes text, splits it into words and drops stop-words.
// Used for BM25 indexing and BM25 queries.
func Tokenize(text string) []string {
	raw := wordPattern.FindAllString(Normalize(text), -1)
	if len(raw) == 0 {
		return nil
	}
	out := raw[:0]
	for _, t := range raw {
		if _, isStop := stopwords[t]; isStop {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Terms normalizes text and splits it into words, keeping stop-words.
// Span scoring and highlighting match every query word, including ones
// BM25 would discard.
func Terms(text string) []string {
	return wordPattern.FindAllString(Normalize(text), -1)
}

var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to", "of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were", "be", "been", "being", "it", "this", "that", "these", "those", "from", "up", "down", "over", "under", "again", "further", "than", "so", "such", "into", "about", "between", "through", "during", "before", "after", "above", "below", "out", "off", "own", "same", "too", "very", "can", "will", "just", "don", "should", "now",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()
