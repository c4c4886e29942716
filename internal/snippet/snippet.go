package snippet

import (
	"regexp"
	"strings"

	"pdfsearch/internal/index"
)

// Package snippet renders result excerpts: it picks the stretch of a
// chunk most relevant to the query and marks the query terms, leaving
// the styling itself to the caller.

var (
	sentencePattern = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
	wordPattern     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
)

// Excerpt returns up to maxSentences consecutive sentences around the
// sentence that matches the most query terms. With no query terms or no
// sentence boundaries it returns the leading sentences or the trimmed
// text.
func Excerpt(text string, queryTerms []string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = 3
	}
	sentences := sentencePattern.FindAllString(text, -1)
	if len(sentences) == 0 {
		return strings.TrimSpace(text)
	}
	for i := range sentences {
		sentences[i] = strings.TrimSpace(sentences[i])
	}

	terms := termSet(queryTerms)
	bestIdx := 0
	bestScore := -1
	for i, s := range sentences {
		score := matchCount(terms, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	start := bestIdx - (maxSentences-1)/2
	if start < 0 {
		start = 0
	}
	end := start + maxSentences
	if end > len(sentences) {
		end = len(sentences)
		start = end - maxSentences
		if start < 0 {
			start = 0
		}
	}
	return strings.Join(sentences[start:end], " ")
}

// Highlight wraps every word of text that normalizes to one of the
// query terms with the mark function. Matching is whole-word,
// case-insensitive and accent-insensitive; the original spelling is
// preserved in the output.
func Highlight(text string, queryTerms []string, mark func(string) string) string {
	terms := termSet(queryTerms)
	if len(terms) == 0 {
		return text
	}
	return wordPattern.ReplaceAllStringFunc(text, func(word string) string {
		if _, ok := terms[index.Normalize(word)]; ok {
			return mark(word)
		}
		return word
	})
}

func termSet(queryTerms []string) map[string]struct{} {
	m := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		if t != "" {
			m[index.Normalize(t)] = struct{}{}
		}
	}
	return m
}

func matchCount(terms map[string]struct{}, sentence string) int {
	score := 0
	seen := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(sentence, -1) {
		n := index.Normalize(w)
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		if _, ok := terms[n]; ok {
			score++
		}
	}
	return score
}
