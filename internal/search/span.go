package search

import (
	"sort"

	"pdfsearch/internal/index"
)

// spanScore computes the minimal-span proximity score of text against
// the distinct query terms: 1/(w+1) where w is the width in word
// positions of the shortest window containing at least one occurrence
// of every term. A term absent from the text scores exactly 0.
func spanScore(text string, queryTerms []string) float64 {
	terms := make(map[string]struct{}, len(queryTerms))
	for _, t := range queryTerms {
		terms[t] = struct{}{}
	}
	if len(terms) == 0 {
		return 0
	}

	words := index.Terms(text)
	type occurrence struct {
		pos  int
		term string
	}
	var occs []occurrence
	seen := make(map[string]bool, len(terms))
	for pos, w := range words {
		if _, ok := terms[w]; ok {
			occs = append(occs, occurrence{pos: pos, term: w})
			seen[w] = true
		}
	}
	if len(seen) < len(terms) {
		return 0
	}
	// Occurrences are generated in position order already; keep the
	// sort to make the two-pointer precondition explicit.
	sort.Slice(occs, func(i, j int) bool { return occs[i].pos < occs[j].pos })

	bestSpan := len(words) + 1
	covered := make(map[string]int, len(terms))
	left := 0
	for right := 0; right < len(occs); right++ {
		covered[occs[right].term] = occs[right].pos
		for len(covered) == len(terms) {
			span := maxPos(covered) - minPos(covered) + 1
			if span < bestSpan {
				bestSpan = span
			}
			leftOcc := occs[left]
			if covered[leftOcc.term] == leftOcc.pos {
				delete(covered, leftOcc.term)
			}
			left++
		}
	}
	return 1.0 / float64(bestSpan+1)
}

func minPos(m map[string]int) int {
	first := true
	min := 0
	for _, v := range m {
		if first || v < min {
			min = v
			first = false
		}
	}
	return min
}

func maxPos(m map[string]int) int {
	first := true
	max := 0
	for _, v := range m {
		if first || v > max {
			max = v
			first = false
		}
	}
	return max
}
