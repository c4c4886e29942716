package index

import (
	"math"
	"sort"

	"pdfsearch/internal/domain"
)

// Default Okapi BM25 parameters.
const (
	DefaultK1 = 1.5
	DefaultB  = 0.75
)

type posting struct {
	doc int
	tf  int
}

// BM25 is an inverted index over chunk text scored with Okapi BM25.
// Build it once per corpus generation; Retrieve is read-only afterwards.
type BM25 struct {
	k1, b    float64
	postings map[string][]posting
	docLen   map[int]int
	avgLen   float64
	size     int
}

// NewBM25 creates an empty index. Non-positive parameters fall back to
// the defaults.
func NewBM25(k1, b float64) *BM25 {
	if k1 <= 0 {
		k1 = DefaultK1
	}
	if b <= 0 {
		b = DefaultB
	}
	return &BM25{
		k1:       k1,
		b:        b,
		postings: make(map[string][]posting),
		docLen:   make(map[int]int),
	}
}

// Build indexes the given chunks, replacing any previous contents.
// Chunks with no tokens contribute to corpus size but match nothing.
func (x *BM25) Build(chunks []domain.Chunk) {
	x.postings = make(map[string][]posting)
	x.docLen = make(map[int]int, len(chunks))
	x.size = len(chunks)

	totalLen := 0
	for _, ch := range chunks {
		tokens := Tokenize(ch.Text)
		x.docLen[ch.ID] = len(tokens)
		totalLen += len(tokens)

		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for term, n := range tf {
			x.postings[term] = append(x.postings[term], posting{doc: ch.ID, tf: n})
		}
	}
	if x.size > 0 {
		x.avgLen = float64(totalLen) / float64(x.size)
	} else {
		x.avgLen = 0
	}
}

// Size returns the number of indexed chunks.
func (x *BM25) Size() int { return x.size }

// Retrieve scores the query against every indexed chunk and returns up
// to k hits sorted by descending score, ties broken by ascending chunk
// id. An empty query or empty index yields no hits.
func (x *BM25) Retrieve(query string, k int) []domain.Hit {
	terms := Tokenize(query)
	if len(terms) == 0 || x.size == 0 {
		return nil
	}

	scores := make(map[int]float64)
	n := float64(x.size)
	for _, term := range terms {
		plist, ok := x.postings[term]
		if !ok {
			continue
		}
		df := float64(len(plist))
		idf := math.Log(1 + (n-df+0.5)/(df+0.5))
		for _, p := range plist {
			tf := float64(p.tf)
			norm := tf + x.k1*(1-x.b+x.b*float64(x.docLen[p.doc])/x.avgLen)
			scores[p.doc] += idf * tf * (x.k1 + 1) / norm
		}
	}
	if len(scores) == 0 {
		return nil
	}

	hits := make([]domain.Hit, 0, len(scores))
	for doc, s := range scores {
		hits = append(hits, domain.Hit{ChunkID: doc, Score: s})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
