package search

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"pdfsearch/internal/corpus"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/index"
	"pdfsearch/internal/vectorstore/memory"
)

// DefaultMaxResults bounds every first-stage candidate list, and with
// it the cost of any reranker.
const DefaultMaxResults = 50

// ErrLoadInProgress is returned when Load is called while another load
// is still running. One ingestion at a time.
var ErrLoadInProgress = errors.New("corpus load already in progress")

// Options configure an Engine. Zero values fall back to defaults;
// Embedder and Encoder may be nil, which disables vector retrieval and
// cross-encoder reranking respectively (with fallback notices).
type Options struct {
	MaxResults int
	K1         float64
	B          float64
	Embedder   domain.Embedder
	Encoder    domain.CrossEncoder
}

// generation is one immutable corpus + derived-index set. Searches read
// whichever generation is current; loads build a complete replacement
// and swap it in, so an index can never disagree with its corpus.
type generation struct {
	store   *corpus.Store
	index   *index.BM25
	vectors *memory.Store
}

// Engine owns the corpus generations and composes a retrieval strategy
// with an optional reranker per search.
type Engine struct {
	provider   domain.ChunkProvider
	embedder   domain.Embedder
	encoder    domain.CrossEncoder
	maxResults int
	k1, b      float64

	mu     sync.RWMutex // guards gen
	gen    *generation
	loadMu sync.Mutex // held for the duration of one Load
}

// NewEngine creates an engine that ingests through the given provider.
func NewEngine(provider domain.ChunkProvider, opts Options) *Engine {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &Engine{
		provider:   provider,
		embedder:   opts.Embedder,
		encoder:    opts.Encoder,
		maxResults: maxResults,
		k1:         opts.K1,
		b:          opts.B,
	}
}

// Load ingests the active sources into a fresh generation and swaps it
// in on success. A failed load leaves the previous generation intact
// and usable. Warnings (missing sources, malformed files, record
// mismatches) accompany whatever was loaded. Only one load may run at a
// time; a concurrent call fails fast with ErrLoadInProgress.
func (e *Engine) Load(sources []domain.Source) ([]string, int, error) {
	if !e.loadMu.TryLock() {
		return nil, 0, ErrLoadInProgress
	}
	defer e.loadMu.Unlock()

	store := corpus.New()
	warnings, count := store.Load(sources, e.provider)

	idx := index.NewBM25(e.k1, e.b)
	idx.Build(store.Chunks())

	vectors := memory.New()
	if err := vectors.Build(store.Chunks()); err != nil {
		return warnings, 0, fmt.Errorf("building vector store: %w", err)
	}

	e.mu.Lock()
	e.gen = &generation{store: store, index: idx, vectors: vectors}
	e.mu.Unlock()
	return warnings, count, nil
}

// Clear drops the current generation; subsequent searches report the
// no-corpus condition until the next Load.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.gen = nil
	e.mu.Unlock()
}

// Chunk resolves a chunk id against the current generation, for result
// display.
func (e *Engine) Chunk(id int) (domain.Chunk, bool) {
	gen := e.current()
	if gen == nil {
		return domain.Chunk{}, false
	}
	return gen.store.Get(id)
}

// CorpusSize returns the number of chunks in the current generation.
func (e *Engine) CorpusSize() int {
	gen := e.current()
	if gen == nil {
		return 0
	}
	return gen.store.Len()
}

// HasEmbeddings reports whether vector retrieval has anything to score.
func (e *Engine) HasEmbeddings() bool {
	gen := e.current()
	return gen != nil && gen.vectors.Len() > 0
}

func (e *Engine) current() *generation {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.gen
}

// Search runs one retrieval strategy and, for BM25, the selected
// reranker over the truncated candidate list. Empty corpus and empty
// query are reported conditions in the result, not errors. Only
// contract violations (a query vector of the wrong dimensionality, a
// misbehaving cross-encoder) surface as errors.
func (e *Engine) Search(query string, method Method, rerank Rerank) (Result, error) {
	gen := e.current()
	if gen == nil || gen.store.Len() == 0 {
		return Result{Notices: []string{NoticeNoCorpus}}, nil
	}
	raw := strings.TrimSpace(query)
	if raw == "" {
		return Result{Notices: []string{NoticeEmptyQuery}}, nil
	}

	switch method {
	case MethodText:
		// Reranking is not applicable: inclusion order is final.
		return Result{Hits: booleanRetrieve(gen.store, raw, e.maxResults)}, nil
	case MethodVector:
		return e.vectorSearch(gen, raw)
	default:
		return e.bm25Search(gen, raw, rerank)
	}
}

func (e *Engine) bm25Search(gen *generation, raw string, rerank Rerank) (Result, error) {
	hits := gen.index.Retrieve(raw, e.maxResults)
	res := Result{Hits: hits}
	if len(hits) == 0 {
		return res, nil
	}

	switch rerank {
	case RerankSpan:
		res.Hits = rerankSpan(gen.store, hits, index.Terms(raw))
	case RerankExact:
		res.Hits = rerankExact(gen.store, hits, raw)
	case RerankCross:
		if e.encoder == nil {
			res.Notices = append(res.Notices, "no cross-encoder configured; keeping retrieval order")
			return res, nil
		}
		reranked, err := rerankCross(gen.store, hits, raw, e.encoder)
		if err != nil {
			res.Notices = append(res.Notices, fmt.Sprintf("cross-encoder unavailable (%v); keeping retrieval order", err))
			return res, nil
		}
		res.Hits = reranked
	}
	return res, nil
}

// vectorSearch runs length-adjusted dot-product retrieval, degrading to
// plain BM25 with a notice when the corpus has no embeddings or no
// embedder is configured.
func (e *Engine) vectorSearch(gen *generation, raw string) (Result, error) {
	if gen.vectors.Len() == 0 {
		res, err := e.bm25Search(gen, raw, RerankNone)
		res.Notices = append(res.Notices, "no embeddings in corpus; falling back to BM25")
		return res, err
	}
	if e.embedder == nil {
		res, err := e.bm25Search(gen, raw, RerankNone)
		res.Notices = append(res.Notices, "no embedder configured; falling back to BM25")
		return res, err
	}
	vec, err := e.embedder.EmbedQuery(raw)
	if err != nil {
		res, bmErr := e.bm25Search(gen, raw, RerankNone)
		res.Notices = append(res.Notices, fmt.Sprintf("query embedding failed (%v); falling back to BM25", err))
		return res, bmErr
	}
	hits, err := gen.vectors.TopKAdjusted(vec, e.maxResults)
	if err != nil {
		return Result{}, err
	}
	return Result{Hits: hits}, nil
}
