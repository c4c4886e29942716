package corpus

import (
	"fmt"
	"strings"

	"pdfsearch/internal/domain"
)

// Store aggregates chunks from every active source into one
// order-stable, in-memory collection. Chunk ids are positions in the
// ingestion order, so they stay valid until the next Load or Clear.
//
// A Store is not safe for concurrent mutation; the search engine builds
// a fresh Store per generation and swaps it in whole.
type Store struct {
	chunks []domain.Chunk
}

// New returns an empty store.
func New() *Store { return &Store{} }

// Load ingests every active source via the provider. Missing sources
// and per-unit problems are collected as warnings; ingestion is
// best-effort and continues past them. Returns the warnings and the
// number of chunks loaded. Any previous contents are dropped first.
func (s *Store) Load(sources []domain.Source, provider domain.ChunkProvider) ([]string, int) {
	s.chunks = nil
	var warnings []string

	for _, src := range sources {
		if !src.Active {
			continue
		}
		units, unitWarnings, err := provider.Enumerate(src.Path)
		warnings = append(warnings, unitWarnings...)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("source not found: %s", src.Path))
			continue
		}
		for _, unit := range units {
			s.ingestUnit(unit, &warnings)
		}
	}
	return warnings, len(s.chunks)
}

// ingestUnit appends the unit's records and attaches embeddings by
// position within the unit. On a record-count mismatch only the first
// min(records, embeddings) positions get vectors and one warning is
// emitted for the unit.
func (s *Store) ingestUnit(unit domain.Unit, warnings *[]string) {
	base := len(s.chunks)
	for _, rec := range unit.Records {
		s.chunks = append(s.chunks, domain.Chunk{
			ID:         len(s.chunks),
			Text:       rec.Text,
			SourcePath: rec.Filename,
			PageNumber: rec.PageNumber,
		})
	}
	if unit.Embeddings == nil {
		return
	}
	n := len(unit.Records)
	if len(unit.Embeddings) != n {
		*warnings = append(*warnings, fmt.Sprintf(
			"record mismatch in %s: %d text records vs %d embedding records",
			unit.Name, n, len(unit.Embeddings)))
		if len(unit.Embeddings) < n {
			n = len(unit.Embeddings)
		}
	}
	for i := 0; i < n; i++ {
		s.chunks[base+i].Embedding = unit.Embeddings[i]
	}
}

// Clear drops all chunks. Derived indices built from this store are
// stale afterwards and must be rebuilt by the caller.
func (s *Store) Clear() { s.chunks = nil }

// Len returns the number of chunks in the store.
func (s *Store) Len() int { return len(s.chunks) }

// Chunks returns the backing slice in id order. Callers must not
// mutate it.
func (s *Store) Chunks() []domain.Chunk { return s.chunks }

// Get returns the chunk with the given id.
func (s *Store) Get(id int) (domain.Chunk, bool) {
	if id < 0 || id >= len(s.chunks) {
		return domain.Chunk{}, false
	}
	return s.chunks[id], true
}

// HasEmbeddings reports whether any chunk carries an embedding.
func (s *Store) HasEmbeddings() bool {
	for i := range s.chunks {
		if len(s.chunks[i].Embedding) > 0 {
			return true
		}
	}
	return false
}

// Text returns the chunk text for id, or "" when the id is unknown.
func (s *Store) Text(id int) string {
	ch, ok := s.Get(id)
	if !ok {
		return ""
	}
	return ch.Text
}

// String summarizes the store for status lines.
func (s *Store) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d chunks", len(s.chunks))
	if s.HasEmbeddings() {
		b.WriteString(" (with embeddings)")
	}
	return b.String()
}
