package domain

// Chunk is one page of extracted PDF text, the unit of retrieval.
// IDs are assigned by ingestion order and stay stable until the corpus
// is cleared or reloaded.
type Chunk struct {
	ID         int
	Text       string
	SourcePath string
	PageNumber int // 1-based; 0 means unknown
	Embedding  []float64
}

// Source points at one ingestible directory of corpus files.
// The source list is owned by the caller (config), not the core.
type Source struct {
	Path   string
	Label  string
	Active bool
}

// Record is one chunk record as stored in a corpus file.
type Record struct {
	Text       string
	PageNumber int
	Filename   string
}

// Unit is one corpus file worth of records plus the embeddings from its
// sibling embedding file, when one exists. Embeddings align to Records
// by position within the unit.
type Unit struct {
	Name       string
	Records    []Record
	Embeddings [][]float64
}

// Hit is a ranked search result: a chunk id with the score assigned by
// the strategy that produced it.
type Hit struct {
	ChunkID int
	Score   float64
}

// ChunkProvider enumerates the corpus units under a source path in a
// deterministic order. Per-file problems are reported as warnings so a
// single bad file never aborts ingestion.
type ChunkProvider interface {
	Enumerate(sourcePath string) (units []Unit, warnings []string, err error)
}

// Embedder converts free text into a fixed-length vector. Query and
// passage embeddings may differ (prefix-conditioned models).
type Embedder interface {
	Name() string
	EmbedQuery(text string) ([]float64, error)
	EmbedPassage(text string) ([]float64, error)
}

// CrossEncoder scores (query, candidate) pairs jointly. The returned
// slice has the same length and order as texts.
type CrossEncoder interface {
	Name() string
	Score(query string, texts []string) ([]float64, error)
}
