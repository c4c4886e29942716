package search

import (
	"fmt"

	"pdfsearch/internal/domain"
)

// Method selects the first-stage retrieval strategy.
type Method int

const (
	// MethodBM25 ranks by Okapi BM25 over the lexical index.
	MethodBM25 Method = iota
	// MethodText requires every quoted phrase and bare word of the
	// query as a substring; inclusion only, no ranking signal.
	MethodText
	// MethodVector ranks by dot product against chunk embeddings with
	// length-adjusted rescoring.
	MethodVector
)

// Rerank selects the optional second-stage reordering. Only BM25
// retrieval honors it; the other strategies embed their own final
// ordering and treat any selection as a no-op.
type Rerank int

const (
	RerankNone Rerank = iota
	// RerankSpan scores candidates by the shortest window containing
	// every query term.
	RerankSpan
	// RerankExact moves candidates containing the full query string as
	// a substring ahead of the rest, preserving relative order.
	RerankExact
	// RerankCross re-sorts by external cross-encoder scores.
	RerankCross
)

func (m Method) String() string {
	switch m {
	case MethodBM25:
		return "bm25"
	case MethodText:
		return "text"
	case MethodVector:
		return "vector"
	}
	return fmt.Sprintf("method(%d)", int(m))
}

func (r Rerank) String() string {
	switch r {
	case RerankNone:
		return "none"
	case RerankSpan:
		return "span"
	case RerankExact:
		return "exact"
	case RerankCross:
		return "cross"
	}
	return fmt.Sprintf("rerank(%d)", int(r))
}

// ParseMethod maps a config/CLI name to a Method.
func ParseMethod(name string) (Method, error) {
	switch name {
	case "bm25", "":
		return MethodBM25, nil
	case "text", "simple":
		return MethodText, nil
	case "vector", "embeddings":
		return MethodVector, nil
	}
	return MethodBM25, fmt.Errorf("unknown search method: %s", name)
}

// ParseRerank maps a config/CLI name to a Rerank.
func ParseRerank(name string) (Rerank, error) {
	switch name {
	case "none", "":
		return RerankNone, nil
	case "span":
		return RerankSpan, nil
	case "exact":
		return RerankExact, nil
	case "cross", "crossencoder":
		return RerankCross, nil
	}
	return RerankNone, fmt.Errorf("unknown rerank method: %s", name)
}

// Result is a finished search: ranked hits plus any reported
// conditions (empty query, fallbacks). Notices are messages, not
// errors; a search with notices still completed.
type Result struct {
	Hits    []domain.Hit
	Notices []string
}

// Reported condition messages. Callers distinguish these from plain
// zero-match results.
const (
	NoticeNoCorpus   = "no corpus loaded"
	NoticeEmptyQuery = "empty query"
)
