package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pdfsearch/internal/config"
	"pdfsearch/internal/crossencoder"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/embedding/openai"
	"pdfsearch/internal/index"
	"pdfsearch/internal/provider/jsondir"
	"pdfsearch/internal/search"
	"pdfsearch/internal/snippet"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath    string
		methodName string
		rerankName string
		topK       int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	flag.StringVar(&methodName, "method", "", "Search method: bm25, text, vector (default from config)")
	flag.StringVar(&rerankName, "rerank", "", "Reranker: none, span, exact, cross (default from config)")
	flag.IntVar(&topK, "k", 10, "Number of results to print")
	flag.Parse()
	query := strings.Join(flag.Args(), " ")
	if strings.TrimSpace(query) == "" {
		fmt.Println("Usage: pdfsearch-cli [--config=config.yaml] [--method=bm25] [--rerank=none] [-k=10] query terms...")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if methodName == "" {
		methodName = cfg.Search.Method
	}
	if rerankName == "" {
		rerankName = cfg.Search.Rerank
	}
	method, err := search.ParseMethod(methodName)
	if err != nil {
		log.Fatalf("%v", err)
	}
	rerank, err := search.ParseRerank(rerankName)
	if err != nil {
		log.Fatalf("%v", err)
	}

	engine := assembleEngine(cfg)
	warnings, count, err := engine.Load(cfg.DomainSources())
	if err != nil {
		log.Fatalf("corpus load failed: %v", err)
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
	if count == 0 {
		log.Fatalf("no chunks loaded; check the sources in your config")
	}

	res, err := engine.Search(query, method, rerank)
	if err != nil {
		log.Fatalf("search failed: %v", err)
	}
	for _, n := range res.Notices {
		fmt.Fprintln(os.Stderr, "notice:", n)
	}

	terms := index.Terms(query)
	if topK > 0 && len(res.Hits) > topK {
		res.Hits = res.Hits[:topK]
	}
	for i, hit := range res.Hits {
		ch, ok := engine.Chunk(hit.ChunkID)
		if !ok {
			continue
		}
		page := ""
		if ch.PageNumber > 0 {
			page = fmt.Sprintf(" p.%d", ch.PageNumber)
		}
		fmt.Printf("%2d. %-40s%s  score=%.4f\n", i+1, filepath.Base(ch.SourcePath), page, hit.Score)
		excerpt := snippet.Excerpt(ch.Text, terms, 2)
		fmt.Printf("    %s\n", snippet.Highlight(excerpt, terms, func(w string) string { return "[" + w + "]" }))
	}
	if len(res.Hits) == 0 {
		fmt.Println("No results found.")
	}
}

func assembleEngine(cfg *config.AppConfig) *search.Engine {
	var emb domain.Embedder
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "notice: embedder unavailable:", err)
		} else {
			emb = client
		}
	}
	var enc domain.CrossEncoder
	if cfg.CrossEncoder.BaseURL != "" {
		client, err := crossencoder.NewClient(crossencoder.Config{
			BaseURL:   cfg.CrossEncoder.BaseURL,
			APIKeyEnv: cfg.CrossEncoder.APIKeyEnv,
			Model:     cfg.CrossEncoder.Model,
			Timeout:   time.Duration(cfg.CrossEncoder.TimeoutSecs) * time.Second,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "notice: cross-encoder unavailable:", err)
		} else {
			enc = client
		}
	}
	return search.NewEngine(jsondir.New(), search.Options{
		MaxResults: cfg.Search.MaxResults,
		K1:         cfg.Search.K1,
		B:          cfg.Search.B,
		Embedder:   emb,
		Encoder:    enc,
	})
}
