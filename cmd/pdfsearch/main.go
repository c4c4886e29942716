package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"pdfsearch/internal/config"
	"pdfsearch/internal/crossencoder"
	"pdfsearch/internal/domain"
	"pdfsearch/internal/embedding/openai"
	"pdfsearch/internal/provider/jsondir"
	"pdfsearch/internal/search"
	"pdfsearch/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/pdfsearch/config.yaml if not provided)")
	flag.Parse()

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

	engine, startupNotices := assembleEngine(cfg)

	status := "Ready to search."
	sources := cfg.DomainSources()
	if len(sources) == 0 {
		status = "No sources configured. Add sources to the config file."
	} else {
		warnings, count, err := engine.Load(sources)
		if err != nil {
			log.Fatalf("corpus load failed: %v", err)
		}
		status = fmt.Sprintf("Loaded %d chunks. Ready to search.", count)
		startupNotices = append(startupNotices, warnings...)
	}
	if len(startupNotices) > 0 {
		status += " (" + strings.Join(startupNotices, "; ") + ")"
	}

	method, err := search.ParseMethod(cfg.Search.Method)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	rerank, err := search.ParseRerank(cfg.Search.Rerank)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	reload := func() ([]string, int, error) {
		return engine.Load(cfg.DomainSources())
	}
	m := tui.New(engine, reload, method, rerank, status)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}

// assembleEngine wires the configured providers into a search engine.
// Unavailable providers are reported, not fatal: the engine degrades to
// lexical search.
func assembleEngine(cfg *config.AppConfig) (*search.Engine, []string) {
	var notices []string

	var emb domain.Embedder
	switch cfg.Embedder.Type {
	case "none", "":
	case "openai":
		if cfg.Embedder.OpenAI == nil {
			log.Fatalf("openai embedder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:   cfg.Embedder.OpenAI.BaseURL,
			APIKeyEnv: cfg.Embedder.OpenAI.APIKeyEnv,
			Model:     cfg.Embedder.OpenAI.Model,
			Timeout:   time.Duration(cfg.Embedder.OpenAI.TimeoutSecs) * time.Second,
		})
		if err != nil {
			notices = append(notices, fmt.Sprintf("embedder unavailable: %v", err))
		} else {
			emb = client
		}
	default:
		log.Fatalf("unknown embedder: %s", cfg.Embedder.Type)
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
			notices = append(notices, fmt.Sprintf("cross-encoder unavailable: %v", err))
		} else {
			enc = client
		}
	}

	engine := search.NewEngine(jsondir.New(), search.Options{
		MaxResults: cfg.Search.MaxResults,
		K1:         cfg.Search.K1,
		B:          cfg.Search.B,
		Embedder:   emb,
		Encoder:    enc,
	})
	return engine, notices
}
