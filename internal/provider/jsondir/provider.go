package jsondir

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"pdfsearch/internal/domain"
)

// Provider reads page-chunk corpora produced by the PDF extraction
// pipeline: each *.json file in a directory holds an array of
// {text, page_number, filename} records, and an optional sibling
// <base>.emb file mirrors the array with an added embedding field.
type Provider struct{}

// New creates a jsondir provider.
func New() *Provider { return &Provider{} }

type record struct {
	Text       string `json:"text"`
	PageNumber int    `json:"page_number"`
	Filename   string `json:"filename"`
}

type embRecord struct {
	Embedding []float64 `json:"embedding"`
}

// Enumerate lists *.json files under sourcePath in ascending file-name
// order and returns one unit per readable file. Unreadable or malformed
// files become warnings, not errors; only a missing directory is an
// error.
func (p *Provider) Enumerate(sourcePath string) ([]domain.Unit, []string, error) {
	entries, err := os.ReadDir(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading source %s: %w", sourcePath, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".json") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var units []domain.Unit
	var warnings []string
	for _, name := range names {
		path := filepath.Join(sourcePath, name)
		unit, err := p.readUnit(path)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("error reading %s: %v", path, err))
			continue
		}
		units = append(units, unit)
	}
	return units, warnings, nil
}

func (p *Provider) readUnit(path string) (domain.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Unit{}, err
	}
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.Unit{}, err
	}

	dir := filepath.Dir(path)
	unit := domain.Unit{Name: filepath.Base(path)}
	for _, rec := range records {
		filename := rec.Filename
		if filename != "" && !filepath.IsAbs(filename) {
			filename = filepath.Join(dir, filename)
		}
		unit.Records = append(unit.Records, domain.Record{
			Text:       rec.Text,
			PageNumber: rec.PageNumber,
			Filename:   filename,
		})
	}

	unit.Embeddings = readEmbeddings(embPath(path))
	return unit, nil
}

// readEmbeddings loads the sibling .emb file. A missing or unreadable
// file means the unit simply carries no vectors.
func readEmbeddings(path string) [][]float64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var records []embRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	out := make([][]float64, len(records))
	for i, rec := range records {
		out[i] = rec.Embedding
	}
	return out
}

func embPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".emb"
}
