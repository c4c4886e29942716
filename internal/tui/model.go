package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pdfsearch/internal/domain"
	"pdfsearch/internal/index"
	"pdfsearch/internal/search"
	"pdfsearch/internal/snippet"
)

// SearchPort is the TUI-facing subset of the search engine.
type SearchPort interface {
	Search(query string, method search.Method, rerank search.Rerank) (search.Result, error)
	Chunk(id int) (domain.Chunk, bool)
	CorpusSize() int
	HasEmbeddings() bool
}

// ReloadFunc re-ingests the configured sources and returns load
// warnings and the new chunk count.
type ReloadFunc func() ([]string, int, error)

// Model is the Bubble Tea model for the search application.
type Model struct {
	engine    SearchPort
	reload    ReloadFunc
	input     textinput.Model
	viewport  viewport.Model
	hits      []domain.Hit
	notices   []string
	cursor    int
	method    search.Method
	rerank    search.Rerank
	status    string
	lastQuery string
	ready     bool
}

// New creates a TUI model with the given startup method and reranker.
func New(engine SearchPort, reload ReloadFunc, method search.Method, rerank search.Rerank, status string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		engine:   engine,
		reload:   reload,
		input:    ti,
		viewport: vp,
		method:   method,
		rerank:   rerank,
		status:   status,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header, selector line, query box, status
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.runSearch(), nil
		case "down":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor + 1) % len(m.hits)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.hits) > 0 {
				m.cursor = (m.cursor - 1 + len(m.hits)) % len(m.hits)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "tab":
			m.method = nextMethod(m.method)
			m.status = "Search method: " + m.method.String()
			return m, nil
		case "shift+tab":
			if m.method == search.MethodBM25 {
				m.rerank = nextRerank(m.rerank)
				m.status = "Reranking: " + m.rerank.String()
			}
			return m, nil
		case "ctrl+r":
			return m.runReload(), nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runSearch() Model {
	q := strings.TrimSpace(m.input.Value())
	res, err := m.engine.Search(q, m.method, m.rerank)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.hits = nil
		m.notices = nil
	} else {
		m.hits = res.Hits
		m.notices = res.Notices
		m.cursor = 0
		m.lastQuery = q
		switch {
		case len(res.Notices) > 0:
			m.status = strings.Join(res.Notices, "; ")
		case len(res.Hits) == 0:
			m.status = "No results found."
		default:
			m.status = fmt.Sprintf("%d results for %q", len(res.Hits), q)
		}
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

func (m Model) runReload() Model {
	if m.reload == nil {
		return m
	}
	warnings, count, err := m.reload()
	if err != nil {
		m.status = "Reload failed: " + err.Error()
		return m
	}
	m.hits = nil
	m.notices = nil
	m.cursor = 0
	m.status = fmt.Sprintf("Reloaded %d chunks", count)
	if len(warnings) > 0 {
		m.status += " (" + strings.Join(warnings, "; ") + ")"
	}
	m.viewport.SetContent(m.renderCurrentResult())
	return m
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("PDF Page Search")
	selector := selectorLine(m.method, m.rerank)
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + selector + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.hits) == 0 {
		return "No results yet."
	}
	hit := m.hits[m.cursor]
	ch, ok := m.engine.Chunk(hit.ChunkID)
	if !ok {
		return "No results yet."
	}
	title := fmt.Sprintf("Result %d of %d  score=%.4f", m.cursor+1, len(m.hits), hit.Score)
	meta := filepath.Base(ch.SourcePath)
	if ch.PageNumber > 0 {
		meta += fmt.Sprintf("  page %d", ch.PageNumber)
	}
	terms := index.Terms(m.lastQuery)
	body := snippet.Highlight(ch.Text, terms, func(s string) string { return highlightStyle.Render(s) })
	return title + "\n" + metaStyle.Render(meta) + "\n\n" + body
}

func selectorLine(method search.Method, rerank search.Rerank) string {
	line := "method [tab]: " + method.String()
	if method == search.MethodBM25 {
		line += "   rerank [shift+tab]: " + rerank.String()
	} else {
		line += "   rerank: n/a"
	}
	return metaStyle.Render(line)
}

func nextMethod(m search.Method) search.Method {
	switch m {
	case search.MethodBM25:
		return search.MethodText
	case search.MethodText:
		return search.MethodVector
	default:
		return search.MethodBM25
	}
}

func nextRerank(r search.Rerank) search.Rerank {
	switch r {
	case search.RerankNone:
		return search.RerankSpan
	case search.RerankSpan:
		return search.RerankExact
	case search.RerankExact:
		return search.RerankCross
	default:
		return search.RerankNone
	}
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	metaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
