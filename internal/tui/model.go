// Package tui implements the interactive review screen for products the
// classifier could not place with confidence.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/similarity"
)

// Item is a product awaiting review with the classifier's current suggestion.
type Item struct {
	Product    model.Product
	Suggestion model.Result
}

// Decision is the operator's category choice for one product.
type Decision struct {
	ProductID   string
	CategoryID  string
	Name        string
	Description string
}

// Resolver applies a decision to the catalog and returns the category the
// product ended up in.
type Resolver interface {
	Resolve(ctx context.Context, d Decision) (model.Category, error)
}

// Mode represents what the review screen is waiting for.
type Mode int

const (
	ModeSuggestion Mode = iota
	ModePicking
	ModeCustom
	ModeDone
)

// Summary counts the outcome of a review session.
type Summary struct {
	Resolved int
	Skipped  int
	Failed   int
}

// resolvedMsg reports the outcome of applying a decision.
type resolvedMsg struct {
	err      error
	category model.Category
	item     int
}

// ReviewModel holds the review screen state.
type ReviewModel struct {
	ctx        context.Context
	resolver   Resolver
	lastErr    error
	keymap     KeyMap
	help       help.Model
	input      textinput.Model
	status     string
	items      []Item
	categories []model.Category
	summary    Summary
	index      int
	cursor     int
	width      int
	height     int
	mode       Mode
	busy       bool
}

// NewReviewModel creates a review screen over items. categories are the
// choices offered by the picker.
func NewReviewModel(ctx context.Context, resolver Resolver, items []Item, categories []model.Category) ReviewModel {
	input := textinput.New()
	input.Placeholder = "Nombre de la nueva categoría..."
	input.CharLimit = 60
	input.Cursor.SetMode(cursor.CursorStatic)

	m := ReviewModel{
		ctx:        ctx,
		resolver:   resolver,
		items:      items,
		categories: categories,
		keymap:     DefaultKeyMap(),
		help:       help.New(),
		input:      input,
		height:     24,
	}
	if len(items) == 0 {
		m.mode = ModeDone
	}
	return m
}

// Init returns the initial command.
func (m ReviewModel) Init() tea.Cmd {
	if m.mode == ModeDone {
		return tea.Quit
	}
	return nil
}

// Update handles messages and updates the model.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case resolvedMsg:
		m.busy = false
		if msg.err != nil {
			m.summary.Failed++
			m.lastErr = msg.err
			m.status = ""
			m.mode = ModeSuggestion
			return m, nil
		}
		m.summary.Resolved++
		m.lastErr = nil
		m.status = m.items[msg.item].Product.Name + " → " + msg.category.Name
		cmd := m.advance()
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.ForceQuit) {
			m.mode = ModeDone
			return m, tea.Quit
		}
		if m.busy || m.mode == ModeDone {
			return m, nil
		}
		switch m.mode {
		case ModeSuggestion:
			return m.handleSuggestionMode(msg)
		case ModePicking:
			return m.handlePickingMode(msg)
		case ModeCustom:
			return m.handleCustomMode(msg)
		}
	}

	return m, nil
}

func (m ReviewModel) handleSuggestionMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Accept):
		s := m.current().Suggestion
		if s.CategoryID == "" {
			return m, nil
		}
		return m.decide(Decision{
			CategoryID:  s.CategoryID,
			Name:        s.CategoryName,
			Description: s.Description,
		})

	case key.Matches(msg, m.keymap.Pick):
		if len(m.categories) == 0 {
			return m, nil
		}
		m.mode = ModePicking
		m.cursor = m.suggestedIndex()

	case key.Matches(msg, m.keymap.Custom):
		m.mode = ModeCustom
		m.input.SetValue("")
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keymap.Skip):
		m.summary.Skipped++
		m.status = ""
		cmd := m.advance()
		return m, cmd

	case key.Matches(msg, m.keymap.Quit):
		m.mode = ModeDone
		return m, tea.Quit
	}
	return m, nil
}

func (m ReviewModel) handlePickingMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keymap.Down):
		m.cursor = min(m.cursor+1, len(m.categories)-1)
	case key.Matches(msg, m.keymap.Select):
		cat := m.categories[m.cursor]
		return m.decide(Decision{CategoryID: cat.ID, Name: cat.Name, Description: cat.Description})
	case key.Matches(msg, m.keymap.Back):
		m.mode = ModeSuggestion
	}
	return m, nil
}

func (m ReviewModel) handleCustomMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Select):
		name := strings.TrimSpace(m.input.Value())
		id := similarity.Slug(name)
		if id == "" {
			return m, nil
		}
		m.input.Blur()
		return m.decide(Decision{CategoryID: id, Name: name})
	case key.Matches(msg, m.keymap.Back):
		m.input.Blur()
		m.input.SetValue("")
		m.mode = ModeSuggestion
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// decide hands d to the resolver off the update loop.
func (m ReviewModel) decide(d Decision) (tea.Model, tea.Cmd) {
	d.ProductID = m.current().Product.ID
	m.busy = true
	ctx, resolver, item := m.ctx, m.resolver, m.index
	return m, func() tea.Msg {
		cat, err := resolver.Resolve(ctx, d)
		return resolvedMsg{item: item, category: cat, err: err}
	}
}

// advance moves to the next product, quitting after the last one.
func (m *ReviewModel) advance() tea.Cmd {
	m.index++
	m.cursor = 0
	m.mode = ModeSuggestion
	m.input.SetValue("")
	if m.index >= len(m.items) {
		m.mode = ModeDone
		return tea.Quit
	}
	return nil
}

func (m ReviewModel) current() Item {
	return m.items[m.index]
}

// suggestedIndex returns the picker row of the suggested category, or 0.
func (m ReviewModel) suggestedIndex() int {
	id := m.current().Suggestion.CategoryID
	for i, cat := range m.categories {
		if cat.ID == id {
			return i
		}
	}
	return 0
}

// Summary returns the counts collected so far.
func (m ReviewModel) Summary() Summary {
	return m.summary
}

// Mode returns the current mode.
func (m ReviewModel) Mode() Mode {
	return m.mode
}
