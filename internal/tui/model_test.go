package tui

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stockroom/internal/model"
)

type recordingResolver struct {
	err       error
	decisions []Decision
	mu        sync.Mutex
}

func (r *recordingResolver) Resolve(_ context.Context, d Decision) (model.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decisions = append(r.decisions, d)
	if r.err != nil {
		return model.Category{}, r.err
	}
	return model.Category{ID: d.CategoryID, Name: d.Name, IsActive: true}, nil
}

func testCategories() []model.Category {
	return []model.Category{
		{ID: "electrical-1", Name: "Material Eléctrico"},
		{ID: "paint-1", Name: "Pinturas"},
		{ID: "tools-1", Name: "Herramientas Manuales"},
	}
}

func testItems() []Item {
	return []Item{
		{
			Product: model.Product{ID: "p1", Name: "Candado de latón 40mm", NeedsReview: true},
			Suggestion: model.Result{
				CategoryID:    "general",
				CategoryName:  "General",
				Confidence:    0.3,
				Strategy:      model.StrategyFallbackGeneral,
				IsNewCategory: true,
				NeedsReview:   true,
				Description:   "Productos sin categoría específica",
			},
		},
		{
			Product: model.Product{ID: "p2", Name: "Rodillo 9 pulgadas", NeedsReview: true},
			Suggestion: model.Result{
				CategoryID:   "paint-1",
				CategoryName: "Pinturas",
				Confidence:   0.45,
				Strategy:     model.StrategyProductSimilarity,
			},
		},
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send applies msg and then runs the returned command, feeding its result
// back the way the program loop would for a resolver round-trip.
func send(t *testing.T, m ReviewModel, msg tea.Msg) (ReviewModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(ReviewModel)
	require.True(t, ok)
	if cmd == nil {
		return rm, nil
	}
	if resolved, ok := cmd().(resolvedMsg); ok {
		return send(t, rm, resolved)
	}
	return rm, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestReviewModel_AcceptSuggestion(t *testing.T) {
	resolver := &recordingResolver{}
	m := NewReviewModel(context.Background(), resolver, testItems(), testCategories())

	m, cmd := send(t, m, runes("a"))
	assert.Nil(t, cmd)
	require.Len(t, resolver.decisions, 1)
	assert.Equal(t, Decision{
		ProductID:   "p1",
		CategoryID:  "general",
		Name:        "General",
		Description: "Productos sin categoría específica",
	}, resolver.decisions[0])
	assert.Equal(t, 1, m.Summary().Resolved)
	assert.Equal(t, ModeSuggestion, m.Mode())
	assert.Contains(t, m.View(), "Rodillo 9 pulgadas")
}

func TestReviewModel_PickExistingCategory(t *testing.T) {
	resolver := &recordingResolver{}
	items := testItems()[1:]
	m := NewReviewModel(context.Background(), resolver, items, testCategories())

	m, _ = send(t, m, runes("p"))
	require.Equal(t, ModePicking, m.Mode())
	assert.Equal(t, 1, m.cursor, "picker starts on the suggested category")
	assert.Contains(t, m.View(), "Pick a category")

	m, _ = send(t, m, runes("j"))
	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, resolver.decisions, 1)
	assert.Equal(t, "tools-1", resolver.decisions[0].CategoryID)
	assert.Equal(t, "p2", resolver.decisions[0].ProductID)
	assert.True(t, isQuit(cmd), "last product ends the session")
	assert.Equal(t, ModeDone, m.Mode())
}

func TestReviewModel_PickerBounds(t *testing.T) {
	m := NewReviewModel(context.Background(), &recordingResolver{}, testItems(), testCategories())

	m, _ = send(t, m, runes("p"))
	assert.Equal(t, 0, m.cursor, "unknown suggestion starts at the top")
	m, _ = send(t, m, runes("k"))
	assert.Equal(t, 0, m.cursor)
	for iter := 0; iter < 5; iter++ {
		m, _ = send(t, m, runes("j"))
	}
	assert.Equal(t, 2, m.cursor)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeSuggestion, m.Mode())
}

func TestReviewModel_CustomCategory(t *testing.T) {
	resolver := &recordingResolver{}
	m := NewReviewModel(context.Background(), resolver, testItems(), testCategories())

	m, _ = send(t, m, runes("c"))
	require.Equal(t, ModeCustom, m.Mode())

	// Typed text goes to the input, not to the shortcuts.
	m, _ = send(t, m, runes("Cerraduras y Candados"))
	assert.Equal(t, ModeCustom, m.Mode())
	assert.Empty(t, resolver.decisions)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, resolver.decisions, 1)
	assert.Equal(t, Decision{
		ProductID:  "p1",
		CategoryID: "cerraduras-y-candados",
		Name:       "Cerraduras y Candados",
	}, resolver.decisions[0])
	assert.Equal(t, 1, m.index)
}

func TestReviewModel_CustomCategoryIgnoresBlankName(t *testing.T) {
	resolver := &recordingResolver{}
	m := NewReviewModel(context.Background(), resolver, testItems(), testCategories())

	m, _ = send(t, m, runes("c"))
	m, _ = send(t, m, runes("  "))
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, resolver.decisions)
	assert.Equal(t, ModeCustom, m.Mode())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeSuggestion, m.Mode())
}

func TestReviewModel_SkipAndQuit(t *testing.T) {
	resolver := &recordingResolver{}
	m := NewReviewModel(context.Background(), resolver, testItems(), testCategories())

	m, cmd := send(t, m, runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Summary().Skipped)
	assert.Equal(t, 1, m.index)

	m, cmd = send(t, m, runes("q"))
	assert.True(t, isQuit(cmd))
	assert.Equal(t, ModeDone, m.Mode())
	assert.Empty(t, resolver.decisions)
	assert.Empty(t, m.View())
}

func TestReviewModel_ResolverFailureKeepsProduct(t *testing.T) {
	resolver := &recordingResolver{err: errors.New("database is locked")}
	m := NewReviewModel(context.Background(), resolver, testItems(), testCategories())

	m, cmd := send(t, m, runes("a"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.Summary().Failed)
	assert.Equal(t, 0, m.index, "failed product stays on screen")
	assert.False(t, m.busy)
	assert.Contains(t, m.View(), "database is locked")
}

func TestReviewModel_IgnoresKeysWhileSaving(t *testing.T) {
	m := NewReviewModel(context.Background(), &recordingResolver{}, testItems(), testCategories())

	next, cmd := m.Update(runes("a"))
	require.NotNil(t, cmd)
	m = next.(ReviewModel)
	assert.True(t, m.busy)
	assert.Contains(t, m.View(), "Saving...")

	next, cmd = m.Update(runes("s"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, next.(ReviewModel).Summary().Skipped)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
}

func TestReviewModel_NoItems(t *testing.T) {
	m := NewReviewModel(context.Background(), &recordingResolver{}, nil, testCategories())
	assert.Equal(t, ModeDone, m.Mode())
	assert.True(t, isQuit(m.Init()))
}

func TestRun_RequiresResolver(t *testing.T) {
	_, err := Run(context.Background(), Config{Items: testItems()})
	assert.ErrorIs(t, err, ErrNoResolver)
}
