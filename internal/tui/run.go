package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/stockroom/internal/model"
)

// ErrNoResolver is returned when Run is called without a resolver.
var ErrNoResolver = errors.New("review requires a resolver")

// Config holds the dependencies of a review session.
type Config struct {
	Resolver   Resolver
	Input      io.Reader
	Output     io.Writer
	Items      []Item
	Categories []model.Category
	AltScreen  bool
}

// Run shows the review screen until every item is handled or the operator
// quits, and returns what was done.
func Run(ctx context.Context, cfg Config) (Summary, error) {
	if cfg.Resolver == nil {
		return Summary{}, ErrNoResolver
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.Input != nil {
		opts = append(opts, tea.WithInput(cfg.Input))
	}
	if cfg.Output != nil {
		opts = append(opts, tea.WithOutput(cfg.Output))
	}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}

	m := NewReviewModel(ctx, cfg.Resolver, cfg.Items, cfg.Categories)
	final, err := tea.NewProgram(m, opts...).Run()

	var summary Summary
	if rm, ok := final.(ReviewModel); ok {
		summary = rm.Summary()
	}
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return summary, ctx.Err()
		}
		return summary, fmt.Errorf("review screen: %w", err)
	}
	return summary, nil
}
