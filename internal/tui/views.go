package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/stockroom/internal/cli"
)

// View renders the UI.
func (m ReviewModel) View() string {
	if m.mode == ModeDone {
		return ""
	}

	sections := []string{
		cli.TitleStyle.Render(fmt.Sprintf("%s Reviewing product %d of %d", cli.BoxIcon, m.index+1, len(m.items))),
		m.renderProduct(),
	}

	switch m.mode {
	case ModePicking:
		sections = append(sections, m.renderPicker())
	case ModeCustom:
		sections = append(sections, cli.BoldStyle.Render("New category"), m.input.View())
	default:
		sections = append(sections, m.renderSuggestion())
	}

	if m.busy {
		sections = append(sections, cli.SubtleStyle.Render("Saving..."))
	}
	if m.lastErr != nil {
		sections = append(sections, cli.FormatError(m.lastErr.Error()))
	} else if m.status != "" {
		sections = append(sections, cli.FormatSuccess(m.status))
	}

	sections = append(sections, m.help.ShortHelpView(m.keymap.bindings(m.mode)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ReviewModel) renderProduct() string {
	p := m.current().Product

	lines := []string{cli.BoldStyle.Render(p.Name)}
	if p.Description != "" {
		lines = append(lines, cli.SubtleStyle.Render(p.Description))
	}
	if p.Cost > 0 {
		lines = append(lines, fmt.Sprintf("Cost: %.2f", p.Cost))
	}
	current := "(none)"
	if p.CategoryID != "" {
		current = p.CategoryID
	}
	lines = append(lines, "Current: "+current)

	return cli.BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m ReviewModel) renderSuggestion() string {
	s := m.current().Suggestion
	if s.CategoryID == "" {
		return cli.FormatWarning("No suggestion available")
	}

	label := s.CategoryName + cli.SubtleStyle.Render(" ("+s.CategoryID+")")
	if s.IsNewCategory {
		label += " " + cli.InfoStyle.Render(cli.NewIcon+" new")
	}
	confidence := cli.ConfidenceStyle(s.Confidence)(fmt.Sprintf("%.0f%%", s.Confidence*100))

	return fmt.Sprintf("Suggestion: %s  %s\n%s", label, confidence, cli.SubtleStyle.Render(s.Reasoning))
}

// renderPicker renders a window of categories around the cursor.
func (m ReviewModel) renderPicker() string {
	visible := max(m.height-12, 5)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.categories))

	var b strings.Builder
	b.WriteString(cli.BoldStyle.Render("Pick a category") + "\n")
	for i := start; i < end; i++ {
		cat := m.categories[i]
		line := fmt.Sprintf("%s %s", cat.Name, cli.SubtleStyle.Render("("+cat.ID+")"))
		if i == m.cursor {
			b.WriteString(cli.InfoStyle.Render("▸ ") + line + "\n")
			continue
		}
		b.WriteString("  " + line + "\n")
	}
	if end < len(m.categories) {
		b.WriteString(cli.SubtleStyle.Render(fmt.Sprintf("  … %d more", len(m.categories)-end)))
	}
	return strings.TrimRight(b.String(), "\n")
}
