package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/stockroom/internal/model"
)

const noDescription = "(sin descripción)"

// ConfidenceStyle picks a color for a confidence score.
func ConfidenceStyle(confidence float64) func(...string) string {
	switch {
	case confidence >= 0.8:
		return SuccessStyle.Render
	case confidence >= 0.6:
		return InfoStyle.Render
	default:
		return WarningStyle.Render
	}
}

// RenderResult formats a classification result for the terminal.
func RenderResult(product string, result model.Result) string {
	var b strings.Builder

	category := BoldStyle.Render(result.CategoryName) + SubtleStyle.Render(" ("+result.CategoryID+")")
	if result.IsNewCategory {
		category += " " + InfoStyle.Render(NewIcon+" new")
	}

	fmt.Fprintf(&b, "Category:   %s\n", category)
	fmt.Fprintf(&b, "Confidence: %s\n", ConfidenceStyle(result.Confidence)(fmt.Sprintf("%.0f%%", result.Confidence*100)))
	fmt.Fprintf(&b, "Strategy:   %s\n", result.Strategy)
	fmt.Fprintf(&b, "Reasoning:  %s", SubtleStyle.Render(result.Reasoning))
	if result.NeedsReview {
		b.WriteString("\n" + FormatWarning("needs manual review"))
	}

	return RenderBox(product, b.String())
}

// RenderCategories writes categories as an aligned table.
func RenderCategories(w io.Writer, categories []model.Category) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("Description"))
	fmt.Fprintf(tw, "%s\t%s\t%s\n",
		strings.Repeat("-", 12),
		strings.Repeat("-", 24),
		strings.Repeat("-", 40))

	for _, cat := range categories {
		desc := cat.Description
		if desc == "" {
			desc = SubtleStyle.Render(noDescription)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cat.ID, cat.Name, desc)
	}

	return tw.Flush()
}

// RenderProducts writes products as an aligned table.
func RenderProducts(w io.Writer, products []model.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("Category"),
		TableHeaderStyle.Render("Cost"),
		TableHeaderStyle.Render("Review"))

	for _, p := range products {
		review := ""
		if p.NeedsReview {
			review = WarningStyle.Render(WarningIcon)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%s\n", shortID(p.ID), p.Name, p.CategoryID, p.Cost, review)
	}

	return tw.Flush()
}

// NewProgressBar returns a progress bar for batch classification.
func NewProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

// RecategorizeStats summarizes a recategorize run.
type RecategorizeStats struct {
	Processed   int
	Resolved    int
	StillReview int
	Failed      int
	NewCategory int
}

// RenderRecategorizeSummary formats the result of a recategorize run.
func RenderRecategorizeSummary(stats RecategorizeStats) string {
	summary := fmt.Sprintf("  • Products processed: %d\n", stats.Processed) +
		fmt.Sprintf("  • Resolved: %d\n", stats.Resolved) +
		fmt.Sprintf("  • Still need review: %d\n", stats.StillReview) +
		fmt.Sprintf("  • Categories created: %d\n", stats.NewCategory) +
		fmt.Sprintf("  • Failures: %d", stats.Failed)
	return RenderBox("Recategorization Complete", summary)
}

// RenderReviewSummary formats the result of a review session.
func RenderReviewSummary(resolved, skipped, failed int) string {
	summary := fmt.Sprintf("  • Categorized: %d\n", resolved) +
		fmt.Sprintf("  • Skipped: %d\n", skipped) +
		fmt.Sprintf("  • Failures: %d", failed)
	return RenderBox("Review Complete", summary)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
