package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/adforge/adforge-cli/pkg/hierarchy"
	"github.com/adforge/adforge-cli/pkg/wizard"
)

// RenderPreview renders the grouped campaign tree for the current state.
// The tree is recomputed on every call from the filtered sample rows; an
// empty source yields an explicit placeholder rather than an empty pane.
func RenderPreview(s wizard.State, width int) string {
	if width < 20 {
		width = 20
	}

	rows, excluded := s.FilteredRows()
	if len(rows) == 0 {
		if excluded > 0 {
			return PlaceholderStyle.Render(fmt.Sprintf(
				"All %d sample rows excluded by the selected rules.", excluded))
		}
		return PlaceholderStyle.Render("No sample data to preview. Select a data source first.")
	}

	preview := hierarchy.Aggregate(s.Campaign.NamePattern, s.Hierarchy.AdGroups, rows)

	var b strings.Builder
	summary := fmt.Sprintf("%d campaigns · %d ad groups · %d ads",
		preview.CampaignCount, preview.AdGroupCount, preview.AdCount)
	if excluded > 0 {
		summary += fmt.Sprintf(" · %d rows excluded", excluded)
	}
	b.WriteString(DimStyle.Render(summary))
	b.WriteString("\n\n")

	for _, c := range preview.Campaigns {
		b.WriteString(StepTitleStyle.Render("▾ " + c.Name))
		b.WriteString("\n")
		for _, g := range c.AdGroups {
			b.WriteString("  " + NormalStyle.Render("▾ "+g.Name))
			b.WriteString("\n")
			for _, ad := range g.Ads {
				b.WriteString(wordwrap.String("    • "+ad.Headline, width))
				b.WriteString("\n")
				if ad.Description != "" {
					b.WriteString(DimStyle.Render(wordwrap.String("      "+ad.Description, width)))
					b.WriteString("\n")
				}
			}
		}
	}
	return b.String()
}
