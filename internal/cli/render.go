package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/fareplan/pkg/trip"
)

// =============================================================================
// Formatting Helpers
// =============================================================================

const displayDate = "Mon Jan 2"

func fmtPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func fmtDate(t time.Time) string {
	return t.Format(displayDate)
}

func fmtDuration(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

func inclusionLabel(included bool, optionals []string) string {
	joined := ""
	for i, c := range optionals {
		if i > 0 {
			joined += "+"
		}
		joined += c
	}
	if included {
		return "with " + joined
	}
	return "without " + joined
}

// =============================================================================
// Summary Matrix
// =============================================================================

// renderSummary prints the window × optional-inclusion matrix with the best
// price per combination, then the winning itinerary of each populated cell.
func renderSummary(cfg *trip.Config, res *trip.Results) {
	printNewline()
	fmt.Println(StyleTitle.Render("Cheapest itinerary per window"))
	printNewline()

	printKeyValue("Home", cfg.Home)
	printKeyValue("Anchor", fmt.Sprintf("%s %s – %s",
		cfg.Anchor.City, fmtDate(cfg.Anchor.Start.Time), fmtDate(cfg.Anchor.End.Time)))
	printKeyValue("Trip length", fmt.Sprintf("%d–%d days", cfg.MinDays, cfg.MaxDays))
	printNewline()

	optionals := cfg.Optionals()
	headers := []string{"Window", inclusionLabel(true, optionals), inclusionLabel(false, optionals)}
	if len(optionals) == 0 {
		headers = []string{"Window", "Best"}
	}

	rows := [][]string{}
	for _, window := range res.Windows {
		row := []string{window}
		for _, included := range summaryColumns(optionals) {
			if best := res.Best(window, included); best != nil {
				row = append(row, fmt.Sprintf("%s  %s, %dd",
					fmtPrice(best.TotalPrice), fmtDate(best.Start), best.Days))
			} else {
				row = append(row, "—")
			}
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleHighlight
			}
			return StyleValue
		})
	fmt.Println(t.Render())

	for _, window := range res.Windows {
		for _, included := range summaryColumns(optionals) {
			if best := res.Best(window, included); best != nil {
				printNewline()
				renderItinerary(cfg, best, fmt.Sprintf("%s, %s", window, inclusionLabel(included, optionals)))
			}
		}
	}
	printNewline()
}

// summaryColumns returns the inclusion values of the matrix columns.
// Without optional cities the matrix collapses to a single column.
func summaryColumns(optionals []string) []bool {
	if len(optionals) == 0 {
		return []bool{false}
	}
	return []bool{true, false}
}

// =============================================================================
// Ranked List
// =============================================================================

// renderRanked prints the global top-N list in full detail.
func renderRanked(cfg *trip.Config, res *trip.Results) {
	printNewline()
	fmt.Println(StyleTitle.Render(fmt.Sprintf("Top %d itineraries", len(res.Ranked))))

	if len(res.Ranked) == 0 {
		printNewline()
		printWarning("No feasible itinerary satisfies the constraints")
		printNewline()
		return
	}

	for i, it := range res.Ranked {
		printNewline()
		renderItinerary(cfg, it, fmt.Sprintf("#%d", i+1))
	}
	printNewline()
}

// renderItinerary prints one itinerary: headline, schedule, and legs.
func renderItinerary(cfg *trip.Config, it *trip.Itinerary, tag string) {
	fmt.Printf("%s  %s  %s\n",
		StyleDim.Render(tag),
		StylePrice.Render(fmtPrice(it.TotalPrice)),
		StyleValue.Render(it.RouteString(cfg.Home)))

	printDetail("%s → %s · %d days · %d nights · window %s",
		fmtDate(it.Start), fmtDate(it.End), it.Days, it.TotalNights(), it.Window)
	if dur := fmtDuration(it.TotalDuration); dur != "" {
		printDetail("total flight time %s", dur)
	}

	for _, seg := range it.Segments {
		renderSegment(seg)
	}
}

// renderSegment prints one leg line.
func renderSegment(seg trip.Segment) {
	line := fmt.Sprintf("%s %s %s  %s  %s",
		seg.Origin, iconArrow, seg.Destination,
		fmtDate(seg.Depart), fmtPrice(seg.Price))

	var extras []string
	if seg.Carrier != "" {
		extras = append(extras, seg.Carrier)
	}
	if dur := fmtDuration(seg.Duration); dur != "" {
		extras = append(extras, dur)
	}
	for _, e := range extras {
		line += " · " + e
	}

	if seg.Synthesized {
		line += " " + StyleWarning.Render("(estimate)")
	}
	fmt.Println("  " + StyleDim.Render(line))
}
