package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fareplan/pkg/trip"
)

// List styles
var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// newBrowseCmd creates the browse command for interactive result exploration.
func newBrowseCmd() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Interactively browse ranked itineraries",
		Long: `Run a search and step through the ranked itineraries in the terminal.

Use the arrow keys to move, enter to toggle the leg-by-leg detail view,
and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := runSearch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if len(run.results.Ranked) == 0 {
				printWarning("No feasible itinerary satisfies the constraints")
				return nil
			}

			model := newItineraryListModel(run.cfg, run.results)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	opts.register(cmd)
	return cmd
}

// =============================================================================
// ItineraryListModel - Interactive itinerary browsing
// =============================================================================

// ItineraryListModel is the bubbletea model for browsing ranked itineraries.
type ItineraryListModel struct {
	Config      *trip.Config
	Itineraries []*trip.Itinerary
	Cursor      int
	Detail      bool
	Height      int
	Offset      int
}

// newItineraryListModel creates a browse model over the ranked list.
func newItineraryListModel(cfg *trip.Config, res *trip.Results) ItineraryListModel {
	return ItineraryListModel{
		Config:      cfg,
		Itineraries: res.Ranked,
		Height:      15,
	}
}

func (m ItineraryListModel) Init() tea.Cmd {
	return nil
}

func (m ItineraryListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Detail {
				m.Detail = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Itineraries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Detail = !m.Detail
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ItineraryListModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m ItineraryListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Itineraries"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Itineraries) {
		end = len(m.Itineraries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		it := m.Itineraries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		estimates := ""
		for _, seg := range it.Segments {
			if seg.Synthesized {
				estimates = "~"
				break
			}
		}

		rows = append(rows, []string{
			cursor,
			fmtPrice(it.TotalPrice) + estimates,
			it.RouteString(m.Config.Home),
			fmtDate(it.Start),
			fmt.Sprintf("%dd", it.Days),
			it.Window,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Price", "Route", "Departs", "Days", "Window").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Itineraries))))

	return b.String()
}

func (m ItineraryListModel) detailView() string {
	it := m.Itineraries[m.Cursor]
	var b strings.Builder

	b.WriteString(StyleTitle.Render(it.RouteString(m.Config.Home)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("⏎/q back"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s  %s\n",
		StylePrice.Render(fmtPrice(it.TotalPrice)),
		listDimStyle.Render(fmt.Sprintf("%s → %s · %d days · %d nights",
			fmtDate(it.Start), fmtDate(it.End), it.Days, it.TotalNights()))))
	b.WriteString("\n")

	rows := [][]string{}
	for _, seg := range it.Segments {
		note := ""
		if seg.Synthesized {
			note = "estimate"
		}
		rows = append(rows, []string{
			seg.Origin + " " + iconArrow + " " + seg.Destination,
			fmtDate(seg.Depart),
			fmtPrice(seg.Price),
			seg.Carrier,
			fmtDuration(seg.Duration),
			note,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Leg", "Departs", "Price", "Carrier", "Duration", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 5 {
				return StyleWarning
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	b.WriteString(t.Render())

	return b.String()
}
