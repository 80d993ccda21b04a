package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fareplan/pkg/trip"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// newVisualizeCmd creates the visualize command for rendering a route graph.
func newVisualizeCmd() *cobra.Command {
	var (
		opts   searchOpts
		output string
		format string
		rank   int
	)

	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render an itinerary's route as a graph",
		Long: `Run a search and render one ranked itinerary as a directed route graph.

Each edge is a flown leg, labeled with the departure date and price.
Legs priced from defaults are drawn dashed. Output is Graphviz DOT or SVG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			run, err := runSearch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if rank < 1 || rank > len(run.results.Ranked) {
				return fmt.Errorf("rank %d out of range, have %d itineraries", rank, len(run.results.Ranked))
			}
			it := run.results.Ranked[rank-1]

			data := []byte(routeDOT(run.cfg, it))
			if format == formatSVG {
				data, err = renderSVG(cmd.Context(), string(data))
				if err != nil {
					return err
				}
			}

			if output == "" {
				_, err = os.Stdout.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			printSuccess("Rendered route %s", it.RouteString(run.cfg.Home))
			printFile(output)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", formatDOT, "output format: dot, svg")
	cmd.Flags().IntVar(&rank, "rank", 1, "which ranked itinerary to render (1 = cheapest)")

	return cmd
}

// routeDOT converts an itinerary to Graphviz DOT format. The home city is
// shown twice (departure and return) so the loop reads left to right.
func routeDOT(cfg *trip.Config, it *trip.Itinerary) string {
	var buf bytes.Buffer
	buf.WriteString("digraph route {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", "home_out", cfg.Home)
	fmt.Fprintf(&buf, "  %q [label=%q, fillcolor=lightblue];\n", "home_in", cfg.Home)
	for _, city := range it.Order {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(city, it))}
		if city == cfg.Anchor.City {
			attrs = append(attrs, "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", city, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, seg := range it.Segments {
		from, to := seg.Origin, seg.Destination
		if i == 0 {
			from = "home_out"
		}
		if i == len(it.Segments)-1 {
			to = "home_in"
		}
		attrs := []string{fmt.Sprintf("label=%q",
			fmt.Sprintf("%s\n%s", seg.Depart.Format("Jan 2"), fmtPrice(seg.Price)))}
		if seg.Synthesized {
			attrs = append(attrs, "style=dashed")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", from, to, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeLabel(city string, it *trip.Itinerary) string {
	if n, ok := it.Nights[city]; ok {
		return fmt.Sprintf("%s\n%d nights", city, n)
	}
	return city
}

// renderSVG renders a DOT graph to SVG using Graphviz.
func renderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
