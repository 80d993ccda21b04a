package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fareplan/pkg/cache"
	"github.com/matzehuels/fareplan/pkg/fare"
	"github.com/matzehuels/fareplan/pkg/trip"
)

// searchOpts holds the command-line flags shared by the commands that run a
// search (search, browse, visualize, serve).
type searchOpts struct {
	faresPath  string
	configPath string
	topN       int
	window     string
	withOpt    bool
	withoutOpt bool
	refresh    bool
	cacheFlags cacheFlags
}

func (o *searchOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.faresPath, "fares", "f", "", "CSV fare file (omit to price everything from defaults)")
	cmd.Flags().StringVarP(&o.configPath, "config", "c", "", "TOML constraint configuration (omit for the built-in scenario)")
	cmd.Flags().IntVarP(&o.topN, "top", "n", trip.DefaultTopN, "length of the ranked list")
	cmd.Flags().StringVarP(&o.window, "window", "w", "", "restrict to one departure window")
	cmd.Flags().BoolVar(&o.withOpt, "with-optionals", false, "only itineraries that visit the optional cities")
	cmd.Flags().BoolVar(&o.withoutOpt, "without-optionals", false, "only itineraries that skip the optional cities")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "recompute even when a cached result exists")
	o.cacheFlags.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("with-optionals", "without-optionals")
}

func (o *searchOpts) inclusion() trip.Inclusion {
	switch {
	case o.withOpt:
		return trip.IncludeOnly
	case o.withoutOpt:
		return trip.IncludeNever
	default:
		return trip.IncludeEither
	}
}

// newSearchCmd creates the search command.
func newSearchCmd() *cobra.Command {
	var (
		opts    searchOpts
		summary bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search for the cheapest itineraries",
		Long: `Search every feasible itinerary for the configured cities and report
the cheapest ones.

With --summary the result is a window × optional-inclusion matrix showing
the best itinerary per combination. Without it, the global ranked list is
printed in full detail.

Fares come from a CSV file (see 'fareplan template'); legs without a usable
fare are priced from the configured defaults and marked as estimates.
Results are cached locally; use --refresh to force a recompute.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := runSearch(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if output != "" {
				data, err := json.MarshalIndent(run.results, "", "  ")
				if err != nil {
					return fmt.Errorf("encode results: %w", err)
				}
				if err := os.WriteFile(output, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				printSuccess("Wrote results")
				printFile(output)
				return nil
			}

			if summary {
				renderSummary(run.cfg, run.results)
			} else {
				renderRanked(run.cfg, run.results)
			}
			printStats(run.results.Searched, len(run.results.Ranked), run.cached)
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "print the window × inclusion summary matrix")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write results as JSON instead of rendering")

	return cmd
}

// searchRun bundles everything a command needs after a search.
type searchRun struct {
	cfg     *trip.Config
	results *trip.Results
	cached  bool
}

// runSearch loads the configuration and fare file, consults the result
// cache, and runs the search on a miss.
func runSearch(ctx context.Context, opts searchOpts) (*searchRun, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return nil, err
	}

	var fareData []byte
	var records []fare.Fare
	if opts.faresPath != "" {
		fareData, err = os.ReadFile(opts.faresPath)
		if err != nil {
			return nil, fmt.Errorf("read fares %s: %w", opts.faresPath, err)
		}
		records, err = fare.ReadFile(opts.faresPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("loaded fare file", "path", opts.faresPath, "records", len(records))
	} else {
		logger.Warn("no fare file given, pricing every leg from defaults")
	}

	searchOptions := trip.Options{
		Window:    opts.window,
		Inclusion: opts.inclusion(),
		TopN:      opts.topN,
	}

	store, err := newResultCache(ctx, opts.cacheFlags)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	key, err := resultKey(fareData, cfg, searchOptions)
	if err != nil {
		return nil, err
	}

	if !opts.refresh {
		if data, ok, err := store.Get(ctx, key); err == nil && ok {
			var results trip.Results
			if err := json.Unmarshal(data, &results); err == nil {
				logger.Debug("cache hit", "key", key)
				return &searchRun{cfg: cfg, results: &results, cached: true}, nil
			}
		}
	}

	p := newProgress(logger)
	searcher := trip.NewSearcher(cfg, fare.New(records))
	results, err := searcher.Search(searchOptions)
	if err != nil {
		return nil, err
	}
	p.done(fmt.Sprintf("Searched %d feasible itineraries", results.Searched))

	if data, err := json.Marshal(results); err == nil {
		if err := store.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Debug("cache store failed", "err", err)
		}
	}

	return &searchRun{cfg: cfg, results: results}, nil
}

// loadConfig reads the TOML configuration, falling back to the built-in
// scenario when no path is given.
func loadConfig(path string) (*trip.Config, error) {
	if path == "" {
		return trip.DefaultConfig(), nil
	}
	return trip.Load(path)
}

// resultKey derives the cache key from everything that shapes the result.
func resultKey(fareData []byte, cfg *trip.Config, opts trip.Options) (string, error) {
	cfgData, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	optsData, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encode options: %w", err)
	}
	return cache.ResultKey(fareData, cfgData, optsData), nil
}
