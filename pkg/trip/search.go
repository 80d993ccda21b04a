package trip

import (
	"time"

	"github.com/matzehuels/fareplan/pkg/errors"
	"github.com/matzehuels/fareplan/pkg/fare"
)

// Inclusion filters the optional-city dimension of the search.
type Inclusion int

const (
	// IncludeEither searches both with and without the optional cities.
	IncludeEither Inclusion = iota
	// IncludeOnly searches only itineraries that visit the optional cities.
	IncludeOnly
	// IncludeNever searches only itineraries that skip the optional cities.
	IncludeNever
)

// DefaultTopN is the ranked-list length when the caller does not set one.
const DefaultTopN = 10

// Options narrows a search run.
type Options struct {
	// Window restricts the search to one named departure window.
	// Empty means all configured windows.
	Window string `json:"window,omitempty"`

	// Inclusion restricts the optional-city choice.
	Inclusion Inclusion `json:"inclusion"`

	// TopN caps the global ranked list. Zero means DefaultTopN.
	TopN int `json:"top_n"`
}

// Searcher runs the itinerary search against one constraint model and fare
// table. It is pure: no I/O, no shared mutable state, and identical inputs
// always yield identical results.
type Searcher struct {
	cfg      *Config
	resolver *fare.Resolver
}

// NewSearcher builds a searcher. The config must already be validated.
func NewSearcher(cfg *Config, table *fare.Table) *Searcher {
	return &Searcher{
		cfg:      cfg,
		resolver: &fare.Resolver{Table: table, Defaults: cfg.Pricing},
	}
}

// Search enumerates, validates, prices, and ranks itineraries.
//
// The outer loops are ordered for reproducibility: windows in configured
// order, inclusion choices with-optionals first, start dates ascending,
// routes in lexicographic order, night combinations rightmost-fastest.
// Ranking preserves this order for exact ties.
func (s *Searcher) Search(opts Options) (*Results, error) {
	windows, err := s.windows(opts.Window)
	if err != nil {
		return nil, err
	}

	var found []*Itinerary
	for _, window := range windows {
		for _, included := range inclusionChoices(opts.Inclusion, len(s.cfg.Optionals()) > 0) {
			cities := s.cfg.IncludedCities(included)
			routes := Routes(cities)
			for day := window.Start.Time; !day.After(window.End.Time); day = fare.AddDays(day, 1) {
				found = append(found, s.searchDay(window, included, routes, day)...)
			}
		}
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}
	return rank(found, s.cfg.WindowNames(), topN), nil
}

// searchDay evaluates every route and night combination for one start date.
// Allocation validates the planned calendar; pricing may still shift flown
// dates, so assemble re-validates and rejects the branch with nil.
func (s *Searcher) searchDay(window Window, included bool, routes [][]string, start time.Time) []*Itinerary {
	var out []*Itinerary
	for _, route := range routes {
		for _, alloc := range s.cfg.Allocations(route, start) {
			if it := s.cfg.assemble(alloc, s.resolver, window, included); it != nil {
				out = append(out, it)
			}
		}
	}
	return out
}

// windows resolves the window filter against the configuration.
func (s *Searcher) windows(name string) ([]Window, error) {
	if name == "" {
		return s.cfg.Windows, nil
	}
	w, ok := s.cfg.Window(name)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidWindow, "unknown departure window %q", name)
	}
	return []Window{w}, nil
}

// inclusionChoices expands the inclusion filter into concrete branches.
// Without any optional cities the two branches would duplicate each other,
// so only the without-optionals branch runs.
func inclusionChoices(inc Inclusion, haveOptionals bool) []bool {
	if !haveOptionals {
		return []bool{false}
	}
	switch inc {
	case IncludeOnly:
		return []bool{true}
	case IncludeNever:
		return []bool{false}
	default:
		return []bool{true, false}
	}
}
