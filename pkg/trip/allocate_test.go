package trip

import (
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/fareplan/pkg/fare"
)

// anchorOnlyConfig is a single-city model where the destination is also the
// anchor. Trip bounds are wide so tests can isolate the anchor logic.
func anchorOnlyConfig() *Config {
	return &Config{
		Home:    "NYC",
		Cities:  []string{"HKG"},
		Anchor:  Anchor{City: "HKG", Start: On(2025, 12, 28), End: On(2026, 1, 1)},
		Windows: []Window{{Name: "any", Start: On(2025, 12, 1), End: On(2025, 12, 27)}},
		MinDays: 1,
		MaxDays: 60,
		Nights: map[string]NightSpec{
			"HKG": {Nights: 4, Min: 4, Flex: 1},
		},
		Pricing: fare.Defaults{Home: "NYC", OutboundFlat: 1000, InboundFlat: 900, IntraFlat: 120},
	}
}

func TestRoutes_Lexicographic(t *testing.T) {
	routes := Routes([]string{"TYO", "HKG", "TPE"})
	if len(routes) != 6 {
		t.Fatalf("got %d routes, want 6", len(routes))
	}

	want := [][]string{
		{"TYO", "HKG", "TPE"},
		{"TYO", "TPE", "HKG"},
		{"HKG", "TYO", "TPE"},
		{"HKG", "TPE", "TYO"},
		{"TPE", "TYO", "HKG"},
		{"TPE", "HKG", "TYO"},
	}
	for i := range want {
		if !slices.Equal(routes[i], want[i]) {
			t.Errorf("routes[%d] = %v, want %v", i, routes[i], want[i])
		}
	}
}

func TestRoutes_SingleCity(t *testing.T) {
	routes := Routes([]string{"HKG"})
	if len(routes) != 1 || !slices.Equal(routes[0], []string{"HKG"}) {
		t.Errorf("Routes = %v", routes)
	}
}

func TestAnchorCovers(t *testing.T) {
	a := Anchor{City: "HKG", Start: On(2025, 12, 28), End: On(2026, 1, 1)}

	if !a.Covers(fare.Day(2025, 12, 27), fare.Day(2026, 1, 2)) {
		t.Error("arrival 12-27, departure 01-02 covers the span")
	}
	if !a.Covers(fare.Day(2025, 12, 28), fare.Day(2026, 1, 2)) {
		t.Error("arrival on the span start still covers it")
	}
	if a.Covers(fare.Day(2025, 12, 27), fare.Day(2025, 12, 31)) {
		t.Error("departing 12-31 leaves the span uncovered")
	}
	if a.Covers(fare.Day(2025, 12, 29), fare.Day(2026, 1, 2)) {
		t.Error("arriving 12-29 misses the span start")
	}
	if a.Covers(fare.Day(2025, 12, 27), fare.Day(2026, 1, 1)) {
		t.Error("departure on the span end leaves the final day uncovered")
	}
}

func TestAllocate_AnchorDerived(t *testing.T) {
	cfg := anchorOnlyConfig()

	// Start 12-26: arrive 12-27, departure pinned to 01-02.
	allocs := cfg.Allocations([]string{"HKG"}, fare.Day(2025, 12, 26))
	if len(allocs) != 1 {
		t.Fatalf("got %d allocations, want 1", len(allocs))
	}

	a := allocs[0]
	stay := a.Stays[0]
	if !stay.Arrive.Equal(fare.Day(2025, 12, 27)) {
		t.Errorf("anchor arrival = %v", stay.Arrive)
	}
	if !stay.Depart.Equal(fare.Day(2026, 1, 2)) {
		t.Errorf("anchor departure = %v, want day after span end", stay.Depart)
	}
	if !cfg.Anchor.Covers(stay.Arrive, stay.Depart) {
		t.Error("derived anchor stay must cover the span")
	}

	// Derived nights, not the configured band.
	if a.Nights["HKG"] != 6 {
		t.Errorf("derived nights = %d, want 6", a.Nights["HKG"])
	}
	if !a.End.Equal(fare.Day(2026, 1, 3)) {
		t.Errorf("trip end = %v, want 01-03", a.End)
	}
	if a.Days != 9 {
		t.Errorf("days = %d, want 9", a.Days)
	}
}

func TestAllocate_LateArrivalRejected(t *testing.T) {
	cfg := anchorOnlyConfig()

	// Start 12-28: arrival 12-29 misses the span start.
	if allocs := cfg.Allocations([]string{"HKG"}, fare.Day(2025, 12, 28)); len(allocs) != 0 {
		t.Errorf("got %d allocations, want 0 (anchor arrival too late)", len(allocs))
	}
}

func TestAllocate_TripLengthBounds(t *testing.T) {
	cfg := anchorOnlyConfig()
	cfg.MinDays = 17
	cfg.MaxDays = 25

	// End is pinned at 01-03, so days = 01-03 - start + 1.
	tests := []struct {
		start time.Time
		want  int // allocations
	}{
		{fare.Day(2025, 12, 10), 1}, // 25 days: upper bound inclusive
		{fare.Day(2025, 12, 9), 0},  // 26 days: too long
		{fare.Day(2025, 12, 18), 1}, // 17 days: lower bound inclusive
		{fare.Day(2025, 12, 19), 0}, // 16 days: too short
	}
	for _, tt := range tests {
		if got := len(cfg.Allocations([]string{"HKG"}, tt.start)); got != tt.want {
			t.Errorf("start %v: %d allocations, want %d", tt.start.Format(fare.DateLayout), got, tt.want)
		}
	}
}

func TestAllocate_CumulativeWalk(t *testing.T) {
	cfg := DefaultConfig()
	start := fare.Day(2025, 12, 17)

	allocs := cfg.Allocations([]string{"TYO", "HKG", "TPE"}, start)
	if len(allocs) == 0 {
		t.Fatal("expected at least one feasible allocation")
	}

	for _, a := range allocs {
		// Arrival is always the previous departure plus one transit day.
		depart := start
		for _, stay := range a.Stays {
			if !stay.Arrive.Equal(fare.AddDays(depart, 1)) {
				t.Fatalf("stay %s arrives %v, want %v", stay.City, stay.Arrive, fare.AddDays(depart, 1))
			}
			if stay.Depart.Before(stay.Arrive) {
				t.Fatalf("stay %s departs before arriving", stay.City)
			}
			depart = stay.Depart
		}
		if !a.End.Equal(fare.AddDays(depart, 1)) {
			t.Fatalf("trip end %v, want %v", a.End, fare.AddDays(depart, 1))
		}

		// Non-anchor nights must sit inside their configured bands.
		for _, stay := range a.Stays {
			if stay.City == cfg.Anchor.City {
				continue
			}
			lo, hi := cfg.Nights[stay.City].Band()
			if n := stay.Nights(); n < lo || n > hi {
				t.Errorf("%s nights %d outside band [%d, %d]", stay.City, n, lo, hi)
			}
		}

		// Anchor coverage.
		for _, stay := range a.Stays {
			if stay.City == cfg.Anchor.City && !cfg.Anchor.Covers(stay.Arrive, stay.Depart) {
				t.Errorf("anchor stay %v-%v does not cover the span", stay.Arrive, stay.Depart)
			}
		}

		if a.Days < cfg.MinDays || a.Days > cfg.MaxDays {
			t.Errorf("days %d outside [%d, %d]", a.Days, cfg.MinDays, cfg.MaxDays)
		}
	}
}

func TestAllocations_BandProduct(t *testing.T) {
	cfg := anchorOnlyConfig()
	cfg.Cities = []string{"TYO", "HKG"}
	cfg.Nights["TYO"] = NightSpec{Nights: 5, Min: 4, Flex: 1} // band [4, 6]
	cfg.MinDays = 1
	cfg.MaxDays = 60

	// TYO's band has 3 choices; anchor contributes none.
	allocs := cfg.Allocations([]string{"TYO", "HKG"}, fare.Day(2025, 12, 15))
	if len(allocs) != 3 {
		t.Fatalf("got %d allocations, want 3", len(allocs))
	}

	// Rightmost-fastest: here a single varying city, ascending nights.
	for i, want := range []int{4, 5, 6} {
		if got := allocs[i].Nights["TYO"]; got != want {
			t.Errorf("allocs[%d] TYO nights = %d, want %d", i, got, want)
		}
	}
}
