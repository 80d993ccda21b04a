package fare

import (
	"testing"
	"time"
)

func testDefaults() Defaults {
	return Defaults{
		Home:         "NYC",
		Outbound:     map[string]float64{"TYO": 900, "HKG": 1100},
		Inbound:      map[string]float64{"TYO": 570, "HKG": 1070},
		Intra:        map[string]float64{IntraKey("TYO", "HKG"): 120},
		OutboundFlat: 1000,
		InboundFlat:  900,
		IntraFlat:    120,
	}
}

func newResolver(records []Fare) *Resolver {
	return &Resolver{Table: New(records), Defaults: testDefaults()}
}

func TestResolve_ExactDate(t *testing.T) {
	d := Day(2025, 12, 6)
	r := newResolver([]Fare{mkFare("NYC", "TYO", d, 780, 0, 840)})

	q := r.Resolve("NYC", "TYO", d)
	if q.Synthesized {
		t.Fatal("expected a historical fare")
	}
	if !q.Depart.Equal(d) || q.Fare.Price != 780 {
		t.Errorf("got depart %v price %v", q.Depart, q.Fare.Price)
	}
	if !q.Arrive.Equal(AddDays(d, 1)) {
		t.Errorf("arrival = %v, want next day", q.Arrive)
	}
}

func TestResolve_EarlierDateWinsNearTier(t *testing.T) {
	// Fares on both the preferred date and the day after: the earlier date
	// wins even when the later one is cheaper.
	d := Day(2025, 12, 6)
	r := newResolver([]Fare{
		mkFare("NYC", "TYO", d, 900, 0, 840),
		mkFare("NYC", "TYO", AddDays(d, 1), 500, 0, 840),
	})

	q := r.Resolve("NYC", "TYO", d)
	if !q.Depart.Equal(d) || q.Fare.Price != 900 {
		t.Errorf("got depart %v price %v, want preferred date at 900", q.Depart, q.Fare.Price)
	}
}

func TestResolve_NextDayFallback(t *testing.T) {
	d := Day(2025, 12, 6)
	r := newResolver([]Fare{mkFare("NYC", "TYO", AddDays(d, 1), 800, 0, 840)})

	q := r.Resolve("NYC", "TYO", d)
	if !q.Depart.Equal(AddDays(d, 1)) {
		t.Errorf("depart = %v, want preferred+1", q.Depart)
	}
}

func TestResolve_MonotonicForward(t *testing.T) {
	// A fare before the preferred date must never be used; one 5 days out
	// is found by the widened tier.
	d := Day(2025, 12, 10)
	r := newResolver([]Fare{
		mkFare("NYC", "TYO", AddDays(d, -1), 100, 0, 840),
		mkFare("NYC", "TYO", AddDays(d, 5), 820, 0, 840),
	})

	q := r.Resolve("NYC", "TYO", d)
	if q.Synthesized {
		t.Fatal("expected the widened tier to find the +5 fare")
	}
	if !q.Depart.Equal(AddDays(d, 5)) || q.Fare.Price != 820 {
		t.Errorf("got depart %v price %v, want +5 at 820", q.Depart, q.Fare.Price)
	}
	if q.Depart.Before(d) {
		t.Error("resolver returned a date earlier than preferred")
	}
}

func TestResolve_WidenedTakesFirstAvailableDate(t *testing.T) {
	// Widened search stops at the first date with any fare; a cheaper fare
	// further out is not shopped.
	d := Day(2025, 12, 10)
	r := newResolver([]Fare{
		mkFare("NYC", "TYO", AddDays(d, 3), 950, 0, 840),
		mkFare("NYC", "TYO", AddDays(d, 6), 400, 0, 840),
	})

	q := r.Resolve("NYC", "TYO", d)
	if !q.Depart.Equal(AddDays(d, 3)) || q.Fare.Price != 950 {
		t.Errorf("got depart %v price %v, want +3 at 950", q.Depart, q.Fare.Price)
	}
}

func TestResolve_WidenedWindowEndsAtSevenDays(t *testing.T) {
	d := Day(2025, 12, 10)
	r := newResolver([]Fare{mkFare("NYC", "TYO", AddDays(d, 8), 400, 0, 840)})

	q := r.Resolve("NYC", "TYO", d)
	if !q.Synthesized {
		t.Error("a fare 8 days out is beyond the widened window; expected a default")
	}
}

func TestResolve_DefaultOutbound(t *testing.T) {
	r := newResolver(nil)
	d := Day(2025, 12, 6)

	q := r.Resolve("NYC", "TYO", d)
	if !q.Synthesized {
		t.Fatal("empty table should synthesize")
	}
	if q.Fare.Price != 900 {
		t.Errorf("price = %v, want outbound default 900", q.Fare.Price)
	}
	if !q.Depart.Equal(d) {
		t.Errorf("synthesized fare must sit on the preferred date, got %v", q.Depart)
	}
	if q.Fare.Carrier != "" || q.Fare.BookingRef != "" {
		t.Error("synthesized fare must carry no carrier or booking reference")
	}
}

func TestResolve_DefaultDirections(t *testing.T) {
	r := newResolver(nil)
	d := Day(2026, 1, 2)

	tests := []struct {
		origin, dest string
		want         float64
	}{
		{"TYO", "NYC", 570},  // inbound, listed
		{"TPE", "NYC", 900},  // inbound, unlisted flat
		{"NYC", "SHA", 1000}, // outbound, unlisted flat
		{"TYO", "HKG", 120},  // intra, listed
		{"HKG", "TPE", 120},  // intra, unlisted flat
	}
	for _, tt := range tests {
		if q := r.Resolve(tt.origin, tt.dest, d); q.Fare.Price != tt.want {
			t.Errorf("%s->%s default = %v, want %v", tt.origin, tt.dest, q.Fare.Price, tt.want)
		}
	}
}

func TestResolve_MedianBeatsDefaultTable(t *testing.T) {
	// The route has history, just not within the widened window: the
	// synthesized price is the observed median, not the static default.
	d := Day(2025, 12, 10)
	r := newResolver([]Fare{
		mkFare("NYC", "TYO", AddDays(d, 20), 700, 0, 840),
		mkFare("NYC", "TYO", AddDays(d, 21), 760, 0, 840),
	})

	q := r.Resolve("NYC", "TYO", d)
	if !q.Synthesized {
		t.Fatal("expected a synthesized fare")
	}
	if q.Fare.Price != 730 {
		t.Errorf("price = %v, want route median 730", q.Fare.Price)
	}
}

func TestResolve_NeverFails(t *testing.T) {
	r := newResolver(nil)
	var zero time.Time

	q := r.Resolve("AAA", "BBB", Midnight(zero))
	if q.Fare.Price <= 0 {
		t.Error("resolution must always produce a positive price")
	}
}
