// Package fare stores per-date nonstop fares and resolves segment prices.
//
// The package has three parts:
//   - Table: the deduplicated (origin, destination, date) fare map, built
//     once from raw records and read-only afterwards
//   - CSV codec: parsing fare rows from disk and writing a fill-in template
//   - Resolver: the three-tier forward-only lookup used during search
//     (exact/near date, widened date, synthesized default)
//
// All prices are treated as USD. Dates are local calendar dates; the time
// component is always midnight UTC.
package fare

import (
	"sort"
	"strings"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// TransitDays is the fixed transit increment: a segment always arrives the
// calendar day after it departs. This models an overnight nonstop and is a
// contract of the planner, not a physical claim.
const TransitDays = 1

// Day returns the calendar date (y, m, d) at midnight UTC.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Midnight truncates t to its calendar date at midnight UTC.
func Midnight(t time.Time) time.Time {
	return Day(t.Year(), t.Month(), t.Day())
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween returns the number of calendar days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(Midnight(b).Sub(Midnight(a)).Hours() / 24)
}

// Fare is a single nonstop fare for a route on a date.
// Records are immutable once parsed.
type Fare struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Stops       int       `json:"stops"`
	Duration    int       `json:"duration_minutes,omitempty"` // minutes, 0 when unknown
	Carrier     string    `json:"carrier,omitempty"`
	BookingRef  string    `json:"booking_ref,omitempty"`
}

// Key uniquely identifies the retained best fare for a route-date.
type Key struct {
	Origin      string
	Destination string
	Date        string // DateLayout
}

// KeyOf builds the table key for a fare lookup.
func KeyOf(origin, destination string, date time.Time) Key {
	return Key{
		Origin:      strings.ToUpper(origin),
		Destination: strings.ToUpper(destination),
		Date:        Midnight(date).Format(DateLayout),
	}
}

type route struct {
	origin      string
	destination string
}

// Table holds the cheapest known nonstop fare per (origin, destination, date).
//
// Construction enforces the nonstop-only policy (records with stops != 0 are
// dropped) and the dedupe precedence: lower price wins, and on an exact price
// tie lower duration wins. A missing duration counts as 0 and therefore wins
// duration ties; that precedence is part of the table's contract.
//
// The table is immutable after New and safe for concurrent readers.
type Table struct {
	byKey       map[Key]Fare
	routePrices map[route][]float64
}

// New builds a Table from raw records. Building is idempotent: the same
// input set always yields the same table.
func New(records []Fare) *Table {
	t := &Table{
		byKey:       make(map[Key]Fare),
		routePrices: make(map[route][]float64),
	}
	for _, f := range records {
		if f.Stops != 0 {
			// Nonstops only
			continue
		}
		if f.Price < 0 {
			continue
		}
		f.Origin = strings.ToUpper(f.Origin)
		f.Destination = strings.ToUpper(f.Destination)
		f.Date = Midnight(f.Date)

		key := KeyOf(f.Origin, f.Destination, f.Date)
		existing, ok := t.byKey[key]
		if !ok || f.Price < existing.Price ||
			(f.Price == existing.Price && f.Duration < existing.Duration) {
			t.byKey[key] = f
		}
		r := route{key.Origin, key.Destination}
		t.routePrices[r] = append(t.routePrices[r], f.Price)
	}
	return t
}

// Lookup returns the retained fare for the route on the given date.
func (t *Table) Lookup(origin, destination string, date time.Time) (Fare, bool) {
	f, ok := t.byKey[KeyOf(origin, destination, date)]
	return f, ok
}

// Len returns the number of retained route-date fares.
func (t *Table) Len() int {
	return len(t.byKey)
}

// RouteMedian returns the median of every observed price for the route,
// across all dates, including records that lost the per-date dedupe.
// It reports false when the table has no prices for the route.
func (t *Table) RouteMedian(origin, destination string) (float64, bool) {
	prices := t.routePrices[route{strings.ToUpper(origin), strings.ToUpper(destination)}]
	if len(prices) == 0 {
		return 0, false
	}
	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], true
	}
	return (sorted[mid-1] + sorted[mid]) / 2, true
}
