package trip

import (
	"slices"
	"time"

	"github.com/matzehuels/fareplan/pkg/fare"
)

// Stay is one city's planned occupancy: arrival on Arrive, departure on
// Depart, Depart-Arrive nights in between.
type Stay struct {
	City   string    `json:"city"`
	Arrive time.Time `json:"arrive"`
	Depart time.Time `json:"depart"`
}

// Nights returns the stay's night count.
func (s Stay) Nights() int {
	return fare.DaysBetween(s.Arrive, s.Depart)
}

// Allocation is a fully dated route: the planned calendar the itinerary
// will be priced against.
type Allocation struct {
	Route  []string       `json:"route"`
	Start  time.Time      `json:"start"` // first departure from home
	End    time.Time      `json:"end"`   // arrival back home
	Days   int            `json:"days"`
	Stays  []Stay         `json:"stays"`
	Nights map[string]int `json:"nights"` // per city, anchor's derived
}

// allocate walks one (route, nights, start date) combination into a dated
// schedule, or reports false when the combination violates a constraint.
//
// The walk is cumulative: the first departure is the start date, each
// arrival is the previous departure plus the transit day, and each
// departure is the arrival plus the city's chosen nights. The anchor city
// is the exception: its nights are not chosen. Its arrival falls out of the
// preceding schedule and must make the span start, and its departure is
// pinned to the day after the span ends. The derived stay length is
// whatever that difference happens to be.
func (c *Config) allocate(route []string, nights map[string]int, start time.Time) (Allocation, bool) {
	stays := make([]Stay, 0, len(route))
	counts := make(map[string]int, len(route))

	depart := start
	for _, city := range route {
		arrive := fare.AddDays(depart, fare.TransitDays)
		if city == c.Anchor.City {
			if arrive.After(c.Anchor.Start.Time) {
				return Allocation{}, false
			}
			depart = fare.AddDays(c.Anchor.End.Time, 1)
		} else {
			depart = fare.AddDays(arrive, nights[city])
		}
		stays = append(stays, Stay{City: city, Arrive: arrive, Depart: depart})
		counts[city] = fare.DaysBetween(arrive, depart)
	}

	end := fare.AddDays(depart, fare.TransitDays)
	days := fare.DaysBetween(start, end) + 1
	if days < c.MinDays || days > c.MaxDays {
		return Allocation{}, false
	}

	return Allocation{
		Route:  slices.Clone(route),
		Start:  start,
		End:    end,
		Days:   days,
		Stays:  stays,
		Nights: counts,
	}, true
}

// Allocations enumerates every valid dated schedule for a route and start
// date: the Cartesian product of each non-anchor city's night band, walked
// and validated by allocate. Most combinations are rejected; the search is
// permissive at generation and strict at validation.
//
// Enumeration order is deterministic: the rightmost city's band varies
// fastest, mirroring a nested loop over the route.
func (c *Config) Allocations(route []string, start time.Time) []Allocation {
	type band struct {
		city   string
		lo, hi int
	}
	var bands []band
	for _, city := range route {
		if city == c.Anchor.City {
			continue
		}
		lo, hi := c.Nights[city].Band()
		bands = append(bands, band{city, lo, hi})
	}

	choice := make([]int, len(bands))
	for i, b := range bands {
		choice[i] = b.lo
	}

	var out []Allocation
	for {
		nights := make(map[string]int, len(bands))
		for i, b := range bands {
			nights[b.city] = choice[i]
		}
		if alloc, ok := c.allocate(route, nights, start); ok {
			out = append(out, alloc)
		}

		// Advance the rightmost counter, carrying leftwards.
		i := len(bands) - 1
		for i >= 0 {
			choice[i]++
			if choice[i] <= bands[i].hi {
				break
			}
			choice[i] = bands[i].lo
			i--
		}
		if i < 0 {
			break
		}
	}
	return out
}
