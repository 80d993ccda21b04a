package fare

import (
	"fmt"
	"time"
)

// Date flexibility bounds for the resolver, in days after the preferred
// date. Lookups never search earlier than preferred: the schedule walk is
// monotonic and a fare in the past of the plan is useless.
const (
	nearFlexDays = 1 // tier 1: preferred date, then preferred+1
	wideFlexDays = 7 // tier 2: widen through preferred+7
)

// Defaults is the synthesized-price table used when no historical fare
// exists for a route within the widened search. Outbound (home to
// destination) and inbound (destination to home) legs are priced per
// destination with a flat fallback; every other pair is an intra-region leg.
type Defaults struct {
	Home         string             `json:"home" toml:"home"`
	Outbound     map[string]float64 `json:"outbound" toml:"outbound"`
	Inbound      map[string]float64 `json:"inbound" toml:"inbound"`
	Intra        map[string]float64 `json:"intra" toml:"intra"` // keyed "ORIGIN-DEST"
	OutboundFlat float64            `json:"outbound_flat" toml:"outbound_flat"`
	InboundFlat  float64            `json:"inbound_flat" toml:"inbound_flat"`
	IntraFlat    float64            `json:"intra_flat" toml:"intra_flat"`
}

// IntraKey builds the Intra map key for a directed pair.
func IntraKey(origin, destination string) string {
	return fmt.Sprintf("%s-%s", origin, destination)
}

// Price returns the default price for a directed pair.
func (d Defaults) Price(origin, destination string) float64 {
	switch {
	case origin == d.Home:
		if p, ok := d.Outbound[destination]; ok {
			return p
		}
		return d.OutboundFlat
	case destination == d.Home:
		if p, ok := d.Inbound[origin]; ok {
			return p
		}
		return d.InboundFlat
	default:
		if p, ok := d.Intra[IntraKey(origin, destination)]; ok {
			return p
		}
		return d.IntraFlat
	}
}

// Quote is a resolved segment price: the fare that will be flown plus the
// actual depart/arrive dates, which may sit up to wideFlexDays after the
// preferred date.
type Quote struct {
	Fare        Fare      `json:"fare"`
	Depart      time.Time `json:"depart"`
	Arrive      time.Time `json:"arrive"`
	Synthesized bool      `json:"synthesized"`
}

// Resolver finds the best available fare for a directed segment using a
// strict three-tier fallback chain:
//
//  1. Exact/near date: the preferred date, then preferred+1. The earlier
//     available date wins.
//  2. Widened date: preferred+2 through preferred+7 inclusive, taking the
//     first date that has any fare.
//  3. Synthesized default: the route's observed median price if the table
//     has any prices for the route, otherwise the Defaults table. The
//     synthesized fare sits on the exact preferred date and carries no
//     carrier or booking reference.
//
// Resolution never fails: absence of data always terminates in a defaulted
// price, so the search layer never handles a "no fare" case.
type Resolver struct {
	Table    *Table
	Defaults Defaults
}

// Resolve prices the directed segment (origin, destination) departing on or
// after preferred. The returned arrival is always the day after the actual
// departure (TransitDays).
func (r *Resolver) Resolve(origin, destination string, preferred time.Time) Quote {
	preferred = Midnight(preferred)

	// Tier 1: exact or next-day.
	if q, ok := r.lookupRange(origin, destination, preferred, 0, nearFlexDays); ok {
		return q
	}

	// Tier 2: widen forward, first available date wins.
	if q, ok := r.lookupRange(origin, destination, preferred, nearFlexDays+1, wideFlexDays); ok {
		return q
	}

	// Tier 3: synthesize on the preferred date itself.
	price := r.Defaults.Price(origin, destination)
	if median, ok := r.Table.RouteMedian(origin, destination); ok {
		price = median
	}
	return Quote{
		Fare: Fare{
			Origin:      origin,
			Destination: destination,
			Date:        preferred,
			Price:       price,
			Stops:       0,
		},
		Depart:      preferred,
		Arrive:      AddDays(preferred, TransitDays),
		Synthesized: true,
	}
}

// lookupRange scans preferred+from through preferred+to in date order and
// returns the first retained fare.
func (r *Resolver) lookupRange(origin, destination string, preferred time.Time, from, to int) (Quote, bool) {
	for delta := from; delta <= to; delta++ {
		d := AddDays(preferred, delta)
		if f, ok := r.Table.Lookup(origin, destination, d); ok {
			return Quote{
				Fare:   f,
				Depart: d,
				Arrive: AddDays(d, TransitDays),
			}, true
		}
	}
	return Quote{}, false
}
