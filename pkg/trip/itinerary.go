package trip

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/matzehuels/fareplan/pkg/cache"
	"github.com/matzehuels/fareplan/pkg/fare"
)

// Segment is one flown leg of an itinerary. Depart and Arrive are the
// dates of the fare actually chosen, which may sit after the planned
// departure when the resolver had to shift forward.
type Segment struct {
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Depart      time.Time `json:"depart"`
	Arrive      time.Time `json:"arrive"`
	Price       float64   `json:"price"`
	Duration    int       `json:"duration_minutes,omitempty"`
	Carrier     string    `json:"carrier,omitempty"`
	BookingRef  string    `json:"booking_ref,omitempty"`
	Synthesized bool      `json:"synthesized,omitempty"`
}

// Itinerary is a fully priced round trip. Derived attributes (start, days,
// nights) come from the flown schedule: when the resolver shifts a leg to a
// later fare date, the shift carries through every subsequent arrival and
// departure.
type Itinerary struct {
	ID            string         `json:"id"`
	Window        string         `json:"window"`
	Included      bool           `json:"optionals_included"`
	Order         []string       `json:"order"`
	Nights        map[string]int `json:"nights"`
	Segments      []Segment      `json:"segments"`
	TotalPrice    float64        `json:"total_price"`
	TotalDuration int            `json:"total_duration_minutes"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	Days          int            `json:"days"`
	AnchorArrive  time.Time      `json:"anchor_arrive"`
	AnchorDepart  time.Time      `json:"anchor_depart"`
}

// TotalNights sums the planned nights across all visited cities.
func (it *Itinerary) TotalNights() int {
	total := 0
	for _, n := range it.Nights {
		total += n
	}
	return total
}

// RouteString formats the closed loop, e.g. "NYC → TYO → HKG → NYC".
func (it *Itinerary) RouteString(home string) string {
	parts := append([]string{home}, it.Order...)
	parts = append(parts, home)
	return strings.Join(parts, " → ")
}

// round2 rounds to cents.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// identity is the dedupe key: same route flown on the same dates collapses
// to one itinerary regardless of which enumeration branch produced it.
// Shifted legs make several trial start dates land on the same flown
// schedule, so the key is built from the flown stays, not the plan.
func identity(start time.Time, stays []Stay) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s", start.Format(fare.DateLayout))
	for _, s := range stays {
		fmt.Fprintf(&b, "|%s:%s:%s", s.City,
			s.Arrive.Format(fare.DateLayout), s.Depart.Format(fare.DateLayout))
	}
	return b.String()
}

// assemble prices an allocation into an itinerary by re-walking the route
// through the resolver. Resolution never fails, but it may shift a leg to a
// later fare date; the shifted arrival becomes the base for the next city's
// stay, so the whole downstream schedule reflows. The flown dates are then
// held to the same constraints as the plan: the first departure must stay
// inside the window, the anchor arrival must still make the span start, and
// the flown trip length must stay inside the bounds. assemble returns nil
// when a shift breaks any of them; the allocation's own validation only
// covered the planned calendar.
func (c *Config) assemble(alloc Allocation, r *fare.Resolver, window Window, included bool) *Itinerary {
	segments := make([]Segment, 0, len(alloc.Stays)+1)
	totalPrice := 0.0
	totalDuration := 0

	addLeg := func(origin, destination string, planned time.Time) fare.Quote {
		q := r.Resolve(origin, destination, planned)
		segments = append(segments, Segment{
			Origin:      origin,
			Destination: destination,
			Depart:      q.Depart,
			Arrive:      q.Arrive,
			Price:       q.Fare.Price,
			Duration:    q.Fare.Duration,
			Carrier:     q.Fare.Carrier,
			BookingRef:  q.Fare.BookingRef,
			Synthesized: q.Synthesized,
		})
		totalPrice += q.Fare.Price
		totalDuration += q.Fare.Duration
		return q
	}

	q := addLeg(c.Home, alloc.Route[0], alloc.Start)
	if !window.Contains(q.Depart) {
		return nil
	}
	start := q.Depart

	stays := make([]Stay, 0, len(alloc.Route))
	nights := make(map[string]int, len(alloc.Route))
	arrive := q.Arrive
	for i, city := range alloc.Route {
		var depart time.Time
		if city == c.Anchor.City {
			if arrive.After(c.Anchor.Start.Time) {
				return nil
			}
			depart = fare.AddDays(c.Anchor.End.Time, 1)
		} else {
			depart = fare.AddDays(arrive, alloc.Nights[city])
		}

		next := c.Home
		if i+1 < len(alloc.Route) {
			next = alloc.Route[i+1]
		}
		q = addLeg(city, next, depart)

		stays = append(stays, Stay{City: city, Arrive: arrive, Depart: q.Depart})
		nights[city] = fare.DaysBetween(arrive, q.Depart)
		arrive = q.Arrive
	}

	end := arrive
	days := fare.DaysBetween(start, end) + 1
	if days < c.MinDays || days > c.MaxDays {
		return nil
	}

	var anchorArrive, anchorDepart time.Time
	for _, stay := range stays {
		if stay.City == c.Anchor.City {
			anchorArrive, anchorDepart = stay.Arrive, stay.Depart
			break
		}
	}

	return &Itinerary{
		ID:            cache.ShortHash([]byte(identity(start, stays))),
		Window:        window.Name,
		Included:      included,
		Order:         alloc.Route,
		Nights:        nights,
		Segments:      segments,
		TotalPrice:    round2(totalPrice),
		TotalDuration: totalDuration,
		Start:         start,
		End:           end,
		Days:          days,
		AnchorArrive:  anchorArrive,
		AnchorDepart:  anchorDepart,
	}
}
