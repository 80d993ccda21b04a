// Package trip implements the itinerary search core: the constraint model,
// route enumeration, night allocation, itinerary assembly, and ranking.
//
// The search is deliberately two-stage: structural enumeration (city
// orderings, night combinations, start dates) is permissive, and temporal
// validation (anchor coverage, trip length) prunes branches afterwards.
// Every stage is deterministic, so identical inputs always produce identical
// ranked output.
package trip

import (
	"slices"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/fareplan/pkg/errors"
	"github.com/matzehuels/fareplan/pkg/fare"
)

// Date is a calendar date that unmarshals from "YYYY-MM-DD" strings in TOML
// and JSON.
type Date struct {
	time.Time
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(fare.DateLayout, string(text))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.Format(fare.DateLayout)), nil
}

// On builds a Date from a calendar day.
func On(year int, month time.Month, day int) Date {
	return Date{fare.Day(year, month, day)}
}

// Window is a named closed departure-date range from the home city.
type Window struct {
	Name  string `json:"name" toml:"name"`
	Start Date   `json:"start" toml:"start"`
	End   Date   `json:"end" toml:"end"`
}

// Contains reports whether t falls inside the window, endpoints included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start.Time) && !t.After(w.End.Time)
}

// Anchor is the city and inclusive date span every itinerary must be
// physically present in.
type Anchor struct {
	City  string `json:"city" toml:"city"`
	Start Date   `json:"start" toml:"start"`
	End   Date   `json:"end" toml:"end"`
}

// Covers reports whether an occupancy interval [arrive, depart) contains the
// anchor span: arrival on or before the span start, departure on or after
// the day following the span end.
func (a Anchor) Covers(arrive, depart time.Time) bool {
	return !arrive.After(a.Start.Time) && !depart.Before(fare.AddDays(a.End.Time, 1))
}

// NightSpec is the stay-length preference for one destination city.
type NightSpec struct {
	Nights   int  `json:"nights" toml:"nights"` // preferred nights
	Min      int  `json:"min" toml:"min"`       // hard floor
	Flex     int  `json:"flex" toml:"flex"`     // ± flexibility radius
	Optional bool `json:"optional" toml:"optional"`
}

// Band returns the inclusive [lo, hi] night range for the spec: the
// preferred count ± flex, with both ends clipped below at the floor.
func (s NightSpec) Band() (lo, hi int) {
	lo = max(s.Min, s.Nights-s.Flex)
	hi = max(s.Min, s.Nights+s.Flex)
	return lo, hi
}

// Config is the constraint model: pure configuration constructed once at
// startup and passed to every component. The search never consults ambient
// state.
type Config struct {
	Home    string               `json:"home" toml:"home"`
	Cities  []string             `json:"cities" toml:"cities"` // fixed enumeration order
	Anchor  Anchor               `json:"anchor" toml:"anchor"`
	Windows []Window             `json:"windows" toml:"windows"`
	MinDays int                  `json:"min_days" toml:"min_days"`
	MaxDays int                  `json:"max_days" toml:"max_days"`
	Nights  map[string]NightSpec `json:"nights" toml:"nights"`
	Pricing fare.Defaults        `json:"pricing" toml:"pricing"`
}

// DefaultConfig returns the built-in scenario: New York home, a Hong Kong
// New Year anchor, three December departure windows, and a 17-25 day trip.
func DefaultConfig() *Config {
	return &Config{
		Home:   "NYC",
		Cities: []string{"TYO", "HKG", "TPE", "SHA"},
		Anchor: Anchor{City: "HKG", Start: On(2025, 12, 28), End: On(2026, 1, 1)},
		Windows: []Window{
			{Name: "early", Start: On(2025, 12, 6), End: On(2025, 12, 10)},
			{Name: "mid", Start: On(2025, 12, 11), End: On(2025, 12, 17)},
			{Name: "late", Start: On(2025, 12, 18), End: On(2025, 12, 24)},
		},
		MinDays: 17,
		MaxDays: 25,
		Nights: map[string]NightSpec{
			"TYO": {Nights: 5, Min: 4, Flex: 1},
			"HKG": {Nights: 4, Min: 4, Flex: 1}, // anchor: actual nights follow from the span
			"TPE": {Nights: 4, Min: 4, Flex: 1},
			// SHA's floor pins the band to exactly 4 nights.
			"SHA": {Nights: 4, Min: 4, Flex: 0, Optional: true},
		},
		Pricing: fare.Defaults{
			Home:     "NYC",
			Outbound: map[string]float64{"TYO": 900, "HKG": 1100, "TPE": 950, "SHA": 1200},
			Inbound:  map[string]float64{"TYO": 570, "HKG": 1070, "TPE": 839, "SHA": 1570},
			Intra: map[string]float64{
				fare.IntraKey("TYO", "HKG"): 120,
				fare.IntraKey("HKG", "TYO"): 120,
				fare.IntraKey("HKG", "TPE"): 70,
				fare.IntraKey("TPE", "HKG"): 55,
				fare.IntraKey("TPE", "SHA"): 140,
				fare.IntraKey("SHA", "TPE"): 150,
			},
			OutboundFlat: 1000,
			InboundFlat:  900,
			IntraFlat:    120,
		},
	}
}

// Load reads a TOML constraint file and validates it.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the model for internal consistency. The search must not
// run against an inconsistent model, so any defect here is fatal.
func (c *Config) Validate() error {
	if err := errors.ValidateCityCode(c.Home); err != nil {
		return err
	}
	if len(c.Cities) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "no destination cities configured")
	}
	for _, city := range c.Cities {
		if err := errors.ValidateCityCode(city); err != nil {
			return err
		}
		if city == c.Home {
			return errors.New(errors.ErrCodeInvalidConfig, "home city %s cannot be a destination", city)
		}
	}

	if !slices.Contains(c.Cities, c.Anchor.City) {
		return errors.New(errors.ErrCodeInvalidConfig, "anchor city %s is not a configured destination", c.Anchor.City)
	}
	if c.Anchor.Start.After(c.Anchor.End.Time) {
		return errors.New(errors.ErrCodeInvalidConfig, "anchor span starts after it ends")
	}
	if spec, ok := c.Nights[c.Anchor.City]; ok && spec.Optional {
		return errors.New(errors.ErrCodeInvalidConfig, "anchor city %s cannot be optional", c.Anchor.City)
	}

	if len(c.Windows) == 0 {
		return errors.New(errors.ErrCodeInvalidWindow, "no departure windows configured")
	}
	for _, w := range c.Windows {
		if w.Name == "" {
			return errors.New(errors.ErrCodeInvalidWindow, "window with empty name")
		}
		if w.Start.After(w.End.Time) {
			return errors.New(errors.ErrCodeInvalidWindow, "window %s starts after it ends", w.Name)
		}
	}
	for i, a := range c.Windows {
		for _, b := range c.Windows[i+1:] {
			if a.Name == b.Name {
				return errors.New(errors.ErrCodeInvalidWindow, "duplicate window name %s", a.Name)
			}
			if !a.Start.After(b.End.Time) && !b.Start.After(a.End.Time) {
				return errors.New(errors.ErrCodeInvalidWindow, "windows %s and %s overlap", a.Name, b.Name)
			}
		}
	}

	if c.MinDays <= 0 || c.MaxDays < c.MinDays {
		return errors.New(errors.ErrCodeInvalidConfig, "trip length bounds [%d, %d] are inconsistent", c.MinDays, c.MaxDays)
	}

	for _, city := range c.Cities {
		spec, ok := c.Nights[city]
		if !ok {
			return errors.New(errors.ErrCodeInvalidNights, "city %s has no night spec", city)
		}
		if spec.Min < 0 || spec.Flex < 0 {
			return errors.New(errors.ErrCodeInvalidNights, "city %s has negative night bounds", city)
		}
		// The floor may only clip from below; a floor above the preferred
		// count means the spec contradicts itself.
		if city != c.Anchor.City && spec.Min > spec.Nights {
			return errors.New(errors.ErrCodeInvalidNights, "city %s floor %d exceeds preferred nights %d", city, spec.Min, spec.Nights)
		}
	}

	if c.Pricing.Home == "" {
		c.Pricing.Home = c.Home
	}
	return nil
}

// Window returns the named departure window.
func (c *Config) Window(name string) (Window, bool) {
	for _, w := range c.Windows {
		if w.Name == name {
			return w, true
		}
	}
	return Window{}, false
}

// WindowNames returns the configured window names in order.
func (c *Config) WindowNames() []string {
	names := make([]string, len(c.Windows))
	for i, w := range c.Windows {
		names[i] = w.Name
	}
	return names
}

// Optionals returns the optional cities in configured order.
func (c *Config) Optionals() []string {
	var out []string
	for _, city := range c.Cities {
		if c.Nights[city].Optional {
			out = append(out, city)
		}
	}
	return out
}

// IncludedCities returns the city set for one inclusion choice, preserving
// the configured order: every mandatory city, plus the optional cities when
// withOptionals is set.
func (c *Config) IncludedCities(withOptionals bool) []string {
	var out []string
	for _, city := range c.Cities {
		if c.Nights[city].Optional && !withOptionals {
			continue
		}
		out = append(out, city)
	}
	return out
}
