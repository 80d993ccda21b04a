package trip

import (
	"sort"
)

// SummaryCell is one entry of the window × optional-inclusion matrix.
type SummaryCell struct {
	Window    string     `json:"window"`
	Included  bool       `json:"optionals_included"`
	Itinerary *Itinerary `json:"itinerary,omitempty"` // nil when the cell has no feasible itinerary
}

// Results is the structured search output handed to the presentation layer:
// the summary matrix and the global ranked list. The core performs no text
// formatting.
type Results struct {
	Windows  []string      `json:"windows"`
	Summary  []SummaryCell `json:"summary"`
	Ranked   []*Itinerary  `json:"ranked"`
	Searched int           `json:"searched"` // feasible itineraries before ranking
}

// Best returns the cheapest itinerary for one summary cell, or nil when the
// combination has no feasible itinerary (an absent cell, not an error).
func (r *Results) Best(window string, included bool) *Itinerary {
	for _, cell := range r.Summary {
		if cell.Window == window && cell.Included == included {
			return cell.Itinerary
		}
	}
	return nil
}

// less is the ranking order: ascending price, then earlier start date, then
// fewer total planned nights. Exact ties keep enumeration order via the
// stable sort.
func less(a, b *Itinerary) bool {
	if a.TotalPrice != b.TotalPrice {
		return a.TotalPrice < b.TotalPrice
	}
	if !a.Start.Equal(b.Start) {
		return a.Start.Before(b.Start)
	}
	return a.TotalNights() < b.TotalNights()
}

// rank collapses duplicates, sorts, and buckets itineraries into the
// summary matrix plus the global top-N list.
func rank(found []*Itinerary, windows []string, topN int) *Results {
	// Same route on the same flown dates can emerge from several
	// enumeration branches, especially when shifted fares pull nearby
	// trial start dates onto one schedule; the first occurrence wins.
	seen := make(map[string]bool, len(found))
	unique := found[:0]
	for _, it := range found {
		key := it.ID + it.Window
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, it)
	}

	sort.SliceStable(unique, func(i, j int) bool { return less(unique[i], unique[j]) })

	results := &Results{
		Windows:  windows,
		Searched: len(unique),
	}

	// The list is sorted, so the first itinerary seen per cell is the
	// cell's minimum under the full tie-break chain.
	for _, window := range windows {
		for _, included := range []bool{true, false} {
			var best *Itinerary
			for _, it := range unique {
				if it.Window == window && it.Included == included {
					best = it
					break
				}
			}
			results.Summary = append(results.Summary, SummaryCell{
				Window:    window,
				Included:  included,
				Itinerary: best,
			})
		}
	}

	if len(unique) > topN {
		unique = unique[:topN]
	}
	results.Ranked = unique
	return results
}
