package trip

import (
	"github.com/matzehuels/fareplan/pkg/perm"
)

// Routes returns every ordering of the included city set as a round trip
// from the home city (home endpoints implicit).
//
// Enumeration is lexicographic over the configured city ordering, so the
// sequence of routes is stable across runs and downstream price ties
// resolve deterministically.
//
// No temporal pruning happens here. Whether an ordering can satisfy the
// anchor span depends on the chosen nights, not the order alone, so orders
// that look hopeless are still emitted and rejected by the allocator.
func Routes(cities []string) [][]string {
	perms := perm.Lex(len(cities))
	routes := make([][]string, len(perms))
	for i, p := range perms {
		route := make([]string, len(p))
		for j, idx := range p {
			route[j] = cities[idx]
		}
		routes[i] = route
	}
	return routes
}
