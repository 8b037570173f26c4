package copyright

import (
	"sort"
	"strings"
)

// Merge combines notices naming the same holder into one notice each.
//
// Grouping is by whitespace-normalized holder name. The merged notice uses
// the most frequent prefix in its group (ties break in enum declaration
// order) and the compacted union of all year entries. The result is sorted
// by Notice.Less.
func Merge(notices []Notice) []Notice {
	type group struct {
		name        string
		years       []YearRange
		prefixCount map[Prefix]int
	}

	groups := make(map[string]*group)
	order := make([]string, 0, len(notices))

	for _, n := range notices {
		key := normalizeHolder(n.Name)
		g, ok := groups[key]
		if !ok {
			g = &group{name: key, prefixCount: make(map[Prefix]int)}
			groups[key] = g
			order = append(order, key)
		}

		g.years = append(g.years, n.Years...)
		g.prefixCount[n.Prefix]++
	}

	out := make([]Notice, 0, len(order))
	for _, key := range order {
		g := groups[key]

		best := PrefixSymbol + 1
		bestCount := 0
		for p := PrefixSPDX; p <= PrefixSymbol; p++ {
			if g.prefixCount[p] > bestCount {
				best = p
				bestCount = g.prefixCount[p]
			}
		}

		out = append(out, Notice{
			Name:   g.name,
			Prefix: best,
			Years:  Compact(g.years),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// normalizeHolder collapses internal whitespace in a holder name.
func normalizeHolder(name string) string {
	return strings.Join(strings.Fields(name), " ")
}
