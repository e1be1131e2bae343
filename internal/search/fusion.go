package search

import "sort"

// RRFConstant dampens the advantage of top ranks when fusing rankings.
// With k=60, the top item of a single list scores 1/60 and rank decays
// slowly enough that agreement across lists outweighs a single high rank.
const RRFConstant = 60

// FuseRanked merges rankings with Reciprocal Rank Fusion. Each item
// accumulates 1/(k+r) per list it appears in, with r its zero-based rank
// in that list. Items are matched across lists by the identity function,
// and the first occurrence supplies the retained copy. Output is sorted
// by fused score descending, ties broken by identity ascending.
func FuseRanked[T any](identity func(T) string, rankings ...[]Scored[T]) []Scored[T] {
	type fused struct {
		item  T
		id    string
		score float64
	}

	byID := make(map[string]*fused)
	var order []*fused
	for _, ranking := range rankings {
		for rank, entry := range ranking {
			id := identity(entry.Item)
			f, ok := byID[id]
			if !ok {
				f = &fused{item: entry.Item, id: id}
				byID[id] = f
				order = append(order, f)
			}
			f.score += 1.0 / float64(RRFConstant+rank)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		if order[i].score != order[j].score {
			return order[i].score > order[j].score
		}
		return order[i].id < order[j].id
	})

	results := make([]Scored[T], len(order))
	for i, f := range order {
		results[i] = Scored[T]{Item: f.item, Score: f.score}
	}
	return results
}
