package recommend

import (
	"sort"

	"smartcart/internal/catalog"
)

// Recommend produces up to 3 ranked suggestions for a normalized cart.
// Pure function of the model and the cart; an empty cart yields nil.
//
// Pipeline: base scoring (sum of affinities to cart items) -> blacklist
// filter -> category-diversity bias -> fallback variety fill -> final sort
// with deterministic tie-breaks.
func Recommend(m *Model, cart []string) []Recommendation {
	if len(cart) == 0 || m.Catalog.Len() == 0 {
		return nil
	}

	inCart := make(map[string]bool, len(cart))
	cartCats := make(map[catalog.Category]bool, len(cart))
	for _, name := range cart {
		inCart[name] = true
		if item, ok := m.Catalog.Get(name); ok {
			cartCats[item.Category] = true
		}
	}

	blacklisted := make(map[string]bool, len(m.Config.Blacklist))
	for _, name := range m.Config.Blacklist {
		blacklisted[name] = true
	}

	// Base scoring over the whole catalog. Zero-affinity items only enter
	// through the fallback.
	type candidate struct {
		name  string
		score float64
	}
	var candidates []candidate
	for _, name := range m.Catalog.Items() {
		if inCart[name] || blacklisted[name] {
			continue
		}
		var base float64
		for _, c := range cart {
			base += m.Matrix.Affinity(c, name)
		}
		if base <= 0 {
			continue
		}
		if item, ok := m.Catalog.Get(name); ok && !cartCats[item.Category] {
			base += m.Config.CategoryBias
		}
		candidates = append(candidates, candidate{name: name, score: base})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		ci := m.Catalog.Count(candidates[i].name)
		cj := m.Catalog.Count(candidates[j].name)
		if ci != cj {
			return ci > cj
		}
		return m.Catalog.InsertionIndex(candidates[i].name) <
			m.Catalog.InsertionIndex(candidates[j].name)
	})

	var recs []Recommendation
	chosen := make(map[string]bool, TopN)
	for _, cand := range candidates {
		if len(recs) == TopN {
			break
		}
		recs = appendRec(recs, m, cand.name, cand.score)
		chosen[cand.name] = true
	}

	// Fallback variety: fill remaining slots from per-category popularity,
	// cycling categories not yet represented in the recommendation set.
	if len(recs) < TopN {
		recs = fillFallback(m, recs, inCart, blacklisted, chosen)
	}
	return recs
}

func fillFallback(
	m *Model,
	recs []Recommendation,
	inCart, blacklisted, chosen map[string]bool,
) []Recommendation {
	offsets := make(map[catalog.Category]int)

	for len(recs) < TopN {
		covered := make(map[catalog.Category]bool, len(recs))
		for _, r := range recs {
			covered[r.Category] = true
		}

		added := false
		for _, cat := range catalog.Categories() {
			if len(recs) == TopN {
				break
			}
			if covered[cat] {
				continue
			}
			ranked := m.Catalog.TopByCategory(cat)
			for offsets[cat] < len(ranked) {
				name := ranked[offsets[cat]].Item.Name
				offsets[cat]++
				if inCart[name] || blacklisted[name] || chosen[name] {
					continue
				}
				recs = appendRec(recs, m, name, 0)
				chosen[name] = true
				added = true
				break
			}
		}
		if !added {
			// Every uncovered category is exhausted; allow repeats of
			// covered categories before giving up entirely.
			for _, cat := range catalog.Categories() {
				if len(recs) == TopN {
					break
				}
				ranked := m.Catalog.TopByCategory(cat)
				for offsets[cat] < len(ranked) {
					name := ranked[offsets[cat]].Item.Name
					offsets[cat]++
					if inCart[name] || blacklisted[name] || chosen[name] {
						continue
					}
					recs = appendRec(recs, m, name, 0)
					chosen[name] = true
					added = true
					break
				}
			}
			if !added {
				break
			}
		}
	}
	return recs
}

func appendRec(recs []Recommendation, m *Model, name string, score float64) []Recommendation {
	cat := catalog.CategoryOther
	if item, ok := m.Catalog.Get(name); ok {
		cat = item.Category
	}
	return append(recs, Recommendation{
		Rank:     len(recs) + 1,
		Item:     name,
		Score:    score,
		Category: cat,
	})
}
