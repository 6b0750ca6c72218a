package catalog

import (
	"sort"
	"strings"
)

// Catalog is the immutable set of distinct items observed in training
// orders, with per-category popularity rankings and a case-insensitive
// lookup table. Built once per dataset snapshot; read-only afterward.
type Catalog struct {
	items         map[string]*Item
	insertion     []string
	insertionIdx  map[string]int
	counts        map[string]int
	lowerToOrig   map[string]string
	topByCategory map[Category][]RankedItem
}

// Build constructs the catalog from cleaned per-order item lists.
// Deterministic: the same order collection always yields identical
// assignments and rankings (ties broken by first occurrence).
func Build(orders [][]string, rules RuleSet) *Catalog {
	c := &Catalog{
		items:        make(map[string]*Item),
		insertionIdx: make(map[string]int),
		counts:       make(map[string]int),
		lowerToOrig:  make(map[string]string),
	}

	for _, order := range orders {
		for _, name := range order {
			if name == "" {
				continue
			}
			if _, seen := c.items[name]; !seen {
				c.items[name] = &Item{
					Name:       name,
					Category:   rules.Classify(name),
					Attributes: rules.ItemAttributes(name),
				}
				c.insertionIdx[name] = len(c.insertion)
				c.insertion = append(c.insertion, name)
				c.lowerToOrig[strings.ToLower(name)] = name
			}
			c.counts[name]++
		}
	}

	c.topByCategory = c.rankByCategory()
	return c
}

// Restore rebuilds a catalog from persisted entries. Items must be in the
// original insertion order with parallel occurrence counts so that rankings
// and tie-breaks reproduce the original build exactly.
func Restore(items []*Item, counts []int) *Catalog {
	c := &Catalog{
		items:        make(map[string]*Item, len(items)),
		insertionIdx: make(map[string]int, len(items)),
		counts:       make(map[string]int, len(items)),
		lowerToOrig:  make(map[string]string, len(items)),
	}
	for i, item := range items {
		c.items[item.Name] = item
		c.insertionIdx[item.Name] = len(c.insertion)
		c.insertion = append(c.insertion, item.Name)
		c.lowerToOrig[strings.ToLower(item.Name)] = item.Name
		if i < len(counts) {
			c.counts[item.Name] = counts[i]
		}
	}
	c.topByCategory = c.rankByCategory()
	return c
}

func (c *Catalog) rankByCategory() map[Category][]RankedItem {
	top := make(map[Category][]RankedItem)
	for _, name := range c.insertion {
		item := c.items[name]
		top[item.Category] = append(top[item.Category], RankedItem{
			Item:  item,
			Count: c.counts[name],
		})
	}
	for cat := range top {
		ranked := top[cat]
		// Stable sort keeps first-seen order on equal counts.
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Count > ranked[j].Count
		})
	}
	return top
}

// Lookup resolves a free-case item name to its catalog entry.
func (c *Catalog) Lookup(name string) (*Item, bool) {
	orig, ok := c.lowerToOrig[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return c.items[orig], true
}

// Get returns the catalog entry for an exact canonical name.
func (c *Catalog) Get(name string) (*Item, bool) {
	item, ok := c.items[name]
	return item, ok
}

// Items returns the canonical item names in catalog insertion order.
func (c *Catalog) Items() []string {
	return c.insertion
}

// Len returns the number of distinct items.
func (c *Catalog) Len() int {
	return len(c.insertion)
}

// Count returns the total occurrence count of an item across all orders.
func (c *Catalog) Count(name string) int {
	return c.counts[name]
}

// InsertionIndex returns the first-seen position of an item, used as the
// final tie-breaker for deterministic ranking.
func (c *Catalog) InsertionIndex(name string) int {
	idx, ok := c.insertionIdx[name]
	if !ok {
		return len(c.insertion)
	}
	return idx
}

// TopByCategory returns items of one category ranked by descending
// occurrence count.
func (c *Catalog) TopByCategory(cat Category) []RankedItem {
	return c.topByCategory[cat]
}

// Categories returns the fixed category cycle order used for fallback
// variety.
func Categories() []Category {
	return []Category{
		CategoryMain, CategorySide, CategoryDrink,
		CategoryDip, CategoryDessert, CategoryOther,
	}
}
