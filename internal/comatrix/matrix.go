package comatrix

// Matrix is the directed, sparse affinity matrix. affinity(A,B) is the
// fraction of A's appearances that co-occur with B, so rows are normalized
// per source item and the matrix is not symmetric. Immutable once built;
// safe for unlimited concurrent readers.
type Matrix struct {
	affinity map[string]map[string]float64
	totals   map[string]int
}

// Affinity returns affinity(source, target). Pairs never observed together
// are 0; self-pairs are never stored.
func (m *Matrix) Affinity(source, target string) float64 {
	row, ok := m.affinity[source]
	if !ok {
		return 0
	}
	return row[target]
}

// Total returns how many sampled orders the item appeared in.
func (m *Matrix) Total(item string) int {
	return m.totals[item]
}

// Entry is one materialized affinity cell, used for serialization.
type Entry struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Score  float64 `json:"score"`
}

// Entries returns every materialized cell. Ordering is unspecified;
// consumers that need determinism must sort.
func (m *Matrix) Entries() []Entry {
	var entries []Entry
	for source, row := range m.affinity {
		for target, score := range row {
			entries = append(entries, Entry{Source: source, Target: target, Score: score})
		}
	}
	return entries
}

// Restore rebuilds a matrix from persisted entries and totals.
func Restore(entries []Entry, totals map[string]int) *Matrix {
	m := &Matrix{
		affinity: make(map[string]map[string]float64),
		totals:   totals,
	}
	if m.totals == nil {
		m.totals = make(map[string]int)
	}
	for _, e := range entries {
		row, ok := m.affinity[e.Source]
		if !ok {
			row = make(map[string]float64)
			m.affinity[e.Source] = row
		}
		row[e.Target] = e.Score
	}
	return m
}

// Totals returns the per-item order-occurrence counts.
func (m *Matrix) Totals() map[string]int {
	return m.totals
}
