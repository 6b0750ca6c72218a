package comatrix

import (
	"math"
	"reflect"
	"sort"
	"testing"
)

func wingsOrders() [][]string {
	return [][]string{
		{"Wings", "Fries"},
		{"Wings", "Ranch"},
		{"Wings", "Fries", "Ranch"},
	}
}

func TestBuildWingsScenario(t *testing.T) {
	m := Build(wingsOrders(), BuildOptions{SampleN: 3, Shards: 1})

	cases := []struct {
		source, target string
		want           float64
	}{
		{"Wings", "Fries", 2.0 / 3.0},
		{"Wings", "Ranch", 2.0 / 3.0},
		{"Fries", "Wings", 1.0},
		{"Ranch", "Wings", 1.0},
		{"Fries", "Ranch", 0.5},
	}
	for _, tc := range cases {
		got := m.Affinity(tc.source, tc.target)
		if math.Abs(got-tc.want) > 1e-12 {
			t.Errorf("affinity(%s,%s) = %v, want %v", tc.source, tc.target, got, tc.want)
		}
	}

	if m.Affinity("Wings", "Wings") != 0 {
		t.Error("self-affinity must be absent")
	}
	if m.Affinity("Wings", "Unseen") != 0 {
		t.Error("unobserved pair must be zero")
	}
}

func TestAffinityRangeProperty(t *testing.T) {
	orders := [][]string{
		{"A", "B", "C"},
		{"A", "B"},
		{"B", "C", "D"},
		{"A", "D"},
		{"C"},
	}
	m := Build(orders, BuildOptions{Shards: 1})

	for _, e := range m.Entries() {
		if e.Score < 0 || e.Score > 1 {
			t.Errorf("affinity(%s,%s) = %v out of [0,1]", e.Source, e.Target, e.Score)
		}
		if e.Source == e.Target {
			t.Errorf("self pair materialized for %s", e.Source)
		}
	}
}

func TestDirectedNormalization(t *testing.T) {
	orders := [][]string{
		{"A", "B"},
		{"A", "C"},
	}
	m := Build(orders, BuildOptions{Shards: 1})

	// A appears twice, B once: the two directions differ.
	if got := m.Affinity("A", "B"); got != 0.5 {
		t.Errorf("affinity(A,B) = %v, want 0.5", got)
	}
	if got := m.Affinity("B", "A"); got != 1.0 {
		t.Errorf("affinity(B,A) = %v, want 1.0", got)
	}
}

func TestDuplicateItemsInOrderCountOnce(t *testing.T) {
	orders := [][]string{
		{"A", "A", "B"},
	}
	m := Build(orders, BuildOptions{Shards: 1})

	if got := m.Affinity("A", "B"); got != 1.0 {
		t.Errorf("affinity(A,B) = %v, want 1.0", got)
	}
	if got := m.Total("A"); got != 1 {
		t.Errorf("total(A) = %d, want 1", got)
	}
}

func TestBuildIdempotent(t *testing.T) {
	orders := make([][]string, 0, 50)
	items := []string{"A", "B", "C", "D", "E", "F"}
	for i := 0; i < 50; i++ {
		order := []string{items[i%6], items[(i*3+1)%6], items[(i*5+2)%6]}
		orders = append(orders, order)
	}

	opts := BuildOptions{SampleN: 20, Seed: 7, Shards: 1}
	a := Build(orders, opts)
	b := Build(orders, opts)

	if !reflect.DeepEqual(sortedEntries(a), sortedEntries(b)) {
		t.Fatal("two builds with the same seed differ")
	}
	if !reflect.DeepEqual(a.Totals(), b.Totals()) {
		t.Fatal("totals differ between identical builds")
	}
}

func TestShardingDoesNotChangeResult(t *testing.T) {
	orders := wingsOrders()
	orders = append(orders, [][]string{
		{"Fries", "Ranch", "Tea"},
		{"Tea", "Wings"},
		{"Brownie", "Tea", "Fries"},
	}...)

	sequential := Build(orders, BuildOptions{Shards: 1})
	parallel := Build(orders, BuildOptions{Shards: 4})

	if !reflect.DeepEqual(sortedEntries(sequential), sortedEntries(parallel)) {
		t.Fatal("sharded build differs from sequential build")
	}
	if !reflect.DeepEqual(sequential.Totals(), parallel.Totals()) {
		t.Fatal("sharded totals differ from sequential totals")
	}
}

func TestPairSumBoundedByTotal(t *testing.T) {
	orders := [][]string{
		{"A", "B", "C"},
		{"A"},
		{"A", "C"},
		{"B", "C"},
	}
	m := Build(orders, BuildOptions{Shards: 1})

	// Sum of affinities out of A is (pairs with A) / total(A); each co-partner
	// adds at most 1 per order, so each individual affinity stays <= 1.
	for _, e := range m.Entries() {
		if e.Score > 1.0 {
			t.Errorf("affinity(%s,%s) = %v exceeds 1", e.Source, e.Target, e.Score)
		}
	}
	// A appeared in 3 orders but co-occurred in only 2.
	if got := m.Affinity("A", "B"); got != 1.0/3.0 {
		t.Errorf("affinity(A,B) = %v, want 1/3", got)
	}
}

func TestSampleBound(t *testing.T) {
	orders := make([][]string, 100)
	for i := range orders {
		orders[i] = []string{"X", "Y"}
	}

	m := Build(orders, BuildOptions{SampleN: 10, Seed: 1, Shards: 1})
	if got := m.Total("X"); got != 10 {
		t.Errorf("sampled total = %d, want 10", got)
	}

	// SampleN <= 0 means use everything.
	full := Build(orders, BuildOptions{SampleN: 0, Shards: 1})
	if got := full.Total("X"); got != 100 {
		t.Errorf("full total = %d, want 100", got)
	}
}

func sortedEntries(m *Matrix) []Entry {
	entries := m.Entries()
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Source != entries[j].Source {
			return entries[i].Source < entries[j].Source
		}
		return entries[i].Target < entries[j].Target
	})
	return entries
}
