package comatrix

import (
	"math/rand"
	"runtime"
	"sync"
)

// DefaultSeed keeps builds reproducible when the caller does not choose one.
const DefaultSeed int64 = 42

// BuildOptions tunes the builder. SampleN <= 0 uses every order. Shards <= 0
// uses one shard per CPU; Shards = 1 runs sequentially. Seed 0 is not a
// distinct seed: it stands for "unset" throughout the config surface and
// resolves to DefaultSeed.
type BuildOptions struct {
	SampleN int   `json:"sample_n" yaml:"sample_n"`
	Seed    int64 `json:"seed" yaml:"seed"`
	Shards  int   `json:"shards" yaml:"shards"`
}

// pairKey is the canonicalized unordered item pair (a < b lexically).
type pairKey struct {
	a, b string
}

func makePair(a, b string) pairKey {
	if a < b {
		return pairKey{a, b}
	}
	return pairKey{b, a}
}

// accumulator holds one shard's local counts. No shared state is touched
// during counting; merging is plain key-wise addition.
type accumulator struct {
	pairs  map[pairKey]int
	totals map[string]int
}

func newAccumulator() *accumulator {
	return &accumulator{
		pairs:  make(map[pairKey]int),
		totals: make(map[string]int),
	}
}

func (acc *accumulator) count(order []string) {
	items := dedupe(order)
	for i, a := range items {
		acc.totals[a]++
		for _, b := range items[i+1:] {
			acc.pairs[makePair(a, b)]++
		}
	}
}

func (acc *accumulator) merge(other *accumulator) {
	for k, v := range other.pairs {
		acc.pairs[k] += v
	}
	for k, v := range other.totals {
		acc.totals[k] += v
	}
}

// Build counts pair co-occurrences over a (possibly sampled) order set and
// normalizes into the directed affinity matrix. Deterministic for a fixed
// (orders, SampleN, Seed); the shard count never changes the result because
// the merge is commutative and associative.
func Build(orders [][]string, opts BuildOptions) *Matrix {
	sampled := sample(orders, opts.SampleN, opts.Seed)

	shards := opts.Shards
	if shards <= 0 {
		shards = runtime.NumCPU()
	}
	if shards > len(sampled) {
		shards = len(sampled)
	}

	merged := newAccumulator()
	if shards <= 1 {
		for _, order := range sampled {
			merged.count(order)
		}
	} else {
		accs := make([]*accumulator, shards)
		var wg sync.WaitGroup
		for s := 0; s < shards; s++ {
			accs[s] = newAccumulator()
			wg.Add(1)
			go func(s int) {
				defer wg.Done()
				for i := s; i < len(sampled); i += shards {
					accs[s].count(sampled[i])
				}
			}(s)
		}
		wg.Wait()
		for _, acc := range accs {
			merged.merge(acc)
		}
	}

	return normalize(merged)
}

// sample draws a uniform sample of at most n orders without replacement.
// The seeded permutation keeps the draw reproducible.
func sample(orders [][]string, n int, seed int64) [][]string {
	if n <= 0 || n >= len(orders) {
		return orders
	}
	if seed == 0 {
		seed = DefaultSeed
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(orders))

	sampled := make([][]string, 0, n)
	for _, idx := range perm[:n] {
		sampled = append(sampled, orders[idx])
	}
	return sampled
}

// normalize divides each raw pair count by the source item's total order
// occurrences, producing both directions of every observed pair. Totals are
// derived from the same order set, so every paired item has total >= 1 and
// division by zero cannot occur.
func normalize(acc *accumulator) *Matrix {
	m := &Matrix{
		affinity: make(map[string]map[string]float64),
		totals:   acc.totals,
	}
	for pair, count := range acc.pairs {
		m.set(pair.a, pair.b, float64(count)/float64(acc.totals[pair.a]))
		m.set(pair.b, pair.a, float64(count)/float64(acc.totals[pair.b]))
	}
	return m
}

func (m *Matrix) set(source, target string, score float64) {
	row, ok := m.affinity[source]
	if !ok {
		row = make(map[string]float64)
		m.affinity[source] = row
	}
	row[target] = score
}

func dedupe(order []string) []string {
	seen := make(map[string]bool, len(order))
	out := order[:0:0]
	for _, item := range order {
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
