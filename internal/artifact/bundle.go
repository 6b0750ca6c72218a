package artifact

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"
	"smartcart/internal/recommend"
)

// BundleVersion guards against loading bundles written by an incompatible
// build.
const BundleVersion = 1

// Bundle is the opaque serializable form of a model snapshot: catalog,
// rankings and affinity matrix, keyed by the snapshot ID. A save/load
// round trip reproduces identical scoring behavior.
type Bundle struct {
	Version    int                    `json:"version"`
	SnapshotID string                 `json:"snapshot_id"`
	BuiltAt    time.Time              `json:"built_at"`
	OrderCount int                    `json:"order_count"`
	BuildOpts  comatrix.BuildOptions  `json:"build_opts"`
	Items      []*catalog.Item        `json:"items"`
	Counts     []int                  `json:"counts"`
	Affinities []comatrix.Entry       `json:"affinities"`
	Totals     map[string]int         `json:"totals"`
	Scoring    recommend.ScorerConfig `json:"scoring"`
}

// FromModel captures a snapshot into its serializable form. Items keep
// catalog insertion order and affinities are sorted so encoding is
// deterministic.
func FromModel(m *recommend.Model) *Bundle {
	b := &Bundle{
		Version:    BundleVersion,
		SnapshotID: m.SnapshotID,
		BuiltAt:    m.BuiltAt,
		OrderCount: m.OrderCount,
		BuildOpts:  m.BuildOpts,
		Totals:     m.Matrix.Totals(),
		Scoring:    m.Config,
	}

	for _, name := range m.Catalog.Items() {
		item, _ := m.Catalog.Get(name)
		b.Items = append(b.Items, item)
		b.Counts = append(b.Counts, m.Catalog.Count(name))
	}

	b.Affinities = m.Matrix.Entries()
	sort.Slice(b.Affinities, func(i, j int) bool {
		if b.Affinities[i].Source != b.Affinities[j].Source {
			return b.Affinities[i].Source < b.Affinities[j].Source
		}
		return b.Affinities[i].Target < b.Affinities[j].Target
	})
	return b
}

// ToModel rebuilds the immutable model snapshot from a loaded bundle.
func (b *Bundle) ToModel() (*recommend.Model, error) {
	if b.Version != BundleVersion {
		return nil, fmt.Errorf("unsupported bundle version %d", b.Version)
	}
	if b.SnapshotID == "" || len(b.Items) == 0 {
		return nil, fmt.Errorf("corrupt bundle: missing snapshot ID or items")
	}

	return &recommend.Model{
		SnapshotID: b.SnapshotID,
		BuiltAt:    b.BuiltAt,
		OrderCount: b.OrderCount,
		BuildOpts:  b.BuildOpts,
		Catalog:    catalog.Restore(b.Items, b.Counts),
		Matrix:     comatrix.Restore(b.Affinities, b.Totals),
		Config:     b.Scoring,
	}, nil
}

// Encode serializes the bundle.
func (b *Bundle) Encode() ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("encode bundle: %w", err)
	}
	return data, nil
}

// Decode deserializes a bundle; corrupt data is a structural error.
func Decode(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("corrupt bundle: %w", err)
	}
	return &b, nil
}
