package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"

	"github.com/google/uuid"
)

var (
	// ErrNoModel means no snapshot has been built or loaded yet.
	ErrNoModel = errors.New("no model snapshot available")

	// ErrCartTooLarge means the caller exceeded the cart cap.
	ErrCartTooLarge = fmt.Errorf("cart exceeds %d items", MaxCartSize)
)

// Recorder persists snapshot build records. Service depends ONLY on this
// interface; the artifact package provides the postgres implementation.
type Recorder interface {
	RecordSnapshot(ctx context.Context, m *Model, orderCount int) error
}

// BundleStore persists the serialized artifact bundle of a snapshot.
type BundleStore interface {
	SaveBundle(ctx context.Context, m *Model) (string, error)
}

// Service owns the current model snapshot. Rebuilds publish a new snapshot
// atomically; readers never block.
type Service struct {
	model    atomic.Pointer[Model]
	rules    catalog.RuleSet
	config   EngineConfig
	recorder Recorder
	store    BundleStore
}

// NewService wires the engine. recorder and store may be nil (e.g. the
// offline batch binary runs without either).
func NewService(rules catalog.RuleSet, config EngineConfig, recorder Recorder, store BundleStore) *Service {
	return &Service{
		rules:    rules,
		config:   config,
		recorder: recorder,
		store:    store,
	}
}

// Build constructs a fresh snapshot from cleaned per-order item lists and
// publishes it as the current model.
func (s *Service) Build(ctx context.Context, orders [][]string, opts comatrix.BuildOptions) (*Model, error) {
	if len(orders) == 0 {
		return nil, errors.New("order dataset is empty")
	}
	if opts.Seed == 0 {
		opts.Seed = s.config.Build.Seed
	}
	if opts.SampleN == 0 {
		opts.SampleN = s.config.Build.SampleN
	}
	if opts.Shards == 0 {
		opts.Shards = s.config.Build.Shards
	}

	model := &Model{
		SnapshotID: uuid.New().String(),
		BuiltAt:    time.Now().UTC(),
		OrderCount: len(orders),
		BuildOpts:  opts,
		Catalog:    catalog.Build(orders, s.rules),
		Matrix:     comatrix.Build(orders, opts),
		Config:     s.config.Scoring,
	}

	if s.recorder != nil {
		if err := s.recorder.RecordSnapshot(ctx, model, len(orders)); err != nil {
			return nil, fmt.Errorf("record snapshot: %w", err)
		}
	}
	if s.store != nil {
		if _, err := s.store.SaveBundle(ctx, model); err != nil {
			return nil, fmt.Errorf("save artifact bundle: %w", err)
		}
	}

	s.model.Store(model)
	return model, nil
}

// SetModel publishes an externally loaded snapshot (artifact restore).
func (s *Service) SetModel(m *Model) {
	s.model.Store(m)
}

// Current returns the active snapshot, or nil when none is loaded.
func (s *Service) Current() *Model {
	return s.model.Load()
}

// Recommend normalizes the raw cart against the current snapshot and
// scores it. Unknown items are dropped; an empty normalized cart returns
// an empty list, not an error.
func (s *Service) Recommend(items []string) ([]Recommendation, error) {
	if len(items) > MaxCartSize {
		return nil, ErrCartTooLarge
	}
	m := s.Current()
	if m == nil {
		return nil, ErrNoModel
	}

	cart := NormalizeCart(items, m.Catalog)
	return Recommend(m, cart), nil
}
