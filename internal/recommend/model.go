package recommend

import (
	"time"

	"smartcart/internal/catalog"
	"smartcart/internal/comatrix"
)

// Model is the immutable dataset snapshot the engine scores against:
// catalog, affinity matrix and scorer tunables, built once and shared
// read-only by all concurrent requests.
type Model struct {
	SnapshotID string
	BuiltAt    time.Time
	OrderCount int
	BuildOpts  comatrix.BuildOptions

	Catalog *catalog.Catalog
	Matrix  *comatrix.Matrix
	Config  ScorerConfig
}

// Recommendation is one ranked suggestion. Score orders and displays; it is
// not a probability.
type Recommendation struct {
	Rank     int              `json:"rank"`
	Item     string           `json:"item"`
	Score    float64          `json:"score"`
	Category catalog.Category `json:"category"`
}
