package evaluate

import (
	"context"
	"fmt"

	"smartcart/internal/ingest"
	"smartcart/internal/recommend"
)

// Recorder persists evaluation run records; the artifact package provides
// the postgres implementation.
type Recorder interface {
	RecordEvaluation(ctx context.Context, snapshotID string, report *Report) error
}

type Service struct {
	models   *recommend.Service
	recorder Recorder
}

// NewService wires the evaluator against the engine. recorder may be nil.
func NewService(models *recommend.Service, recorder Recorder) *Service {
	return &Service{models: models, recorder: recorder}
}

// Run evaluates the current snapshot over a labeled test set.
func (s *Service) Run(ctx context.Context, rows []ingest.TestRow) (*Report, error) {
	m := s.models.Current()
	if m == nil {
		return nil, recommend.ErrNoModel
	}

	report := Evaluate(m, rows)

	if s.recorder != nil {
		if err := s.recorder.RecordEvaluation(ctx, m.SnapshotID, report); err != nil {
			return nil, fmt.Errorf("record evaluation: %w", err)
		}
	}
	return report, nil
}
