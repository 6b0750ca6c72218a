package artifact

import (
	"context"
	"time"

	"smartcart/internal/evaluate"
	"smartcart/internal/recommend"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRecord is one snapshot build or evaluation row for the admin run list.
type RunRecord struct {
	SnapshotID string    `json:"snapshot_id"`
	BuiltAt    time.Time `json:"built_at"`
	OrderCount int       `json:"order_count"`
	SampleN    int       `json:"sample_n"`
	ItemCount  int       `json:"item_count"`

	Evaluated  bool    `json:"evaluated"`
	Recall3    float64 `json:"recall_at_3,omitempty"`
	Precision3 float64 `json:"precision_at_3,omitempty"`
	Top1       float64 `json:"top1_accuracy,omitempty"`
}

type PostgresRunRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRunRepository(db *pgxpool.Pool) *PostgresRunRepository {
	return &PostgresRunRepository{db: db}
}

// RecordSnapshot implements recommend.Recorder.
func (r *PostgresRunRepository) RecordSnapshot(
	ctx context.Context,
	m *recommend.Model,
	orderCount int,
) error {
	query := `
		INSERT INTO snapshots (id, built_at, order_count, sample_n, seed, item_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		m.SnapshotID, m.BuiltAt, orderCount,
		m.BuildOpts.SampleN, m.BuildOpts.Seed, m.Catalog.Len(),
	)
	return err
}

// RecordEvaluation implements evaluate.Recorder.
func (r *PostgresRunRepository) RecordEvaluation(
	ctx context.Context,
	snapshotID string,
	report *evaluate.Report,
) error {
	query := `
		INSERT INTO evaluations (snapshot_id, row_count, recall3, precision3, top1)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		snapshotID, report.RowCount,
		report.Recall3, report.Precision3, report.Top1,
	)
	return err
}

// ListRuns returns snapshots newest-first with their latest evaluation.
func (r *PostgresRunRepository) ListRuns(ctx context.Context) ([]RunRecord, error) {
	query := `
		SELECT s.id, s.built_at, s.order_count, s.sample_n, s.item_count,
		       e.recall3, e.precision3, e.top1
		FROM snapshots s
		LEFT JOIN LATERAL (
			SELECT recall3, precision3, top1
			FROM evaluations
			WHERE snapshot_id = s.id
			ORDER BY created_at DESC
			LIMIT 1
		) e ON true
		ORDER BY s.built_at DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var recall, precision, top1 *float64
		if err := rows.Scan(
			&rec.SnapshotID, &rec.BuiltAt, &rec.OrderCount,
			&rec.SampleN, &rec.ItemCount,
			&recall, &precision, &top1,
		); err != nil {
			return nil, err
		}
		if recall != nil {
			rec.Evaluated = true
			rec.Recall3 = *recall
			rec.Precision3 = *precision
			rec.Top1 = *top1
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
