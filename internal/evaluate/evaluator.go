package evaluate

import (
	"smartcart/internal/ingest"
	"smartcart/internal/recommend"
)

// RowResult is one scored evaluation row: the normalized cart, the top-3
// recommendations and the per-slot hit flags against the ground truth.
type RowResult struct {
	Cart            []string                   `json:"cart"`
	Truth           []string                   `json:"truth"`
	Recommendations []recommend.Recommendation `json:"recommendations"`
	Hits            []bool                     `json:"hits"`
	Recall          float64                    `json:"recall"`
	Precision       float64                    `json:"precision"`
	Top1Hit         bool                       `json:"top1_hit"`
}

// Report aggregates the batch metrics. Rows whose cart normalizes to empty
// stay in the denominator with zero credit.
type Report struct {
	Rows        []RowResult `json:"rows"`
	RowCount    int         `json:"row_count"`
	Recall3     float64     `json:"recall_at_3"`
	Precision3  float64     `json:"precision_at_3"`
	Top1        float64     `json:"top1_accuracy"`
	EmptyCarts  int         `json:"empty_carts"`
	EmptyTruths int         `json:"empty_truths"`
}

// Evaluate runs the scorer over every labeled row and aggregates Recall@3,
// Precision@3 and Top-1 accuracy. Individual rows never abort the batch.
func Evaluate(m *recommend.Model, rows []ingest.TestRow) *Report {
	report := &Report{RowCount: len(rows)}
	if len(rows) == 0 {
		return report
	}

	var sumRecall, sumPrecision, sumTop1 float64
	for _, row := range rows {
		result := evaluateRow(m, row)
		report.Rows = append(report.Rows, result)

		if len(result.Cart) == 0 {
			report.EmptyCarts++
		}
		if len(result.Truth) == 0 {
			report.EmptyTruths++
		}

		sumRecall += result.Recall
		sumPrecision += result.Precision
		if result.Top1Hit {
			sumTop1++
		}
	}

	n := float64(len(rows))
	report.Recall3 = sumRecall / n
	report.Precision3 = sumPrecision / n
	report.Top1 = sumTop1 / n
	return report
}

func evaluateRow(m *recommend.Model, row ingest.TestRow) RowResult {
	cart := recommend.NormalizeCart(row.Cart, m.Catalog)
	truth := canonicalTruth(m, row.Truth)

	result := RowResult{Cart: cart, Truth: truth}
	if len(cart) == 0 || len(truth) == 0 {
		// Zero credit, but the row stays in the batch.
		return result
	}

	recs := recommend.Recommend(m, cart)
	result.Recommendations = recs

	truthSet := make(map[string]bool, len(truth))
	for _, item := range truth {
		truthSet[item] = true
	}

	recovered := 0
	result.Hits = make([]bool, len(recs))
	for i, rec := range recs {
		if truthSet[rec.Item] {
			result.Hits[i] = true
			recovered++
			if rec.Rank == 1 {
				result.Top1Hit = true
			}
		}
	}

	result.Recall = float64(recovered) / float64(len(truth))
	result.Precision = float64(recovered) / float64(recommend.TopN)
	return result
}

// canonicalTruth resolves ground-truth names against the catalog. Unknown
// truth items are kept as-is: they can never be recommended, so they count
// as misses instead of silently shrinking the denominator.
func canonicalTruth(m *recommend.Model, truth []string) []string {
	var out []string
	seen := make(map[string]bool, len(truth))
	for _, raw := range truth {
		name := raw
		if item, ok := m.Catalog.Lookup(raw); ok {
			name = item.Name
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
