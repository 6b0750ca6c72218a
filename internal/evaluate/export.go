package evaluate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"smartcart/internal/recommend"
)

// WriteCSV exports the per-row output table in the delimited layout the
// presentation collaborator consumes: one row per test cart with the three
// ranked recommendations, their scores and hit/miss flags.
func WriteCSV(w io.Writer, report *Report) error {
	writer := csv.NewWriter(w)

	header := []string{"CART", "GROUND_TRUTH"}
	for i := 1; i <= recommend.TopN; i++ {
		header = append(header,
			fmt.Sprintf("RECOMMENDATION_%d", i),
			fmt.Sprintf("SCORE_%d", i),
			fmt.Sprintf("HIT_%d", i),
		)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, row := range report.Rows {
		record := []string{
			strings.Join(row.Cart, ", "),
			strings.Join(row.Truth, ", "),
		}
		for i := 0; i < recommend.TopN; i++ {
			if i < len(row.Recommendations) {
				rec := row.Recommendations[i]
				record = append(record,
					rec.Item,
					strconv.FormatFloat(rec.Score, 'f', 6, 64),
					hitFlag(row.Hits, i),
				)
			} else {
				record = append(record, "", "", "")
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// SaveCSV writes the output table to a file, creating parent directories
// as needed.
func SaveCSV(path string, report *Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	return WriteCSV(f, report)
}

func hitFlag(hits []bool, i int) string {
	if i < len(hits) && hits[i] {
		return "1"
	}
	return "0"
}
