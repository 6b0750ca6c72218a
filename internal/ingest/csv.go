package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Default column names of the order and test datasets.
const (
	DefaultOrderColumn = "ORDERS"
	DefaultCartColumn  = "CART"
	DefaultTruthColumn = "GROUND_TRUTH"
)

// TestRow is one labeled evaluation row: a prior cart and the follow-on
// items that were actually ordered.
type TestRow struct {
	Cart  []string
	Truth []string
}

// LoadOrders reads the order dataset and returns cleaned per-order item
// lists. Rows whose order field is malformed contribute an empty list and
// are skipped; a missing order column is a structural error.
func LoadOrders(path, column string) ([][]string, error) {
	if column == "" {
		column = DefaultOrderColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open order dataset: %w", err)
	}
	defer f.Close()

	return ReadOrders(f, column)
}

// ReadOrders parses order rows from any CSV stream.
func ReadOrders(r io.Reader, column string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col, err := columnIndex(header, column)
	if err != nil {
		return nil, err
	}

	var orders [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A garbled row is skipped; anything else (an underlying read
			// failure) would repeat forever, so it aborts the load.
			if isParseError(err) {
				continue
			}
			return nil, fmt.Errorf("read order row: %w", err)
		}
		if col >= len(record) {
			orders = append(orders, nil)
			continue
		}
		orders = append(orders, ParseOrder(record[col]))
	}
	return orders, nil
}

// LoadTestRows reads the labeled test dataset. Both the cart and the
// ground-truth cells go through the same tolerant parsing as order rows.
func LoadTestRows(path, cartColumn, truthColumn string) ([]TestRow, error) {
	if cartColumn == "" {
		cartColumn = DefaultCartColumn
	}
	if truthColumn == "" {
		truthColumn = DefaultTruthColumn
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open test dataset: %w", err)
	}
	defer f.Close()

	return ReadTestRows(f, cartColumn, truthColumn)
}

// ReadTestRows parses labeled rows from any CSV stream.
func ReadTestRows(r io.Reader, cartColumn, truthColumn string) ([]TestRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cartCol, err := columnIndex(header, cartColumn)
	if err != nil {
		return nil, err
	}
	truthCol, err := columnIndex(header, truthColumn)
	if err != nil {
		return nil, err
	}

	var rows []TestRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if isParseError(err) {
				continue
			}
			return nil, fmt.Errorf("read test row: %w", err)
		}

		row := TestRow{}
		if cartCol < len(record) {
			row.Cart = ParseOrder(record[cartCol])
		}
		if truthCol < len(record) {
			row.Truth = ParseOrder(record[truthCol])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func isParseError(err error) bool {
	var parseErr *csv.ParseError
	return errors.As(err, &parseErr)
}

func columnIndex(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("required column %q not found", name)
}
