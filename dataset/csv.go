package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ============================================================================
// CSV LOADER — Parses CSV bytes into a Dataset
// ============================================================================
// The header row supplies the schema in column order. A column becomes numeric
// only when every data cell parses as a finite number; otherwise every cell in
// it is kept as a string so a column never mixes kinds. Numeric cells keep
// their text, so labels read back exactly as written.
// ============================================================================

// CSVOptions controls CSV parsing.
type CSVOptions struct {
	Comma     rune // field delimiter, default ','
	SnakeCase bool // normalize headers: "Stock Level" → "stock_level"
}

// ParseCSV parses CSV bytes into a Dataset.
func ParseCSV(data []byte, opts ...CSVOptions) (*Dataset, error) {
	var opt CSVOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	if opt.Comma != 0 {
		reader.Comma = opt.Comma
	}
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrEmptySchema
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	fields := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if opt.SnakeCase {
			h = ToSnakeCase(h)
		}
		fields[i] = h
	}

	var rows [][]string
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV line %d: %w", line, err)
		}
		rows = append(rows, row)
	}

	numeric := make([]bool, len(fields))
	for c := range fields {
		numeric[c] = len(rows) > 0
		for _, row := range rows {
			if _, ok := parseNumber(row[c]); !ok {
				numeric[c] = false
				break
			}
		}
	}

	records := make([]Record, len(rows))
	for r, row := range rows {
		rec := make(Record, len(fields))
		for c, f := range fields {
			cell := strings.TrimSpace(row[c])
			if numeric[c] {
				n, _ := parseNumber(cell)
				rec[f] = NumberText(n, cell)
			} else {
				rec[f] = String(cell)
			}
		}
		records[r] = rec
	}

	return New(fields, records)
}

// parseNumber accepts plain decimals and thousands-separated values
// ("1,234.5"). NaN and infinities are not numbers here.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
