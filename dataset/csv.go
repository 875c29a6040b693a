package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ============================================================================
// CSV PARSERS — Fixed-schema table readers
// ============================================================================
// Each input has a known column set, so parsing maps headers once and reads
// rows into typed structs. Header matching is case-insensitive after
// snake-casing; extra columns are silently skipped. County names are
// trimmed so they join cleanly against the boundary geometry.
// ============================================================================

// columnIndex maps snake-cased header names to their column positions.
func columnIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[toSnakeCase(strings.TrimSpace(h))] = i
	}
	return idx
}

// toSnakeCase converts "Column Name" → "column_name".
func toSnakeCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// rowReader wraps csv.Reader with header-mapped cell access.
type rowReader struct {
	r    *csv.Reader
	cols map[string]int
	row  []string
	line int
}

func newRowReader(data []byte, required ...string) (*rowReader, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	cols := columnIndex(headers)
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return &rowReader{r: r, cols: cols, line: 1}, nil
}

// next advances to the following data row; false on EOF.
func (rr *rowReader) next() (bool, error) {
	row, err := rr.r.Read()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("line %d: %w", rr.line+1, err)
	}
	rr.row = row
	rr.line++
	return true, nil
}

func (rr *rowReader) cell(name string) string {
	i, ok := rr.cols[name]
	if !ok || i >= len(rr.row) {
		return ""
	}
	return strings.TrimSpace(rr.row[i])
}

func (rr *rowReader) intCell(name string) (int, error) {
	v, err := strconv.Atoi(rr.cell(name))
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", rr.line, name, err)
	}
	return v, nil
}

func (rr *rowReader) floatCell(name string) (float64, error) {
	v, err := strconv.ParseFloat(rr.cell(name), 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: column %q: %w", rr.line, name, err)
	}
	return v, nil
}

// ============================================================================
// TABLE PARSERS
// ============================================================================

// ParseStateYearCSV parses the statewide yearly KPI table.
// Columns: year, litter, recycled, dumps, partners. At most one row per year.
func ParseStateYearCSV(data []byte) ([]StateYear, error) {
	rr, err := newRowReader(data, "year", "litter", "recycled", "dumps", "partners")
	if err != nil {
		return nil, err
	}

	var rows []StateYear
	seen := make(map[int]bool)
	for {
		ok, err := rr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var row StateYear
		if row.Year, err = rr.intCell("year"); err != nil {
			return nil, err
		}
		if seen[row.Year] {
			return nil, fmt.Errorf("line %d: duplicate year %d", rr.line, row.Year)
		}
		seen[row.Year] = true
		if row.Litter, err = rr.floatCell("litter"); err != nil {
			return nil, err
		}
		if row.Recycled, err = rr.floatCell("recycled"); err != nil {
			return nil, err
		}
		if row.Dumps, err = rr.floatCell("dumps"); err != nil {
			return nil, err
		}
		if row.Partners, err = rr.floatCell("partners"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCountyYearCSV parses the county yearly table used by the map and
// comparison views. Columns: county, year, litter, recycled, dumps.
// At most one row per (county, year).
func ParseCountyYearCSV(data []byte) ([]CountyYear, error) {
	rr, err := newRowReader(data, "county", "year", "litter", "recycled", "dumps")
	if err != nil {
		return nil, err
	}

	type key struct {
		county string
		year   int
	}
	var rows []CountyYear
	seen := make(map[key]bool)
	for {
		ok, err := rr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var row CountyYear
		row.County = rr.cell("county")
		if row.County == "" {
			return nil, fmt.Errorf("line %d: empty county name", rr.line)
		}
		if row.Year, err = rr.intCell("year"); err != nil {
			return nil, err
		}
		k := key{row.County, row.Year}
		if seen[k] {
			return nil, fmt.Errorf("line %d: duplicate row for county %q year %d", rr.line, row.County, row.Year)
		}
		seen[k] = true
		if row.Litter, err = rr.floatCell("litter"); err != nil {
			return nil, err
		}
		if row.Recycled, err = rr.floatCell("recycled"); err != nil {
			return nil, err
		}
		if row.Dumps, err = rr.floatCell("dumps"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseCountyMonthCSV parses the optional county monthly table.
// Columns: county, year, month, litter, recycled. Month labels must belong
// to the fiscal calendar. At most one row per (county, year, month).
func ParseCountyMonthCSV(data []byte) ([]CountyMonth, error) {
	rr, err := newRowReader(data, "county", "year", "month", "litter", "recycled")
	if err != nil {
		return nil, err
	}

	type key struct {
		county string
		year   int
		month  string
	}
	var rows []CountyMonth
	seen := make(map[key]bool)
	for {
		ok, err := rr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var row CountyMonth
		row.County = rr.cell("county")
		if row.County == "" {
			return nil, fmt.Errorf("line %d: empty county name", rr.line)
		}
		if row.Year, err = rr.intCell("year"); err != nil {
			return nil, err
		}
		row.Month = rr.cell("month")
		if FiscalMonthIndex(row.Month) < 0 {
			return nil, fmt.Errorf("line %d: unknown fiscal month %q", rr.line, row.Month)
		}
		k := key{row.County, row.Year, row.Month}
		if seen[k] {
			return nil, fmt.Errorf("line %d: duplicate row for county %q year %d month %q", rr.line, row.County, row.Year, row.Month)
		}
		seen[k] = true
		if row.Litter, err = rr.floatCell("litter"); err != nil {
			return nil, err
		}
		if row.Recycled, err = rr.floatCell("recycled"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseStateMonthCSV parses the optional statewide monthly table.
// Columns: year, month, litter, recycled.
func ParseStateMonthCSV(data []byte) ([]StateMonth, error) {
	rr, err := newRowReader(data, "year", "month", "litter", "recycled")
	if err != nil {
		return nil, err
	}

	type key struct {
		year  int
		month string
	}
	var rows []StateMonth
	seen := make(map[key]bool)
	for {
		ok, err := rr.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		var row StateMonth
		if row.Year, err = rr.intCell("year"); err != nil {
			return nil, err
		}
		row.Month = rr.cell("month")
		if FiscalMonthIndex(row.Month) < 0 {
			return nil, fmt.Errorf("line %d: unknown fiscal month %q", rr.line, row.Month)
		}
		k := key{row.Year, row.Month}
		if seen[k] {
			return nil, fmt.Errorf("line %d: duplicate row for year %d month %q", rr.line, row.Year, row.Month)
		}
		seen[k] = true
		if row.Litter, err = rr.floatCell("litter"); err != nil {
			return nil, err
		}
		if row.Recycled, err = rr.floatCell("recycled"); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
