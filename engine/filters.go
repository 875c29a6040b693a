package engine

import (
	"sort"

	"github.com/littermap-org/littermap/dataset"
)

// ============================================================================
// SELECTION RESOLVER — Narrows loaded tables to the rows a selection needs
// ============================================================================
// Single pass per table. Resolution never fails: an empty subset is a valid
// result the chart builders turn into an explicit no-data config.
// ============================================================================

// Resolve computes the row subsets for one selection.
func Resolve(t *dataset.Tables, sel Selection) Scope {
	var scope Scope

	// Map rows: the selected year across all counties, input order kept so
	// ranked ties stay stable.
	for _, row := range t.County {
		if row.Year == sel.Year {
			scope.MapRows = append(scope.MapRows, row)
		}
	}

	// Yearly trend: the selected county across all years, ascending.
	for _, row := range t.County {
		if row.County == sel.County {
			scope.CountyTrend = append(scope.CountyTrend, row)
		}
	}
	sort.SliceStable(scope.CountyTrend, func(i, j int) bool {
		return scope.CountyTrend[i].Year < scope.CountyTrend[j].Year
	})

	// Monthly trend: selected county and year, fiscal month order (July
	// first). Months absent from the data are omitted, never zero-filled.
	for _, row := range t.CountyMonth {
		if row.County == sel.County && row.Year == sel.Year {
			scope.MonthTrend = append(scope.MonthTrend, row)
		}
	}
	sort.SliceStable(scope.MonthTrend, func(i, j int) bool {
		return dataset.FiscalMonthIndex(scope.MonthTrend[i].Month) <
			dataset.FiscalMonthIndex(scope.MonthTrend[j].Month)
	})

	// KPI row: absence is not an error, the KPI section is simply omitted.
	for i := range t.State {
		if t.State[i].Year == sel.Year {
			row := t.State[i]
			scope.StateRow = &row
			break
		}
	}

	return scope
}

// Years returns the sorted unique fiscal years of the statewide table.
func Years(t *dataset.Tables) []int {
	seen := make(map[int]bool, len(t.State))
	var years []int
	for _, row := range t.State {
		if !seen[row.Year] {
			seen[row.Year] = true
			years = append(years, row.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Counties returns the sorted unique county names of the county table.
func Counties(t *dataset.Tables) []string {
	seen := make(map[string]bool)
	var counties []string
	for _, row := range t.County {
		if !seen[row.County] {
			seen[row.County] = true
			counties = append(counties, row.County)
		}
	}
	sort.Strings(counties)
	return counties
}
