package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/littermap-org/littermap/dataset"
)

// ============================================================================
// METRIC TRANSFORMER — Pure derivations over resolved row slices
// ============================================================================
// Three independent transforms: intensity binning, year-over-year growth,
// and magnitude formatting. Each is a pure function of its input slice.
// ============================================================================

// ============================================================================
// INTENSITY BINNING
// ============================================================================

// IntensityBoundaries returns the six bin edges at 0/20/40/60/80/100% of
// maxVal. Edges are non-decreasing and cover [0, maxVal].
func IntensityBoundaries(maxVal float64) []float64 {
	return []float64{
		0,
		0.2 * maxVal,
		0.4 * maxVal,
		0.6 * maxVal,
		0.8 * maxVal,
		maxVal,
	}
}

// IntensityFor places a value within the bins of the given slice maximum.
// Intervals are half-open (low, high] with the first closed at zero so the
// value 0 lands in the lowest bin. A non-positive maximum means the slice
// cannot be partitioned; every value gets the lowest label rather than
// dividing by zero.
func IntensityFor(value, maxVal float64) Intensity {
	if maxVal <= 0 {
		return IntensityVeryLow
	}
	edges := IntensityBoundaries(maxVal)
	for i := 0; i < len(IntensityLabels); i++ {
		if value <= edges[i+1] {
			return IntensityLabels[i]
		}
	}
	return IntensityVeryHigh
}

// MaxCountyValue returns the largest metric value in the slice, or 0 for an
// empty slice. Callers must treat the empty case as no-data before binning.
func MaxCountyValue(rows []dataset.CountyYear, metric Metric) float64 {
	var max float64
	for i, row := range rows {
		v := metric.CountyValue(row)
		if i == 0 || v > max {
			max = v
		}
	}
	return max
}

// ============================================================================
// YEAR-OVER-YEAR GROWTH
// ============================================================================

// GrowthSeries derives the year-over-year recycled growth from the statewide
// table. Rows are sorted ascending by year; the first year has no prior year
// and is excluded entirely. A year whose prior recycled value is zero is
// also excluded — percent change against zero is undefined and must not
// produce Inf or NaN.
func GrowthSeries(state []dataset.StateYear) []GrowthPoint {
	if len(state) < 2 {
		return nil
	}

	rows := append([]dataset.StateYear(nil), state...)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })

	points := make([]GrowthPoint, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		prev := rows[i-1].Recycled
		if prev == 0 {
			continue
		}
		pct := roundTo1((rows[i].Recycled - prev) / prev * 100)
		sign := SignPositive
		if pct < 0 {
			sign = SignNegative
		}
		points = append(points, GrowthPoint{Year: rows[i].Year, Percent: pct, Sign: sign})
	}
	return points
}

// roundTo1 rounds to one decimal place.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ============================================================================
// MAGNITUDE FORMATTING
// ============================================================================

// FormatMagnitude renders a value as a compact human-readable string:
// millions as "2.3M", thousands as "1.5K", anything smaller as a truncated
// integer. Pure display transform, no locale handling.
func FormatMagnitude(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return fmt.Sprintf("%d", int64(v))
	}
}

// ============================================================================
// KPI DERIVATION
// ============================================================================

// BuildKPIs formats the four statewide headline cards for a year row.
// Returns nil for a nil row so the KPI section is omitted, never an error.
func BuildKPIs(row *dataset.StateYear) *KPIRecord {
	if row == nil {
		return nil
	}
	return &KPIRecord{
		Year:     row.Year,
		Litter:   KPI{Label: "Total Litter (lbs)", Raw: row.Litter, Value: FormatMagnitude(row.Litter)},
		Recycled: KPI{Label: "Recycled (lbs)", Raw: row.Recycled, Value: FormatMagnitude(row.Recycled)},
		Dumps:    KPI{Label: "Dump Sites", Raw: row.Dumps, Value: FormatMagnitude(row.Dumps)},
		Partners: KPI{Label: "Partners", Raw: row.Partners, Value: FormatMagnitude(row.Partners)},
	}
}
