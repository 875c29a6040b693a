package engine

import (
	"fmt"
	"sort"
	"strconv"
)

// ============================================================================
// CHART BUILDER — Maps transformed rows into declarative chart configs
// ============================================================================
// Builders return explicit no-data configs for empty slices instead of
// erroring; computing statistics over an empty set never happens here.
// ============================================================================

// Statewide framing reproduced regardless of data.
var statewideView = MapView{CenterLat: 35.75, CenterLon: -86.4, Zoom: 5.8}

// Five-step sequential ramps, Very Low → Very High, keyed by metric.
var metricPalettes = map[Metric][]string{
	MetricLitter:   {"#fff5eb", "#fdd0a2", "#fdae6b", "#e6550d", "#a63603"},
	MetricRecycled: {"#edf8e9", "#bae4b3", "#74c476", "#31a354", "#006d2c"},
	MetricDumps:    {"#eff3ff", "#bdd7e7", "#6baed6", "#3182bd", "#08519c"},
}

// Growth bar colors by sign tag.
const (
	growthPositiveColor = "#2ca02c"
	growthNegativeColor = "#d62728"
)

// Default color palette for trend series.
var defaultColors = []string{
	"#4F46E5", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6",
	"#06B6D4", "#EC4899", "#84CC16", "#F97316", "#6366F1",
}

// Palette returns the sequential ramp for a metric.
func Palette(metric Metric) []string {
	if p, ok := metricPalettes[metric]; ok {
		return p
	}
	return metricPalettes[MetricLitter]
}

// noDataMessage is the neutral message for empty selections.
const noDataMessage = "No data available for selected year."

// ============================================================================
// CHOROPLETH
// ============================================================================

// BuildChoropleth assigns each county of the year slice an intensity bin and
// fill color. keyProperty names the GeoJSON property the presentation layer
// joins county names against.
func BuildChoropleth(scope Scope, sel Selection, keyProperty string) *ChoroplethConfig {
	cfg := &ChoroplethConfig{
		Metric:      sel.Metric,
		KeyProperty: keyProperty,
		View:        statewideView,
		Palette:     Palette(sel.Metric),
		LegendTitle: "Intensity",
	}

	if len(scope.MapRows) == 0 {
		cfg.NoData = true
		cfg.Message = noDataMessage
		return cfg
	}

	maxVal := MaxCountyValue(scope.MapRows, sel.Metric)
	cfg.Regions = make([]ChoroplethRegion, 0, len(scope.MapRows))
	for _, row := range scope.MapRows {
		v := sel.Metric.CountyValue(row)
		label := IntensityFor(v, maxVal)
		cfg.Regions = append(cfg.Regions, ChoroplethRegion{
			County:    row.County,
			Value:     v,
			Intensity: label,
			Color:     cfg.Palette[intensityIndex(label)],
			Litter:    row.Litter,
			Recycled:  row.Recycled,
			Dumps:     row.Dumps,
		})
	}
	return cfg
}

func intensityIndex(label Intensity) int {
	for i, l := range IntensityLabels {
		if l == label {
			return i
		}
	}
	return 0
}

// ============================================================================
// TREND LINES
// ============================================================================

// BuildYearlyTrend plots the tracked metrics for the selected county across
// fiscal years.
func BuildYearlyTrend(scope Scope, sel Selection, metrics []Metric) *TrendConfig {
	cfg := &TrendConfig{
		Title:   fmt.Sprintf("%s Trend (Yearly)", sel.County),
		XAxis:   "Fiscal Year",
		YAxis:   "Tonnage (lbs)",
		Markers: true,
	}
	if len(scope.CountyTrend) == 0 {
		cfg.NoData = true
		cfg.Message = "No trend data available for this county."
		return cfg
	}

	for i, metric := range metrics {
		series := ChartSeries{
			Name:  metric.Label(),
			Color: defaultColors[i%len(defaultColors)],
			Data:  make([]ChartPoint, 0, len(scope.CountyTrend)),
		}
		for _, row := range scope.CountyTrend {
			series.Data = append(series.Data, ChartPoint{
				Label: strconv.Itoa(row.Year),
				Value: metric.CountyValue(row),
			})
		}
		cfg.Series = append(cfg.Series, series)
	}
	return cfg
}

// BuildMonthlyTrend plots litter versus recycling by fiscal month for the
// selected county and year. Returns nil when no monthly dataset was loaded
// at all; an empty county/year slice yields a no-data config instead.
func BuildMonthlyTrend(scope Scope, sel Selection, monthlyLoaded bool) *TrendConfig {
	if !monthlyLoaded {
		return nil
	}
	cfg := &TrendConfig{
		Title:   "Monthly Litter vs Recycling",
		XAxis:   "Month",
		YAxis:   "Tonnage (lbs)",
		Markers: true,
	}
	if len(scope.MonthTrend) == 0 {
		cfg.NoData = true
		cfg.Message = "No monthly data available for this county and fiscal year."
		return cfg
	}

	litter := ChartSeries{Name: MetricLitter.Label(), Color: defaultColors[0]}
	recycled := ChartSeries{Name: MetricRecycled.Label(), Color: defaultColors[1]}
	for _, row := range scope.MonthTrend {
		litter.Data = append(litter.Data, ChartPoint{Label: row.Month, Value: row.Litter})
		recycled.Data = append(recycled.Data, ChartPoint{Label: row.Month, Value: row.Recycled})
	}
	cfg.Series = []ChartSeries{litter, recycled}
	return cfg
}

// ============================================================================
// RANKED BAR
// ============================================================================

// BuildTopCounties ranks the year slice by the selected metric, descending,
// truncated to topN. Ties keep their original input order.
func BuildTopCounties(scope Scope, sel Selection, topN int) *RankedBarConfig {
	unit := sel.Metric.Label()
	if sel.Metric == MetricLitter || sel.Metric == MetricRecycled {
		unit = fmt.Sprintf("%s (lbs)", unit)
	}
	cfg := &RankedBarConfig{
		Title: fmt.Sprintf("Top %d Counties by %s", topN, sel.Metric.Label()),
		XAxis: "County",
		YAxis: unit,
	}
	if len(scope.MapRows) == 0 {
		cfg.NoData = true
		cfg.Message = noDataMessage
		return cfg
	}

	ranked := rankCounties(scope, sel.Metric)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	cfg.Bars = ranked
	return cfg
}

func rankCounties(scope Scope, metric Metric) []ChartPoint {
	points := make([]ChartPoint, 0, len(scope.MapRows))
	for _, row := range scope.MapRows {
		points = append(points, ChartPoint{Label: row.County, Value: metric.CountyValue(row)})
	}
	// Stable sort preserves input order between equal values.
	sort.SliceStable(points, func(i, j int) bool { return points[i].Value > points[j].Value })
	return points
}

// ============================================================================
// GROWTH BARS
// ============================================================================

// BuildGrowthBars turns the derived growth series into one bar per year,
// colored by sign tag.
func BuildGrowthBars(points []GrowthPoint) *GrowthBarConfig {
	cfg := &GrowthBarConfig{
		Title: "Year-over-Year Recycling Growth (%)",
		XAxis: "Fiscal Year",
		YAxis: "Growth (%)",
	}
	if len(points) == 0 {
		cfg.NoData = true
		cfg.Message = "Not enough yearly data to compute growth."
		return cfg
	}

	cfg.Bars = make([]GrowthBar, 0, len(points))
	for _, p := range points {
		color := growthPositiveColor
		if p.Sign == SignNegative {
			color = growthNegativeColor
		}
		cfg.Bars = append(cfg.Bars, GrowthBar{
			Year:    p.Year,
			Percent: p.Percent,
			Sign:    p.Sign,
			Color:   color,
		})
	}
	return cfg
}
