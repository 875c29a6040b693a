package engine

import (
	"fmt"

	"github.com/littermap-org/littermap/dataset"
)

// ============================================================================
// ENGINE TYPES — Selections, derived metrics, and render-ready chart configs
// ============================================================================
// Chart configs are plain data structures. The engine never holds a live
// chart object; the presentation layer renders these with whatever charting
// capability it has.
// ============================================================================

// ============================================================================
// METRIC & SELECTION
// ============================================================================

// Metric names a county-level measure selectable on the map.
type Metric string

const (
	MetricLitter   Metric = "litter"
	MetricRecycled Metric = "recycled"
	MetricDumps    Metric = "dumps"
)

// Metrics lists the selectable map metrics in display order.
func Metrics() []Metric {
	return []Metric{MetricLitter, MetricRecycled, MetricDumps}
}

// ParseMetric validates a metric name.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricLitter, MetricRecycled, MetricDumps:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Label returns the human-readable metric name.
func (m Metric) Label() string {
	switch m {
	case MetricLitter:
		return "Litter"
	case MetricRecycled:
		return "Recycled"
	case MetricDumps:
		return "Dumps"
	}
	return string(m)
}

// CountyValue extracts this metric from a county-year row.
func (m Metric) CountyValue(row dataset.CountyYear) float64 {
	switch m {
	case MetricLitter:
		return row.Litter
	case MetricRecycled:
		return row.Recycled
	case MetricDumps:
		return row.Dumps
	}
	return 0
}

// Selection is one user interaction: a fiscal year, a county for the trend
// panels, and the metric coloring the map.
type Selection struct {
	Year   int    `json:"year"`
	County string `json:"county"`
	Metric Metric `json:"metric"`
}

// Validate rejects selections the engine cannot resolve.
func (s Selection) Validate() error {
	if s.Year <= 0 {
		return fmt.Errorf("invalid fiscal year %d", s.Year)
	}
	if s.County == "" {
		return fmt.Errorf("county is required")
	}
	if _, err := ParseMetric(string(s.Metric)); err != nil {
		return err
	}
	return nil
}

// Scope holds the row subsets a selection resolves to.
type Scope struct {
	// MapRows are the county-year rows for the selected year, input order
	// preserved. Feeds the choropleth and the ranked comparison.
	MapRows []dataset.CountyYear
	// CountyTrend are the selected county's yearly rows, ascending by year.
	CountyTrend []dataset.CountyYear
	// MonthTrend are the selected county's rows for the selected year in
	// fiscal month order (July first). Empty when monthly data is absent.
	MonthTrend []dataset.CountyMonth
	// StateRow is the statewide row for the selected year; nil when the
	// year is not present, which simply omits the KPI section.
	StateRow *dataset.StateYear
}

// ============================================================================
// DERIVED METRICS
// ============================================================================

// Intensity is one of five ordered labels placing a county's value relative
// to the maximum of the current slice.
type Intensity string

const (
	IntensityVeryLow  Intensity = "Very Low"
	IntensityLow      Intensity = "Low"
	IntensityMedium   Intensity = "Medium"
	IntensityHigh     Intensity = "High"
	IntensityVeryHigh Intensity = "Very High"
)

// IntensityLabels lists the bin labels from lowest to highest.
var IntensityLabels = []Intensity{
	IntensityVeryLow, IntensityLow, IntensityMedium, IntensityHigh, IntensityVeryHigh,
}

// GrowthPoint is one year's change versus the prior fiscal year.
type GrowthPoint struct {
	Year    int     `json:"year"`
	Percent float64 `json:"percent"` // rounded to one decimal
	Sign    string  `json:"sign"`    // "positive" or "negative"
}

// Growth sign tags.
const (
	SignPositive = "positive"
	SignNegative = "negative"
)

// KPI is one formatted headline value.
type KPI struct {
	Label string  `json:"label"`
	Raw   float64 `json:"raw"`
	Value string  `json:"value"` // magnitude-formatted
}

// KPIRecord carries the four statewide headline cards for a fiscal year.
type KPIRecord struct {
	Year     int `json:"year"`
	Litter   KPI `json:"litter"`
	Recycled KPI `json:"recycled"`
	Dumps    KPI `json:"dumps"`
	Partners KPI `json:"partners"`
}

// ============================================================================
// CHART CONFIGS
// ============================================================================

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartSeries is one named line or bar group.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// MapView fixes the statewide framing of the choropleth.
type MapView struct {
	CenterLat float64 `json:"centerLat"`
	CenterLon float64 `json:"centerLon"`
	Zoom      float64 `json:"zoom"`
}

// ChoroplethRegion is one county's map entry.
type ChoroplethRegion struct {
	County    string    `json:"county"`
	Value     float64   `json:"value"`
	Intensity Intensity `json:"intensity"`
	Color     string    `json:"color"`

	// Hover fields shown by the presentation layer.
	Litter   float64 `json:"litter"`
	Recycled float64 `json:"recycled"`
	Dumps    float64 `json:"dumps"`
}

// ChoroplethConfig colors county polygons by intensity bin.
type ChoroplethConfig struct {
	Metric      Metric             `json:"metric"`
	KeyProperty string             `json:"keyProperty"`
	View        MapView            `json:"view"`
	Palette     []string           `json:"palette"` // five colors, Very Low → Very High
	LegendTitle string             `json:"legendTitle"`
	Regions     []ChoroplethRegion `json:"regions"`
	NoData      bool               `json:"noData"`
	Message     string             `json:"message,omitempty"`
}

// TrendConfig is a multi-series line chart over an ordered x-axis
// (fiscal years or fiscal months), markers on every point.
type TrendConfig struct {
	Title   string        `json:"title"`
	XAxis   string        `json:"xAxis"`
	YAxis   string        `json:"yAxis"`
	Series  []ChartSeries `json:"series"`
	Markers bool          `json:"markers"`
	NoData  bool          `json:"noData"`
	Message string        `json:"message,omitempty"`
}

// RankedBarConfig is the top-N county comparison for the selected metric.
type RankedBarConfig struct {
	Title   string       `json:"title"`
	XAxis   string       `json:"xAxis"`
	YAxis   string       `json:"yAxis"`
	Bars    []ChartPoint `json:"bars"`
	NoData  bool         `json:"noData"`
	Message string       `json:"message,omitempty"`
}

// GrowthBar is one year-over-year growth bar with its sign color applied.
type GrowthBar struct {
	Year    int     `json:"year"`
	Percent float64 `json:"percent"`
	Sign    string  `json:"sign"`
	Color   string  `json:"color"`
}

// GrowthBarConfig is the statewide recycling growth chart.
type GrowthBarConfig struct {
	Title   string      `json:"title"`
	XAxis   string      `json:"xAxis"`
	YAxis   string      `json:"yAxis"`
	Bars    []GrowthBar `json:"bars"`
	NoData  bool        `json:"noData"`
	Message string      `json:"message,omitempty"`
}

// ============================================================================
// DASHBOARD — Render-ready output of one interaction pass
// ============================================================================

// Dashboard is everything the presentation layer needs for one selection.
type Dashboard struct {
	Selection Selection `json:"selection"`

	// Selectable option lists.
	Years    []int    `json:"years"`
	Counties []string `json:"counties"`
	Metrics  []Metric `json:"metrics"`

	Choropleth   *ChoroplethConfig `json:"choropleth"`
	YearlyTrend  *TrendConfig      `json:"yearlyTrend"`
	MonthlyTrend *TrendConfig      `json:"monthlyTrend,omitempty"`
	TopCounties  *RankedBarConfig  `json:"topCounties"`
	Growth       *GrowthBarConfig  `json:"growth"`

	// KPIs is nil when the selected year has no statewide row.
	KPIs *KPIRecord `json:"kpis,omitempty"`
}
