package engine

import (
	"fmt"

	"github.com/littermap-org/littermap/dataset"
)

// ============================================================================
// DASHBOARD ASSEMBLY — One synchronous pass per user interaction
// ============================================================================
// Entry point: BuildDashboard(tables, selection, opts...)
//
// Pipeline:
//   1. Validate the selection
//   2. Resolve row subsets (map slice, county trend, month trend, KPI row)
//   3. Derive metrics (intensity bins, growth series, magnitude strings)
//   4. Build the four chart configs + KPI record + option lists
//
// Pure in-memory computation against an immutable Tables snapshot; safe to
// run concurrently for different selections over the same snapshot.
// ============================================================================

// BuildDashboard runs one full interaction pass and returns render-ready
// output for the presentation layer.
func BuildDashboard(t *dataset.Tables, sel Selection, opts ...Option) (*Dashboard, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tables")
	}
	if err := sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid selection: %w", err)
	}
	cfg := applyOptions(opts)

	scope := Resolve(t, sel)

	boundaryKey := dataset.DefaultBoundaryKey
	if t.Boundary != nil {
		boundaryKey = t.Boundary.KeyProperty
	}

	dash := &Dashboard{
		Selection: sel,
		Years:     Years(t),
		Counties:  Counties(t),
		Metrics:   Metrics(),

		Choropleth:   BuildChoropleth(scope, sel, boundaryKey),
		YearlyTrend:  BuildYearlyTrend(scope, sel, cfg.TrendMetrics),
		MonthlyTrend: BuildMonthlyTrend(scope, sel, t.HasMonthly()),
		TopCounties:  BuildTopCounties(scope, sel, cfg.TopN),
		Growth:       BuildGrowthBars(GrowthSeries(t.State)),
		KPIs:         BuildKPIs(scope.StateRow),
	}
	return dash, nil
}

// DefaultSelection picks the most recent fiscal year, the first county
// alphabetically (preferring Anderson, the historical default), and the
// litter metric. Returns false when the tables hold no selectable options.
func DefaultSelection(t *dataset.Tables) (Selection, bool) {
	years := Years(t)
	counties := Counties(t)
	if len(years) == 0 || len(counties) == 0 {
		return Selection{}, false
	}

	county := counties[0]
	for _, c := range counties {
		if c == "Anderson" {
			county = c
			break
		}
	}
	return Selection{
		Year:   years[len(years)-1],
		County: county,
		Metric: MetricLitter,
	}, true
}
