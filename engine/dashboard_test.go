package engine

import (
	"strings"
	"testing"

	"github.com/littermap-org/littermap/dataset"
)

// ============================================================================
// DASHBOARD ASSEMBLY TESTS
// ============================================================================

func TestBuildDashboard(t *testing.T) {
	tables := fixtureTables()
	sel := Selection{Year: 2023, County: "Shelby", Metric: MetricLitter}

	dash, err := BuildDashboard(tables, sel, WithTopN(2))
	if err != nil {
		t.Fatalf("BuildDashboard failed: %v", err)
	}

	if dash.Selection != sel {
		t.Errorf("selection not echoed: %+v", dash.Selection)
	}
	if len(dash.Years) != 2 || len(dash.Counties) != 3 || len(dash.Metrics) != 3 {
		t.Errorf("option lists wrong: years=%v counties=%v metrics=%v",
			dash.Years, dash.Counties, dash.Metrics)
	}
	if dash.Choropleth == nil || dash.Choropleth.NoData {
		t.Error("choropleth missing or empty")
	}
	if dash.YearlyTrend == nil || dash.YearlyTrend.NoData {
		t.Error("yearly trend missing or empty")
	}
	if dash.MonthlyTrend == nil || dash.MonthlyTrend.NoData {
		t.Error("monthly trend missing or empty")
	}
	if dash.TopCounties == nil || len(dash.TopCounties.Bars) != 2 {
		t.Errorf("top counties not truncated to 2: %+v", dash.TopCounties)
	}
	if dash.Growth == nil || len(dash.Growth.Bars) != 1 {
		t.Errorf("growth bars wrong: %+v", dash.Growth)
	}
	if dash.KPIs == nil || dash.KPIs.Year != 2023 {
		t.Errorf("KPI record wrong: %+v", dash.KPIs)
	}
}

func TestBuildDashboardWithoutMonthly(t *testing.T) {
	tables := fixtureTables()
	tables.CountyMonth = nil
	tables.StateMonth = nil

	dash, err := BuildDashboard(tables, Selection{Year: 2023, County: "Shelby", Metric: MetricLitter})
	if err != nil {
		t.Fatalf("BuildDashboard failed: %v", err)
	}
	if dash.MonthlyTrend != nil {
		t.Errorf("monthly panel should be omitted, got %+v", dash.MonthlyTrend)
	}
}

func TestBuildDashboardEmptyYear(t *testing.T) {
	dash, err := BuildDashboard(fixtureTables(), Selection{Year: 1999, County: "Shelby", Metric: MetricLitter})
	if err != nil {
		t.Fatalf("BuildDashboard failed: %v", err)
	}

	// An empty selection is a valid dashboard full of no-data configs,
	// never an error.
	if !dash.Choropleth.NoData || !dash.TopCounties.NoData {
		t.Error("expected no-data map panels for an absent year")
	}
	if dash.KPIs != nil {
		t.Errorf("expected omitted KPI section, got %+v", dash.KPIs)
	}
}

func TestBuildDashboardRejectsBadInput(t *testing.T) {
	if _, err := BuildDashboard(nil, Selection{Year: 2023, County: "Shelby", Metric: MetricLitter}); err == nil {
		t.Error("expected error for nil tables")
	}

	bad := []Selection{
		{Year: 0, County: "Shelby", Metric: MetricLitter},
		{Year: 2023, County: "", Metric: MetricLitter},
		{Year: 2023, County: "Shelby", Metric: Metric("bogus")},
	}
	for _, sel := range bad {
		if _, err := BuildDashboard(fixtureTables(), sel); err == nil {
			t.Errorf("expected validation error for %+v", sel)
		} else if !strings.Contains(err.Error(), "invalid selection") {
			t.Errorf("unexpected error for %+v: %v", sel, err)
		}
	}
}

func TestDefaultSelection(t *testing.T) {
	tables := fixtureTables()
	tables.County = append(tables.County,
		dataset.CountyYear{County: "Anderson", Year: 2023, Litter: 10})

	sel, ok := DefaultSelection(tables)
	if !ok {
		t.Fatal("expected a default selection")
	}
	if sel.Year != 2023 {
		t.Errorf("expected most recent year 2023, got %d", sel.Year)
	}
	if sel.County != "Anderson" {
		t.Errorf("expected Anderson as default county, got %q", sel.County)
	}
	if sel.Metric != MetricLitter {
		t.Errorf("expected litter metric, got %q", sel.Metric)
	}
}

func TestDefaultSelectionFallsBackAlphabetically(t *testing.T) {
	sel, ok := DefaultSelection(fixtureTables())
	if !ok {
		t.Fatal("expected a default selection")
	}
	if sel.County != "Davidson" {
		t.Errorf("expected first county alphabetically, got %q", sel.County)
	}
}

func TestDefaultSelectionEmptyTables(t *testing.T) {
	if _, ok := DefaultSelection(&dataset.Tables{}); ok {
		t.Error("expected no selection for empty tables")
	}
}
