package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/littermap-org/littermap/engine"
)

// ============================================================================
// RENDER TESTS
// ============================================================================

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func assertPNG(t *testing.T, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !bytes.HasPrefix(data, pngMagic) {
		t.Fatalf("output is not a PNG (%d bytes)", len(data))
	}
}

func trendFixture() *engine.TrendConfig {
	return &engine.TrendConfig{
		Title:   "Shelby Trend (Yearly)",
		XAxis:   "Fiscal Year",
		YAxis:   "Tonnage (lbs)",
		Markers: true,
		Series: []engine.ChartSeries{
			{
				Name:  "Litter",
				Color: "#4F46E5",
				Data: []engine.ChartPoint{
					{Label: "2021", Value: 400},
					{Label: "2022", Value: 450},
					{Label: "2023", Value: 500},
				},
			},
			{
				Name:  "Recycled",
				Color: "#10B981",
				Data: []engine.ChartPoint{
					{Label: "2021", Value: 150},
					{Label: "2022", Value: 180},
					{Label: "2023", Value: 200},
				},
			},
		},
	}
}

func TestTrend(t *testing.T) {
	png, err := Trend(trendFixture(), 640, 360)
	assertPNG(t, png, err)
}

func TestTrendDefaultSize(t *testing.T) {
	png, err := Trend(trendFixture(), 0, 0)
	assertPNG(t, png, err)
}

func TestTrendSinglePoint(t *testing.T) {
	cfg := trendFixture()
	for i := range cfg.Series {
		cfg.Series[i].Data = cfg.Series[i].Data[:1]
	}
	png, err := Trend(cfg, 640, 360)
	assertPNG(t, png, err)
}

func TestTrendNoData(t *testing.T) {
	cases := []*engine.TrendConfig{
		nil,
		{NoData: true, Message: "No data available for selected year."},
		{Title: "empty"},
	}
	for _, cfg := range cases {
		if _, err := Trend(cfg, 640, 360); !errors.Is(err, ErrNoData) {
			t.Errorf("expected ErrNoData for %+v, got %v", cfg, err)
		}
	}
}

func TestTopCounties(t *testing.T) {
	cfg := &engine.RankedBarConfig{
		Title: "Top 3 Counties by Litter",
		XAxis: "County",
		YAxis: "Litter (lbs)",
		Bars: []engine.ChartPoint{
			{Label: "Knox", Value: 1200},
			{Label: "Davidson", Value: 800},
			{Label: "Shelby", Value: 500},
		},
	}
	png, err := TopCounties(cfg, 640, 360)
	assertPNG(t, png, err)

	if _, err := TopCounties(&engine.RankedBarConfig{NoData: true}, 640, 360); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestGrowth(t *testing.T) {
	cfg := &engine.GrowthBarConfig{
		Title: "Year-over-Year Recycling Growth (%)",
		XAxis: "Fiscal Year",
		YAxis: "Growth (%)",
		Bars: []engine.GrowthBar{
			{Year: 2022, Percent: 10.0, Sign: engine.SignPositive, Color: "#2ca02c"},
			{Year: 2023, Percent: -4.5, Sign: engine.SignNegative, Color: "#d62728"},
		},
	}
	png, err := Growth(cfg, 640, 360)
	assertPNG(t, png, err)

	if _, err := Growth(nil, 640, 360); !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}
