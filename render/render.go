// Package render rasterizes chart configs to PNG for clients that cannot
// render the declarative specs themselves. The choropleth is deliberately
// not handled here: polygon map rendering stays with the presentation layer.
package render

import (
	"bytes"
	"errors"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/littermap-org/littermap/engine"
)

// ErrNoData is returned for configs flagged as empty; callers decide how to
// present the neutral no-data state.
var ErrNoData = errors.New("render: no data in chart config")

const (
	// DefaultWidth and DefaultHeight match the dashboard panel sizing.
	DefaultWidth  = 960
	DefaultHeight = 520
)

// Trend renders a line chart with markers on every point.
func Trend(cfg *engine.TrendConfig, width, height int) ([]byte, error) {
	if cfg == nil || cfg.NoData || len(cfg.Series) == 0 {
		return nil, ErrNoData
	}
	width, height = clampSize(width, height)

	var series []chart.Series
	var ticks []chart.Tick
	for si, s := range cfg.Series {
		if len(s.Data) == 0 {
			continue
		}
		xs := make([]float64, len(s.Data))
		ys := make([]float64, len(s.Data))
		for i, p := range s.Data {
			xs[i] = float64(i)
			ys[i] = p.Value
		}
		// go-chart needs at least two X values per series.
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(hexColor(s.Color), cfg.Markers),
		})
		if si == 0 {
			for i, p := range s.Data {
				ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
			}
			if len(ticks) == 1 {
				ticks = append(ticks, chart.Tick{Value: 1, Label: ""})
			}
		}
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	ch := chart.Chart{
		Title:      cfg.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: cfg.XAxis, Ticks: ticks},
		YAxis:      chart.YAxis{Name: cfg.YAxis},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TopCounties renders the ranked comparison as a bar chart.
func TopCounties(cfg *engine.RankedBarConfig, width, height int) ([]byte, error) {
	if cfg == nil || cfg.NoData || len(cfg.Bars) == 0 {
		return nil, ErrNoData
	}
	width, height = clampSize(width, height)

	fill := hexColor("#3182bd")
	bars := make([]chart.Value, 0, len(cfg.Bars))
	for _, b := range cfg.Bars {
		bars = append(bars, chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return renderBars(cfg.Title, cfg.YAxis, bars, width, height)
}

// Growth renders the year-over-year growth bars with their sign colors.
func Growth(cfg *engine.GrowthBarConfig, width, height int) ([]byte, error) {
	if cfg == nil || cfg.NoData || len(cfg.Bars) == 0 {
		return nil, ErrNoData
	}
	width, height = clampSize(width, height)

	bars := make([]chart.Value, 0, len(cfg.Bars))
	for _, b := range cfg.Bars {
		fill := hexColor(b.Color)
		bars = append(bars, chart.Value{
			Label: strconv.Itoa(b.Year),
			Value: b.Percent,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	return renderBars(cfg.Title, cfg.YAxis, bars, width, height)
}

func renderBars(title, yAxis string, bars []chart.Value, width, height int) ([]byte, error) {
	ch := chart.BarChart{
		Title:      title,
		Width:      width,
		Height:     height,
		BarWidth:   48,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 16}},
		YAxis:      chart.YAxis{Name: yAxis},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineStyle(col drawing.Color, markers bool) chart.Style {
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
	}
	if markers {
		st.DotColor = col
		st.DotWidth = 4
	}
	return st
}

// hexColor parses "#rrggbb"; unknown input falls back to a neutral gray.
func hexColor(s string) drawing.Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return drawing.Color{R: 0x6b, G: 0x72, B: 0x80, A: 255}
	}
	return drawing.ColorFromHex(s)
}

func clampSize(width, height int) (int, int) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return width, height
}
