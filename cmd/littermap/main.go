package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/littermap-org/littermap/config"
	"github.com/littermap-org/littermap/dataset"
	"github.com/littermap-org/littermap/engine"
	"github.com/littermap-org/littermap/render"
	"github.com/littermap-org/littermap/server"
)

// ============================================================================
// LITTERMAP CLI — dashboard core for Tennessee litter & recycling data
// ============================================================================

const version = "0.3.0"

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional)")
	dataDir := flag.String("data-dir", "", "Override data directory")
	year := flag.Int("year", 0, "Fiscal year (default: most recent)")
	county := flag.String("county", "", "County for trend panels (default: Anderson)")
	metric := flag.String("metric", "", "Map metric: litter, recycled, dumps (default: litter)")
	format := flag.String("format", "json", "Output format: json, pretty, csv")
	outFile := flag.String("out", "", "Write output to file instead of stdout")
	serve := flag.Bool("serve", false, "Run the HTTP API instead of a one-shot dump")
	listen := flag.String("listen", "", "HTTP listen address (overrides config)")
	renderChart := flag.String("render", "", "Render one chart to PNG: trend, monthly, growth, top")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `littermap — Tennessee litter & recycling dashboard core

Usage:
  littermap --year 2023 --county Shelby --metric recycled --format pretty
  littermap --render growth --out growth.png
  littermap --serve --listen :8080
  littermap --format csv --out top10.csv

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment:
  %s    Override the data directory

Formats:
  json      Full dashboard JSON (default)
  pretty    Pretty-printed JSON
  csv       Top-counties comparison as CSV
`, config.EnvDataDir)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("littermap %s\n", version)
		os.Exit(0)
	}

	// ── Config & logging ──────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fatalf("Failed to load config: %v", err)
	}
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	logger, err := cfg.Logging.BuildLogger()
	if err != nil {
		fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	loader := dataset.NewLoader(cfg.Paths(), logger)
	cache := dataset.NewCache(loader)

	// ── Serve mode ────────────────────────────────────────────────────────
	if *serve {
		srv := server.New(cache, logger, cfg.Charts.TopN)
		logger.Info("littermap API listening",
			zap.String("addr", cfg.Server.Listen), zap.String("version", version))
		if err := http.ListenAndServe(cfg.Server.Listen, srv.Handler()); err != nil {
			fatalf("Server failed: %v", err)
		}
		return
	}

	// ── One-shot mode ─────────────────────────────────────────────────────
	tables, err := cache.Tables(context.Background())
	if err != nil {
		fatalf("Failed to load datasets: %v", err)
	}

	sel, ok := engine.DefaultSelection(tables)
	if !ok {
		fatalf("Datasets hold no selectable data")
	}
	if *year != 0 {
		sel.Year = *year
	}
	if *county != "" {
		sel.County = *county
	}
	if *metric != "" {
		m, err := engine.ParseMetric(*metric)
		if err != nil {
			fatalf("%v", err)
		}
		sel.Metric = m
	}

	dash, err := engine.BuildDashboard(tables, sel, engine.WithTopN(cfg.Charts.TopN))
	if err != nil {
		fatalf("Failed to build dashboard: %v", err)
	}

	writer := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		writer = f
	}

	// ── Render mode ───────────────────────────────────────────────────────
	if *renderChart != "" {
		png, err := renderPNG(dash, *renderChart)
		if err != nil {
			fatalf("Failed to render %s chart: %v", *renderChart, err)
		}
		if _, err := writer.Write(png); err != nil {
			fatalf("Failed to write PNG: %v", err)
		}
		if *outFile != "" {
			logger.Info("chart written", zap.String("chart", *renderChart), zap.String("path", *outFile))
		}
		return
	}

	switch *format {
	case "csv":
		writeTopCSV(writer, dash.TopCounties)
	case "pretty":
		writeJSON(writer, dash, true)
	default:
		writeJSON(writer, dash, false)
	}
}

// renderPNG maps a chart name to its renderer.
func renderPNG(dash *engine.Dashboard, name string) ([]byte, error) {
	switch name {
	case "trend":
		return render.Trend(dash.YearlyTrend, 0, 0)
	case "monthly":
		return render.Trend(dash.MonthlyTrend, 0, 0)
	case "growth":
		return render.Growth(dash.Growth, 0, 0)
	case "top":
		return render.TopCounties(dash.TopCounties, 0, 0)
	}
	return nil, fmt.Errorf("unknown chart %q (want trend, monthly, growth or top)", name)
}

// ============================================================================
// OUTPUT HELPERS
// ============================================================================

func writeTopCSV(w *os.File, cfg *engine.RankedBarConfig) {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if cfg == nil || cfg.NoData {
		cw.Write([]string{"Result", "No data"})
		return
	}
	cw.Write([]string{cfg.XAxis, cfg.YAxis})
	for _, bar := range cfg.Bars {
		cw.Write([]string{bar.Label, fmtNum(bar.Value)})
	}
}

func writeJSON(w *os.File, v interface{}, pretty bool) {
	var out []byte
	var err error
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		fatalf("Failed to marshal output: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
