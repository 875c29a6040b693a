// Package littermap provides the data core for a Tennessee litter,
// recycling and dump-site dashboard.
//
// Usage:
//
//	import (
//	    "github.com/littermap-org/littermap/dataset"
//	    "github.com/littermap-org/littermap/engine"
//	)
//
//	tables, err := dataset.NewLoader(paths, logger).Load(ctx)
//	dash, err := engine.BuildDashboard(tables, engine.Selection{
//	    Year:   2023,
//	    County: "Anderson",
//	    Metric: engine.MetricLitter,
//	})
//
// The engine takes an immutable set of tables plus a user selection and
// returns render-ready output (choropleth, trend, ranked-bar and growth-bar
// configs plus a KPI record). Rendering is handled separately by the
// presentation layer; the engine never performs I/O, and all computation is
// local and deterministic.
package littermap
