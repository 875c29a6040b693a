package dataset

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// ============================================================================
// LOADER — Reads the five input files into a Tables snapshot
// ============================================================================
// Required inputs (state-year, county-year, boundary) fail the whole load.
// Optional inputs (county-month, state-month) fail soft: any read or parse
// problem is logged and the table stays empty, so downstream code relies on
// presence checks instead of error handling.
// ============================================================================

// Paths locates the input files. CountyMonth and StateMonth may be empty or
// point at missing files; everything else is required.
type Paths struct {
	StateYear   string
	CountyYear  string
	CountyMonth string
	StateMonth  string
	Boundary    string

	// BoundaryKey is the GeoJSON property holding county names.
	// Empty selects DefaultBoundaryKey.
	BoundaryKey string
}

// Loader reads and parses the input file set.
type Loader struct {
	paths Paths
	log   *zap.Logger
}

// NewLoader creates a Loader. A nil logger disables logging.
func NewLoader(paths Paths, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{paths: paths, log: log}
}

// Paths returns the configured input file locations.
func (l *Loader) Paths() Paths { return l.paths }

// Load reads every input file and returns the immutable table snapshot.
// Required files propagate a *FatalLoadError; optional files degrade to
// empty tables.
func (l *Loader) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}

	// Required tables first: no point parsing optional data when the view
	// cannot render at all.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.paths.StateYear)
	if err != nil {
		return nil, &FatalLoadError{Path: l.paths.StateYear, Err: err}
	}
	if t.State, err = ParseStateYearCSV(data); err != nil {
		return nil, &FatalLoadError{Path: l.paths.StateYear, Err: err}
	}
	l.log.Info("loaded state-year table",
		zap.String("path", l.paths.StateYear), zap.Int("rows", len(t.State)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err = os.ReadFile(l.paths.CountyYear)
	if err != nil {
		return nil, &FatalLoadError{Path: l.paths.CountyYear, Err: err}
	}
	if t.County, err = ParseCountyYearCSV(data); err != nil {
		return nil, &FatalLoadError{Path: l.paths.CountyYear, Err: err}
	}
	l.log.Info("loaded county-year table",
		zap.String("path", l.paths.CountyYear), zap.Int("rows", len(t.County)))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err = os.ReadFile(l.paths.Boundary)
	if err != nil {
		return nil, &FatalLoadError{Path: l.paths.Boundary, Err: err}
	}
	if t.Boundary, err = ParseBoundaryJSON(data, l.paths.BoundaryKey); err != nil {
		return nil, &FatalLoadError{Path: l.paths.Boundary, Err: err}
	}
	l.log.Info("loaded boundary geometry",
		zap.String("path", l.paths.Boundary),
		zap.String("key", t.Boundary.KeyProperty),
		zap.Int("features", t.Boundary.FeatureCount()))

	// Optional tables fail soft.
	t.CountyMonth = loadOptional(l.log, l.paths.CountyMonth, "county-month", ParseCountyMonthCSV)
	t.StateMonth = loadOptional(l.log, l.paths.StateMonth, "state-month", ParseStateMonthCSV)

	return t, nil
}

// loadOptional reads and parses an optional table, substituting an empty
// slice on any failure.
func loadOptional[T any](log *zap.Logger, path, name string, parse func([]byte) ([]T, error)) []T {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(fmt.Sprintf("optional %s table unavailable", name),
			zap.String("path", path), zap.Error(err))
		return nil
	}
	rows, err := parse(data)
	if err != nil {
		log.Warn(fmt.Sprintf("optional %s table malformed", name),
			zap.String("path", path), zap.Error(err))
		return nil
	}
	log.Info(fmt.Sprintf("loaded %s table", name),
		zap.String("path", path), zap.Int("rows", len(rows)))
	return rows
}
