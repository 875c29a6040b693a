package dataset

import (
	"fmt"
)

// ============================================================================
// DATASET TYPES — Typed rows for the dashboard core
// ============================================================================
// One struct per input table. Tables are immutable after load; every user
// interaction reads the same loaded snapshot.
// ============================================================================

// StateYear is one statewide row per fiscal year.
type StateYear struct {
	Year     int     `json:"year"`
	Litter   float64 `json:"litter"`
	Recycled float64 `json:"recycled"`
	Dumps    float64 `json:"dumps"`
	Partners float64 `json:"partners"`
}

// CountyYear is one row per county per fiscal year.
type CountyYear struct {
	County   string  `json:"county"`
	Year     int     `json:"year"`
	Litter   float64 `json:"litter"`
	Recycled float64 `json:"recycled"`
	Dumps    float64 `json:"dumps"`
}

// CountyMonth is one row per county per fiscal month. Optional dataset.
type CountyMonth struct {
	County   string  `json:"county"`
	Year     int     `json:"year"`
	Month    string  `json:"month"`
	Litter   float64 `json:"litter"`
	Recycled float64 `json:"recycled"`
}

// StateMonth is one statewide row per fiscal month. Optional dataset,
// loaded for completeness but not consumed by any chart yet.
type StateMonth struct {
	Year     int     `json:"year"`
	Month    string  `json:"month"`
	Litter   float64 `json:"litter"`
	Recycled float64 `json:"recycled"`
}

// Tables is the full loaded snapshot handed to the engine.
type Tables struct {
	State       []StateYear
	County      []CountyYear
	CountyMonth []CountyMonth
	StateMonth  []StateMonth
	Boundary    *Boundary
}

// HasMonthly reports whether county-level monthly data was loaded.
// Optional datasets degrade to empty tables, so presence is a length check.
func (t *Tables) HasMonthly() bool { return len(t.CountyMonth) > 0 }

// ============================================================================
// FISCAL CALENDAR
// ============================================================================

// FiscalMonths lists the twelve month labels of a fiscal year starting in
// July. Monthly rows are ordered by this sequence, never alphabetically.
var FiscalMonths = []string{
	"July", "Aug", "Sept", "Oct", "Nov", "Dec",
	"Jan", "Feb", "Mar", "Apr", "May", "June",
}

var fiscalMonthIndex = func() map[string]int {
	m := make(map[string]int, len(FiscalMonths))
	for i, name := range FiscalMonths {
		m[name] = i
	}
	return m
}()

// FiscalMonthIndex returns the position of a month label within the fiscal
// year, or -1 for an unknown label.
func FiscalMonthIndex(name string) int {
	if i, ok := fiscalMonthIndex[name]; ok {
		return i
	}
	return -1
}

// ============================================================================
// ERROR TAXONOMY
// ============================================================================

// FatalLoadError wraps a failure on a required input file. The dashboard
// cannot render without the file, so callers propagate it.
type FatalLoadError struct {
	Path string
	Err  error
}

func (e *FatalLoadError) Error() string {
	return fmt.Sprintf("required dataset %s: %v", e.Path, e.Err)
}

func (e *FatalLoadError) Unwrap() error { return e.Err }
