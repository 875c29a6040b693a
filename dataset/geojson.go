package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// ============================================================================
// BOUNDARY GEOMETRY — County polygons from GeoJSON
// ============================================================================
// Geometry is carried as raw JSON: it is only ever passed through to the
// presentation layer for rendering and is never mutated or inspected here.
// Features are keyed by a configurable county-name property (default "NAME").
// ============================================================================

// DefaultBoundaryKey is the feature property holding the county name.
const DefaultBoundaryKey = "NAME"

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature with opaque geometry.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// Boundary wraps the county feature collection with a name lookup.
type Boundary struct {
	KeyProperty string            `json:"keyProperty"`
	Collection  FeatureCollection `json:"collection"`

	byName map[string]int
}

// ParseBoundaryJSON decodes a GeoJSON feature collection and indexes its
// features by the county-name property. Names are trimmed to match the
// normalization applied to the CSV tables.
func ParseBoundaryJSON(data []byte, keyProperty string) (*Boundary, error) {
	if keyProperty == "" {
		keyProperty = DefaultBoundaryKey
	}

	var fc FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse boundary GeoJSON: %w", err)
	}
	if len(fc.Features) == 0 {
		return nil, fmt.Errorf("boundary GeoJSON has no features")
	}

	b := &Boundary{
		KeyProperty: keyProperty,
		Collection:  fc,
		byName:      make(map[string]int, len(fc.Features)),
	}
	for i, f := range fc.Features {
		name, ok := f.Properties[keyProperty].(string)
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := b.byName[name]; !dup {
			b.byName[name] = i
		}
	}
	if len(b.byName) == 0 {
		return nil, fmt.Errorf("no feature carries property %q", keyProperty)
	}
	return b, nil
}

// HasCounty reports whether a county name (after trimming) maps to a feature.
func (b *Boundary) HasCounty(name string) bool {
	_, ok := b.byName[strings.TrimSpace(name)]
	return ok
}

// CountyNames returns the sorted set of county names in the geometry.
func (b *Boundary) CountyNames() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeatureCount returns the number of features in the collection.
func (b *Boundary) FeatureCount() int { return len(b.Collection.Features) }
