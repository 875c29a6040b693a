package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// BOUNDARY GEOMETRY TESTS
// ============================================================================

const boundaryFixture = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {"NAME": "Shelby", "STATEFP": "47"},
			"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}
		},
		{
			"type": "Feature",
			"properties": {"NAME": " Knox "},
			"geometry": {"type": "Polygon", "coordinates": [[[2,2],[3,2],[3,3],[2,2]]]}
		}
	]
}`

func TestParseBoundaryJSON(t *testing.T) {
	b, err := ParseBoundaryJSON([]byte(boundaryFixture), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultBoundaryKey, b.KeyProperty)
	assert.Equal(t, 2, b.FeatureCount())

	// Names are trimmed to join against the CSV normalization.
	assert.True(t, b.HasCounty("Knox"))
	assert.True(t, b.HasCounty(" Knox "))
	assert.True(t, b.HasCounty("Shelby"))
	assert.False(t, b.HasCounty("Davidson"))

	assert.Equal(t, []string{"Knox", "Shelby"}, b.CountyNames())
}

func TestParseBoundaryJSONCustomKey(t *testing.T) {
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"county_nm":"Anderson"},"geometry":null}
	]}`

	b, err := ParseBoundaryJSON([]byte(data), "county_nm")
	require.NoError(t, err)
	assert.True(t, b.HasCounty("Anderson"))
}

func TestParseBoundaryJSONErrors(t *testing.T) {
	_, err := ParseBoundaryJSON([]byte("not json"), "")
	assert.Error(t, err)

	_, err = ParseBoundaryJSON([]byte(`{"type":"FeatureCollection","features":[]}`), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no features")

	// Features exist but none carries the key property.
	data := `{"type":"FeatureCollection","features":[
		{"type":"Feature","properties":{"other":"x"},"geometry":null}
	]}`
	_, err = ParseBoundaryJSON([]byte(data), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"NAME"`)
}

func TestParseBoundaryJSONGeometryOpaque(t *testing.T) {
	b, err := ParseBoundaryJSON([]byte(boundaryFixture), "")
	require.NoError(t, err)

	// Geometry passes through untouched for the presentation layer.
	assert.NotEmpty(t, b.Collection.Features[0].Geometry)
	assert.JSONEq(t,
		`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
		string(b.Collection.Features[0].Geometry))
}
