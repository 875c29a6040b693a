package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CONFIG TESTS
// ============================================================================

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, "NAME", cfg.Data.BoundaryKey)
	assert.Equal(t, 10, cfg.Charts.TopN)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "littermap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
data:
  dir: /srv/litter
  boundary_key: county_nm
charts:
  top_n: 5
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/litter", cfg.Data.Dir)
	assert.Equal(t, "county_nm", cfg.Data.BoundaryKey)
	assert.Equal(t, 5, cfg.Charts.TopN)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched keys keep their defaults.
	assert.Equal(t, "yearly_state.csv", cfg.Data.StateYear)
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvDataDir, "/mnt/datasets")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/datasets", cfg.Data.Dir)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("{{not yaml"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("charts:\n  top_n: -1\n"), 0o644))
	_, err = Load(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top_n")
}

func TestPathsResolution(t *testing.T) {
	cfg := Default()
	cfg.Data.Dir = "/srv/litter"
	cfg.Data.Boundary = "/etc/geo/tn.json" // absolute stays as-is
	cfg.Data.CountyMonth = ""              // optional file disabled

	paths := cfg.Paths()
	assert.Equal(t, filepath.Join("/srv/litter", "yearly_state.csv"), paths.StateYear)
	assert.Equal(t, filepath.Join("/srv/litter", "yearly_county.csv"), paths.CountyYear)
	assert.Equal(t, "/etc/geo/tn.json", paths.Boundary)
	assert.Equal(t, "", paths.CountyMonth)
	assert.Equal(t, "NAME", paths.BoundaryKey)
}

func TestBuildLogger(t *testing.T) {
	for _, lc := range []LoggingConfig{
		{Level: "debug", Format: "console"},
		{Level: "info", Format: "json"},
		{Level: "warn", Format: "console"},
	} {
		log, err := lc.BuildLogger()
		require.NoError(t, err, "%+v", lc)
		require.NotNil(t, log)
		log.Sync()
	}

	_, err := LoggingConfig{Level: "shouting", Format: "console"}.BuildLogger()
	assert.Error(t, err)
}
