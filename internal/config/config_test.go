package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	for _, key := range []string{"LCA_WORLD_GEOJSON", "CHOROPLETH_NATURAL_EARTH_DIR", "CHOROPLETH_BASEMAP_URLS", "CHOROPLETH_HTTP_TIMEOUT", "LOG_LEVEL", "LOG_COLOR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.WorldGeoJSON)
	assert.Equal(t, filepath.Join("/data", "cartopy"), cfg.NaturalEarthDir)
	assert.Equal(t, defaultBasemapURLs, cfg.BasemapURLs)
	assert.Len(t, cfg.BasemapURLs, 2)
	assert.Contains(t, cfg.BasemapURLs[0], "ne_110m_admin_0_countries")
	assert.Contains(t, cfg.BasemapURLs[1], "ne_50m_admin_0_countries")
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogColor)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("LCA_WORLD_GEOJSON", "/maps/world.geojson")
	t.Setenv("CHOROPLETH_DATASETS_DIR", "/maps/datasets")
	t.Setenv("CHOROPLETH_NATURAL_EARTH_DIR", "/maps/ne")
	t.Setenv("CHOROPLETH_BASEMAP_URLS", "http://a.example/w.geojson, ,http://b.example/w.geojson")
	t.Setenv("CHOROPLETH_HTTP_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_COLOR", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/maps/world.geojson", cfg.WorldGeoJSON)
	assert.Equal(t, "/maps/datasets", cfg.DatasetsDir)
	assert.Equal(t, "/maps/ne", cfg.NaturalEarthDir)
	assert.Equal(t, []string{"http://a.example/w.geojson", "http://b.example/w.geojson"}, cfg.BasemapURLs)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.LogColor)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("CHOROPLETH_HTTP_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHOROPLETH_HTTP_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("CHOROPLETH_HTTP_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CHOROPLETH_HTTP_TIMEOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}
