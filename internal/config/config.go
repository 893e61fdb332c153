package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Natural Earth admin-0 country boundaries, tried in order when no local
// basemap is available.
var defaultBasemapURLs = []string{
	"https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_110m_admin_0_countries.geojson",
	"https://raw.githubusercontent.com/nvkelso/natural-earth-vector/master/geojson/ne_50m_admin_0_countries.geojson",
}

// Config holds the runtime settings, populated from environment variables.
type Config struct {
	// WorldGeoJSON is a local basemap that takes precedence over every
	// other source.
	WorldGeoJSON string

	// DatasetsDir holds downloaded geo-datasets named by dataset key.
	DatasetsDir string
	// NaturalEarthDir is a mapping-library data directory laid out as
	// natural_earth/<category>/<name>.geojson.
	NaturalEarthDir string

	BasemapURLs []string
	HTTPTimeout time.Duration

	LogLevel string
	LogColor bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(envOrDefault("CHOROPLETH_HTTP_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid CHOROPLETH_HTTP_TIMEOUT")
	}

	level := strings.ToLower(envOrDefault("LOG_LEVEL", "info"))
	switch level {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid LOG_LEVEL: must be one of debug, info, warn, error")
	}

	urls := defaultBasemapURLs
	if v := os.Getenv("CHOROPLETH_BASEMAP_URLS"); v != "" {
		urls = splitList(v)
	}

	cfg := &Config{
		WorldGeoJSON:    os.Getenv("LCA_WORLD_GEOJSON"),
		DatasetsDir:     envOrDefault("CHOROPLETH_DATASETS_DIR", defaultDatasetsDir()),
		NaturalEarthDir: envOrDefault("CHOROPLETH_NATURAL_EARTH_DIR", defaultNaturalEarthDir()),
		BasemapURLs:     urls,
		HTTPTimeout:     timeout,
		LogLevel:        level,
		LogColor:        os.Getenv("LOG_COLOR") != "false",
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func defaultDatasetsDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "geodatasets")
}

func defaultNaturalEarthDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "cartopy")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "cartopy")
}
