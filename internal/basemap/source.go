package basemap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/sekarsister/choropleth/internal/config"
)

// maxDownload caps remote basemap downloads.
const maxDownload = 256 << 20

// Source yields the raw GeoJSON of one basemap candidate.
type Source interface {
	Name() string
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads a basemap from the local filesystem.
type FileSource struct {
	Label string
	Path  string
}

func (s FileSource) Name() string {
	if s.Label != "" {
		return s.Label + " (" + s.Path + ")"
	}
	return s.Path
}

func (s FileSource) Read(_ context.Context) ([]byte, error) {
	if s.Path == "" {
		return nil, fmt.Errorf("no path configured")
	}
	return os.ReadFile(s.Path)
}

// HTTPSource downloads a basemap.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (s HTTPSource) Name() string { return s.URL }

func (s HTTPSource) Read(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("basemap request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("basemap download: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}

// datasetKeys are the admin-0 country datasets tried in a geo-dataset
// directory.
var datasetKeys = []string{
	"naturalearth.cultural.admin_0_countries",
	"naturalearth.cultural.v10.admin_0_countries",
	"naturalearth.cultural.countries.admin_0",
}

// SourcesFromConfig lists the basemap candidates in precedence order: the
// override file, the geo-dataset directory, the Natural Earth data
// directory and finally the remote URLs.
func SourcesFromConfig(cfg *config.Config) []Source {
	var sources []Source

	if cfg.WorldGeoJSON != "" {
		sources = append(sources, FileSource{Label: "LCA_WORLD_GEOJSON", Path: cfg.WorldGeoJSON})
	}
	if cfg.DatasetsDir != "" {
		for _, key := range datasetKeys {
			sources = append(sources, FileSource{Label: key, Path: filepath.Join(cfg.DatasetsDir, key+".geojson")})
		}
	}
	if cfg.NaturalEarthDir != "" {
		sources = append(sources, FileSource{
			Label: "natural_earth 110m",
			Path:  filepath.Join(cfg.NaturalEarthDir, "natural_earth", "cultural", "ne_110m_admin_0_countries.geojson"),
		})
	}

	client := &http.Client{Timeout: cfg.HTTPTimeout}
	for _, u := range cfg.BasemapURLs {
		sources = append(sources, HTTPSource{URL: u, Client: client})
	}
	return sources
}
