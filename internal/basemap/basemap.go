// Package basemap loads country boundaries and dissolves them into region
// polygons.
package basemap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Country is one basemap feature with its standardized name.
type Country struct {
	Name     string
	Geometry orb.MultiPolygon
}

// World is a country-level basemap.
type World struct {
	Source    string
	Countries []Country
}

var (
	// ErrNoBasemap is returned when every configured source failed.
	ErrNoBasemap = errors.New("could not load a Natural Earth basemap; set LCA_WORLD_GEOJSON or provide a geo-dataset directory (CHOROPLETH_DATASETS_DIR / CHOROPLETH_NATURAL_EARTH_DIR)")

	// ErrNoNameColumn is returned for a basemap without a recognizable
	// country-name property.
	ErrNoNameColumn = errors.New("basemap has no recognizable name column")
)

// Loader tries each source in order and keeps the first one that parses.
type Loader struct {
	sources []Source
	logger  *slog.Logger
}

// NewLoader creates a Loader over the given sources.
func NewLoader(sources []Source, logger *slog.Logger) *Loader {
	return &Loader{sources: sources, logger: logger}
}

// Load returns the first basemap that could be read and parsed.
func (l *Loader) Load(ctx context.Context) (*World, error) {
	var errs *multierror.Error
	for _, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := src.Read(ctx)
		if err != nil {
			l.logger.Debug("basemap source unavailable", "source", src.Name(), "error", err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		world, err := Parse(data)
		if err != nil {
			l.logger.Debug("basemap source unusable", "source", src.Name(), "error", err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", src.Name(), err))
			continue
		}
		world.Source = src.Name()
		l.logger.Info("basemap loaded", "source", world.Source, "countries", len(world.Countries))
		return world, nil
	}
	if errs == nil {
		return nil, ErrNoBasemap
	}
	return nil, fmt.Errorf("%w: %w", ErrNoBasemap, errs)
}

// Parse decodes a GeoJSON feature collection into a World. Features
// without polygonal geometry are skipped.
func Parse(data []byte) (*World, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	key := nameKey(fc.Features)
	if key == "" {
		return nil, ErrNoNameColumn
	}

	world := &World{Countries: make([]Country, 0, len(fc.Features))}
	for _, f := range fc.Features {
		name, _ := f.Properties[key].(string)
		if name == "" {
			continue
		}
		geom := polygons(f.Geometry)
		if len(geom) == 0 {
			continue
		}
		world.Countries = append(world.Countries, Country{Name: Harmonize(name), Geometry: geom})
	}
	return world, nil
}

// nameKey picks the first preferred name property present in any feature.
func nameKey(features []*geojson.Feature) string {
	for _, key := range nameKeys {
		for _, f := range features {
			if _, ok := f.Properties[key]; ok {
				return key
			}
		}
	}
	return ""
}

func polygons(g orb.Geometry) orb.MultiPolygon {
	switch g := g.(type) {
	case orb.Polygon:
		return orb.MultiPolygon{g}
	case orb.MultiPolygon:
		return g
	case orb.Collection:
		var mp orb.MultiPolygon
		for _, part := range g {
			mp = append(mp, polygons(part)...)
		}
		return mp
	default:
		return nil
	}
}
