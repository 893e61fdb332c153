package basemap

import (
	"errors"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/samber/lo"

	"github.com/sekarsister/choropleth/internal/regions"
)

// ErrNoRegionPolygons is returned when no region matched any basemap country.
var ErrNoRegionPolygons = errors.New("no region polygons could be built; check the region tables against the basemap names")

// RegionPolygon is the dissolved geometry of a main region or subregion.
type RegionPolygon struct {
	Key      string
	Members  []string
	Geometry orb.MultiPolygon
}

// MainRegionPolygons dissolves countries into one polygon per main region.
func MainRegionPolygons(world *World, tables *regions.Tables, logger *slog.Logger) ([]RegionPolygon, error) {
	keys := tables.MainRegions()
	return dissolve(world, keys, tables.MainRegionCountries, logger)
}

// SubregionPolygons dissolves countries into one polygon per subregion.
func SubregionPolygons(world *World, tables *regions.Tables, logger *slog.Logger) ([]RegionPolygon, error) {
	return dissolve(world, tables.Subregions(), tables.Countries, logger)
}

func dissolve(world *World, keys []string, members func(string) []string, logger *slog.Logger) ([]RegionPolygon, error) {
	var out []RegionPolygon
	for _, key := range keys {
		wanted := lo.Uniq(members(key))
		if len(wanted) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(wanted))
		for _, name := range wanted {
			set[name] = struct{}{}
		}

		rp := RegionPolygon{Key: key}
		for _, c := range world.Countries {
			if _, ok := set[c.Name]; !ok {
				continue
			}
			rp.Geometry = append(rp.Geometry, c.Geometry...)
			rp.Members = append(rp.Members, c.Name)
		}
		if len(rp.Geometry) == 0 {
			logger.Debug("region has no basemap countries, dropped", "region", key)
			continue
		}
		if missing := len(wanted) - len(lo.Uniq(rp.Members)); missing > 0 {
			logger.Debug("region partially matched", "region", key, "matched", len(lo.Uniq(rp.Members)), "missing", missing)
		}
		out = append(out, rp)
	}
	if len(out) == 0 {
		return nil, ErrNoRegionPolygons
	}
	return out, nil
}
