// Package distance computes great-circle distances between catalog cities and
// derives the nearest and farthest pair of a city set.
//
// Distances use the haversine formula on a sphere of radius EarthRadiusKm and
// are rounded to 0.1 km, so two calls with the same cities in either order
// return identical values.
package distance

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/s2"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/geoquiz"
)

// EarthRadiusKm is the mean radius of Earth in kilometers.
const EarthRadiusKm = 6371.0

// Engine resolves city names against a catalog. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
}

func New(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Extremes is the ground truth for a set of pairs.
type Extremes struct {
	Nearest  geoquiz.CityPair
	Farthest geoquiz.CityPair
}

// Distance returns the rounded great-circle distance between two catalog
// cities in kilometers. The same name twice yields 0.
func (e *Engine) Distance(a, b string) (float64, error) {
	if a == b {
		return 0, nil
	}
	// Fixed argument order keeps the result bit-identical both ways round.
	if b < a {
		a, b = b, a
	}
	ca, err := e.catalog.Lookup(a)
	if err != nil {
		return 0, err
	}
	cb, err := e.catalog.Lookup(b)
	if err != nil {
		return 0, err
	}
	return Haversine(ca.Coord, cb.Coord), nil
}

// Haversine returns the great-circle distance between p and q in kilometers,
// rounded to one decimal.
func Haversine(p, q geoquiz.Coordinate) float64 {
	a := s2.LatLngFromDegrees(p.Lat, p.Lng)
	b := s2.LatLngFromDegrees(q.Lat, q.Lng)
	return round1(a.Distance(b).Radians() * EarthRadiusKm)
}

func round1(km float64) float64 {
	return math.Round(km*10) / 10
}

// AllPairs returns one CityPair per unordered combination of the given
// cities, in input order (i before j). Repeated names are dropped, keeping the
// first occurrence; fewer than two distinct names is an
// *geoquiz.InsufficientCitiesError.
func (e *Engine) AllPairs(cities []string) ([]geoquiz.CityPair, error) {
	distinct := dedupe(cities)
	if len(distinct) < 2 {
		return nil, &geoquiz.InsufficientCitiesError{Got: len(distinct)}
	}

	pairs := make([]geoquiz.CityPair, 0, len(distinct)*(len(distinct)-1)/2)
	for i := 0; i < len(distinct); i++ {
		for j := i + 1; j < len(distinct); j++ {
			d, err := e.Distance(distinct[i], distinct[j])
			if err != nil {
				return nil, fmt.Errorf("pair %s/%s: %w", distinct[i], distinct[j], err)
			}
			pairs = append(pairs, geoquiz.CityPair{A: distinct[i], B: distinct[j], Distance: d})
		}
	}
	return pairs, nil
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// NearestAndFarthest stable-sorts a copy of pairs by ascending distance and
// returns the first as nearest and the last as farthest. Ties resolve to the
// earliest pair in input order for nearest and the latest for farthest.
func NearestAndFarthest(pairs []geoquiz.CityPair) (Extremes, error) {
	if len(pairs) == 0 {
		return Extremes{}, geoquiz.ErrEmptyInput
	}
	sorted := make([]geoquiz.CityPair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Distance < sorted[j].Distance
	})
	return Extremes{Nearest: sorted[0], Farthest: sorted[len(sorted)-1]}, nil
}

// CatalogExtremes returns the nearest and farthest pair over every city in
// the catalog.
func (e *Engine) CatalogExtremes() (Extremes, error) {
	pairs, err := e.AllPairs(e.catalog.Names())
	if err != nil {
		return Extremes{}, err
	}
	return NearestAndFarthest(pairs)
}

// Format renders a distance for display: metres below 1 km, otherwise
// kilometers with one decimal.
func Format(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}
