// Package catalog holds the fixed reference set of cities the quiz draws from.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/agnivade/levenshtein"

	"github.com/playperu/citydistance/internal/geoquiz"
)

// maxSuggestDistance bounds how far a misspelled name may be from a catalog
// entry before no suggestion is offered.
const maxSuggestDistance = 3

// Catalog is an immutable name → coordinate table. Safe for concurrent reads.
type Catalog struct {
	cities []geoquiz.City
	byName map[string]int
}

// New builds a catalog, rejecting empty or duplicate names and coordinates
// outside the valid lat/lng range. Order is preserved.
func New(cities []geoquiz.City) (*Catalog, error) {
	c := &Catalog{
		cities: make([]geoquiz.City, 0, len(cities)),
		byName: make(map[string]int, len(cities)),
	}
	for _, city := range cities {
		name := strings.TrimSpace(city.Name)
		if name == "" {
			return nil, fmt.Errorf("city with empty name at position %d", len(c.cities))
		}
		if _, dup := c.byName[name]; dup {
			return nil, fmt.Errorf("duplicate city %q", name)
		}
		if !city.Coord.Valid() {
			return nil, fmt.Errorf("city %q: coordinate out of range (%f, %f)", name, city.Coord.Lng, city.Coord.Lat)
		}
		c.byName[name] = len(c.cities)
		c.cities = append(c.cities, geoquiz.City{Name: name, Coord: city.Coord})
	}
	return c, nil
}

// Default returns the built-in reference set.
func Default() *Catalog {
	c, err := New(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in table: %v", err))
	}
	return c
}

// Builtin returns a copy of the built-in table.
func Builtin() []geoquiz.City {
	out := make([]geoquiz.City, len(builtin))
	copy(out, builtin)
	return out
}

// Load reads the catalog from the cities table, ordered by position.
func Load(ctx context.Context, db *sql.DB) (*Catalog, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name, longitude, latitude FROM cities ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying cities: %w", err)
	}
	defer rows.Close()

	var cities []geoquiz.City
	for rows.Next() {
		var city geoquiz.City
		if err := rows.Scan(&city.Name, &city.Coord.Lng, &city.Coord.Lat); err != nil {
			return nil, fmt.Errorf("scanning city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cities: %w", err)
	}
	return New(cities)
}

func (c *Catalog) Len() int { return len(c.cities) }

// At returns the city at position i in catalog order.
func (c *Catalog) At(i int) geoquiz.City { return c.cities[i] }

// Names returns all city names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.cities))
	for i, city := range c.cities {
		names[i] = city.Name
	}
	return names
}

// Cities returns a copy of every city in catalog order.
func (c *Catalog) Cities() []geoquiz.City {
	out := make([]geoquiz.City, len(c.cities))
	copy(out, c.cities)
	return out
}

func (c *Catalog) Contains(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Lookup returns the named city or a *geoquiz.UnknownCityError carrying the
// closest catalog name, if any is near enough.
func (c *Catalog) Lookup(name string) (geoquiz.City, error) {
	if i, ok := c.byName[name]; ok {
		return c.cities[i], nil
	}
	return geoquiz.City{}, &geoquiz.UnknownCityError{Name: name, Suggestion: c.suggest(name)}
}

func (c *Catalog) suggest(name string) string {
	query := strings.ToLower(strings.TrimSpace(name))
	if query == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, city := range c.cities {
		d := levenshtein.ComputeDistance(query, strings.ToLower(city.Name))
		if d < bestDist {
			best, bestDist = city.Name, d
		}
	}
	return best
}

// Geohash encodes a coordinate for map clients that bucket markers by cell.
func Geohash(coord geoquiz.Coordinate, precision int) string {
	if precision <= 0 {
		return geohash.Encode(coord.Lat, coord.Lng)
	}
	return geohash.EncodeWithPrecision(coord.Lat, coord.Lng, precision)
}
