// Package geoquiz defines the core domain types and errors of the city
// distance quiz. It imports nothing outside the standard library.
package geoquiz

import (
	"errors"
	"fmt"
)

// Coordinate is a point in decimal degrees.
type Coordinate struct {
	Lng float64
	Lat float64
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

type City struct {
	Name  string
	Coord Coordinate
}

// CityPair is an unordered pair of two distinct cities with the distance
// between them in kilometers, rounded to one decimal.
type CityPair struct {
	A        string
	B        string
	Distance float64
}

func (p CityPair) Cities() [2]string { return [2]string{p.A, p.B} }

// Has reports whether name is one of the pair's cities.
func (p CityPair) Has(name string) bool { return p.A == name || p.B == name }

// Same reports whether p and o name the same two cities, in any order.
// Distances are not compared.
func (p CityPair) Same(o CityPair) bool {
	return (p.A == o.A && p.B == o.B) || (p.A == o.B && p.B == o.A)
}

// Key is an order-independent identity for the pair.
func (p CityPair) Key() string {
	if p.B < p.A {
		return p.B + "|" + p.A
	}
	return p.A + "|" + p.B
}

func (p CityPair) String() string {
	return fmt.Sprintf("%s-%s (%.1f km)", p.A, p.B, p.Distance)
}

var (
	ErrEmptyInput       = errors.New("no city pairs given")
	ErrGuessIncomplete  = errors.New("select both the nearest and the farthest pair first")
	ErrPairNotInSession = errors.New("pair is not part of this game")
)

// UnknownCityError is returned when a city name is absent from the catalog.
type UnknownCityError struct {
	Name       string
	Suggestion string
}

func (e *UnknownCityError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown city %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown city %q", e.Name)
}

// InsufficientCitiesError is returned when fewer than two distinct cities are
// available to build pairs from.
type InsufficientCitiesError struct {
	Got int
}

func (e *InsufficientCitiesError) Error() string {
	return fmt.Sprintf("need at least 2 distinct cities, got %d", e.Got)
}
