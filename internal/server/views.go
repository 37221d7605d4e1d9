package server

import (
	"time"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/game"
	"github.com/playperu/citydistance/internal/geoquiz"
)

type CityInfo struct {
	Name    string  `json:"name"`
	Lng     float64 `json:"lng"`
	Lat     float64 `json:"lat"`
	Geohash string  `json:"geohash"`
}

type PairInfo struct {
	Cities    [2]string `json:"cities"`
	Distance  float64   `json:"distance"`
	Formatted string    `json:"formatted"`
}

type ResultInfo struct {
	Success         bool     `json:"success"`
	NearestCorrect  bool     `json:"nearestCorrect"`
	FarthestCorrect bool     `json:"farthestCorrect"`
	ActualNearest   PairInfo `json:"actualNearest"`
	ActualFarthest  PairInfo `json:"actualFarthest"`
}

type LogInfo struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// GameResponse is the snapshot sent to clients after every intent. Guesses
// are indexes into Pairs; null means the slot is empty.
type GameResponse struct {
	ID            string      `json:"id"`
	State         string      `json:"state"`
	Cities        []CityInfo  `json:"cities"`
	Pairs         []PairInfo  `json:"pairs"`
	NearestGuess  *int        `json:"nearestGuess"`
	FarthestGuess *int        `json:"farthestGuess"`
	Result        *ResultInfo `json:"result"`
	Log           []LogInfo   `json:"log"`
}

type DistanceResponse struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Distance  float64 `json:"distance"`
	Formatted string  `json:"formatted"`
}

type ExtremesResponse struct {
	Nearest  PairInfo `json:"nearest"`
	Farthest PairInfo `json:"farthest"`
}

// presenter turns core values into response bodies.
type presenter struct {
	catalog   *catalog.Catalog
	precision int
}

func (p presenter) city(c geoquiz.City) CityInfo {
	return CityInfo{
		Name:    c.Name,
		Lng:     c.Coord.Lng,
		Lat:     c.Coord.Lat,
		Geohash: catalog.Geohash(c.Coord, p.precision),
	}
}

func (p presenter) cities() []CityInfo {
	out := make([]CityInfo, 0, p.catalog.Len())
	for _, c := range p.catalog.Cities() {
		out = append(out, p.city(c))
	}
	return out
}

func pairInfo(cp geoquiz.CityPair) PairInfo {
	return PairInfo{
		Cities:    cp.Cities(),
		Distance:  cp.Distance,
		Formatted: distance.Format(cp.Distance),
	}
}

func (p presenter) game(id string, s game.Snapshot) GameResponse {
	resp := GameResponse{
		ID:     id,
		State:  s.State.String(),
		Cities: make([]CityInfo, 0, len(s.Cities)),
		Pairs:  make([]PairInfo, 0, len(s.Pairs)),
		Log:    make([]LogInfo, 0, len(s.Log)),
	}
	for _, name := range s.Cities {
		c, err := p.catalog.Lookup(name)
		if err != nil {
			resp.Cities = append(resp.Cities, CityInfo{Name: name})
			continue
		}
		resp.Cities = append(resp.Cities, p.city(c))
	}
	for _, cp := range s.Pairs {
		resp.Pairs = append(resp.Pairs, pairInfo(cp))
	}
	if s.NearestGuess != game.NoGuess {
		i := s.NearestGuess
		resp.NearestGuess = &i
	}
	if s.FarthestGuess != game.NoGuess {
		i := s.FarthestGuess
		resp.FarthestGuess = &i
	}
	if r := s.Result; r != nil {
		resp.Result = &ResultInfo{
			Success:         r.Success,
			NearestCorrect:  r.NearestCorrect,
			FarthestCorrect: r.FarthestCorrect,
			ActualNearest:   pairInfo(r.ActualNearest),
			ActualFarthest:  pairInfo(r.ActualFarthest),
		}
	}
	for _, e := range s.Log {
		resp.Log = append(resp.Log, LogInfo{
			Time:    e.Time.UTC().Format(time.RFC3339),
			Level:   string(e.Level),
			Message: e.Message,
		})
	}
	return resp
}
