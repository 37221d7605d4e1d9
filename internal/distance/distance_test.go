package distance

import (
	"errors"
	"math"
	"testing"

	. "gopkg.in/check.v1"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/geoquiz"
)

// Hook up gocheck into the "go test" runner.
func Test(t *testing.T) { TestingT(t) }

type DistanceSuite struct {
	cat    *catalog.Catalog
	engine *Engine
}

var _ = Suite(&DistanceSuite{})

func (s *DistanceSuite) SetUpSuite(c *C) {
	s.cat = catalog.Default()
	s.engine = New(s.cat)
}

func (s *DistanceSuite) TestKnownDistances(c *C) {
	bjsh, err := s.engine.Distance("Beijing", "Shanghai")
	c.Assert(err, IsNil)
	c.Assert(bjsh >= 1000 && bjsh < 1500, Equals, true, Commentf("Beijing-Shanghai = %v", bjsh))
	c.Assert(math.Abs(bjsh-1067.3) <= 0.1, Equals, true, Commentf("Beijing-Shanghai = %v", bjsh))

	bjtj, err := s.engine.Distance("Beijing", "Tianjin")
	c.Assert(err, IsNil)
	c.Assert(bjtj > 100 && bjtj < 200, Equals, true, Commentf("Beijing-Tianjin = %v", bjtj))
}

func (s *DistanceSuite) TestRoundedToOneDecimal(c *C) {
	d, err := s.engine.Distance("Guangzhou", "Shanghai")
	c.Assert(err, IsNil)
	c.Assert(math.Round(d*10)/10, Equals, d)
}

func (s *DistanceSuite) TestSymmetric(c *C) {
	names := s.cat.Names()
	for i := range names {
		for j := range names {
			ab, err := s.engine.Distance(names[i], names[j])
			c.Assert(err, IsNil)
			ba, err := s.engine.Distance(names[j], names[i])
			c.Assert(err, IsNil)
			c.Assert(math.Float64bits(ab), Equals, math.Float64bits(ba),
				Commentf("%s/%s: %v vs %v", names[i], names[j], ab, ba))
		}
	}
}

func (s *DistanceSuite) TestSameCityIsZero(c *C) {
	for _, name := range s.cat.Names() {
		d, err := s.engine.Distance(name, name)
		c.Assert(err, IsNil)
		c.Assert(d, Equals, 0.0)
	}
}

func (s *DistanceSuite) TestUnknownCity(c *C) {
	_, err := s.engine.Distance("Beijing", "Atlantis")
	var unknown *geoquiz.UnknownCityError
	c.Assert(errors.As(err, &unknown), Equals, true)
	c.Assert(unknown.Name, Equals, "Atlantis")

	_, err = s.engine.Distance("Atlantis", "Beijing")
	c.Assert(errors.As(err, &unknown), Equals, true)
}

func (s *DistanceSuite) TestAllPairsCount(c *C) {
	names := s.cat.Names()
	for k := 2; k <= len(names); k++ {
		pairs, err := s.engine.AllPairs(names[:k])
		c.Assert(err, IsNil)
		c.Assert(len(pairs), Equals, k*(k-1)/2)

		seen := make(map[string]bool)
		for _, p := range pairs {
			c.Assert(p.A, Not(Equals), p.B)
			c.Assert(seen[p.Key()], Equals, false, Commentf("duplicate pair %s", p.Key()))
			seen[p.Key()] = true
		}
	}
}

func (s *DistanceSuite) TestAllPairsOrder(c *C) {
	pairs, err := s.engine.AllPairs([]string{"Beijing", "Shanghai", "Guangzhou"})
	c.Assert(err, IsNil)
	c.Assert(pairs, HasLen, 3)
	c.Assert(pairs[0].Cities(), Equals, [2]string{"Beijing", "Shanghai"})
	c.Assert(pairs[1].Cities(), Equals, [2]string{"Beijing", "Guangzhou"})
	c.Assert(pairs[2].Cities(), Equals, [2]string{"Shanghai", "Guangzhou"})
}

func (s *DistanceSuite) TestAllPairsDeduplicates(c *C) {
	pairs, err := s.engine.AllPairs([]string{"Beijing", "Shanghai", "Beijing", "Guangzhou", "Shanghai"})
	c.Assert(err, IsNil)
	c.Assert(pairs, HasLen, 3)
}

func (s *DistanceSuite) TestAllPairsInsufficient(c *C) {
	for _, input := range [][]string{nil, {"Beijing"}, {"Beijing", "Beijing"}} {
		_, err := s.engine.AllPairs(input)
		var insufficient *geoquiz.InsufficientCitiesError
		c.Assert(errors.As(err, &insufficient), Equals, true, Commentf("input %v", input))
	}
}

func (s *DistanceSuite) TestAllPairsUnknown(c *C) {
	_, err := s.engine.AllPairs([]string{"Beijing", "Atlantis"})
	var unknown *geoquiz.UnknownCityError
	c.Assert(errors.As(err, &unknown), Equals, true)
}

func (s *DistanceSuite) TestNearestAndFarthestBounds(c *C) {
	pairs, err := s.engine.AllPairs(s.cat.Names()[:8])
	c.Assert(err, IsNil)

	ex, err := NearestAndFarthest(pairs)
	c.Assert(err, IsNil)
	for _, p := range pairs {
		c.Assert(ex.Nearest.Distance <= p.Distance, Equals, true)
		c.Assert(p.Distance <= ex.Farthest.Distance, Equals, true)
	}
}

func (s *DistanceSuite) TestNearestAndFarthestThreeCities(c *C) {
	pairs, err := s.engine.AllPairs([]string{"Beijing", "Shanghai", "Guangzhou"})
	c.Assert(err, IsNil)

	ex, err := NearestAndFarthest(pairs)
	c.Assert(err, IsNil)
	c.Assert(ex.Nearest.Same(geoquiz.CityPair{A: "Beijing", B: "Shanghai"}), Equals, true)
	c.Assert(ex.Farthest.Same(geoquiz.CityPair{A: "Beijing", B: "Guangzhou"}), Equals, true)
}

func (s *DistanceSuite) TestNearestAndFarthestTies(c *C) {
	pairs := []geoquiz.CityPair{
		{A: "a", B: "b", Distance: 5},
		{A: "a", B: "c", Distance: 1},
		{A: "b", B: "c", Distance: 1},
		{A: "a", B: "d", Distance: 5},
	}
	for i := 0; i < 5; i++ {
		ex, err := NearestAndFarthest(pairs)
		c.Assert(err, IsNil)
		c.Assert(ex.Nearest.Key(), Equals, "a|c")
		c.Assert(ex.Farthest.Key(), Equals, "a|d")
	}
	// Input is left untouched.
	c.Assert(pairs[0].Key(), Equals, "a|b")
}

func (s *DistanceSuite) TestNearestAndFarthestEmpty(c *C) {
	_, err := NearestAndFarthest(nil)
	c.Assert(errors.Is(err, geoquiz.ErrEmptyInput), Equals, true)
}

func (s *DistanceSuite) TestCatalogExtremes(c *C) {
	ex, err := s.engine.CatalogExtremes()
	c.Assert(err, IsNil)
	c.Assert(ex.Nearest.Same(geoquiz.CityPair{A: "Guangzhou", B: "Foshan"}), Equals, true, Commentf("nearest %s", ex.Nearest))
	c.Assert(ex.Farthest.Same(geoquiz.CityPair{A: "Kunming", B: "Harbin"}), Equals, true, Commentf("farthest %s", ex.Farthest))
}

func (s *DistanceSuite) TestFormat(c *C) {
	c.Assert(Format(0.25), Equals, "250 m")
	c.Assert(Format(1067.3), Equals, "1067.3 km")
	c.Assert(Format(1), Equals, "1.0 km")
}
