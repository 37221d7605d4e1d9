// Package game holds the authoritative state machine for one quiz session:
// Idle → Loading → Ready → Judged, with start/reset leading back to Loading
// from any state.
package game

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/geoquiz"
)

// DefaultCityCount is the number of cities drawn per session.
const DefaultCityCount = 3

// CityPicker draws the cities for a new session.
type CityPicker interface {
	RandomCities(count int) ([]string, error)
}

// PairBuilder computes every pairwise distance for a city set.
type PairBuilder interface {
	AllPairs(cities []string) ([]geoquiz.CityPair, error)
}

type Option func(*Machine)

func WithCityCount(n int) Option { return func(m *Machine) { m.count = n } }

func WithClock(now func() time.Time) Option { return func(m *Machine) { m.now = now } }

func WithLogger(l *slog.Logger) Option { return func(m *Machine) { m.logger = l } }

// WithObserver registers fn to receive a snapshot after every transition.
// fn runs with the machine locked and must not call back into it.
func WithObserver(fn func(Snapshot)) Option {
	return func(m *Machine) { m.observers = append(m.observers, fn) }
}

// Machine serializes every intent: one transition runs to completion before
// the next is accepted.
type Machine struct {
	mu        sync.Mutex
	picker    CityPicker
	builder   PairBuilder
	count     int
	now       func() time.Time
	logger    *slog.Logger
	observers []func(Snapshot)

	state    State
	cities   []string
	pairs    []geoquiz.CityPair
	nearest  int
	farthest int
	result   *Result
	log      []LogEntry
}

// New returns an Idle machine. Call Start to draw the first set of cities.
func New(picker CityPicker, builder PairBuilder, opts ...Option) *Machine {
	m := &Machine{
		picker:   picker,
		builder:  builder,
		count:    DefaultCityCount,
		now:      time.Now,
		logger:   slog.Default(),
		nearest:  NoGuess,
		farthest: NoGuess,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Snapshot returns a copy of the current session.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Start begins a brand-new session. Selector or engine failures leave the
// machine Ready with no cities and an error in the event log.
func (m *Machine) Start() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("new game started")
	return m.snapshot()
}

// Reset is Start under another name; the log records which one happened.
func (m *Machine) Reset() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.begin("game reset")
	return m.snapshot()
}

func (m *Machine) begin(reason string) {
	m.state = StateLoading
	m.cities = nil
	m.pairs = nil
	m.nearest, m.farthest = NoGuess, NoGuess
	m.result = nil
	m.log = nil
	m.addLog(LevelInfo, reason)
	m.notify()

	if err := m.load(); err != nil {
		m.cities = []string{}
		m.pairs = []geoquiz.CityPair{}
		m.addLog(LevelError, "could not set up game: "+err.Error())
		m.logger.Error("game setup failed", "error", err)
	}
	m.state = StateReady
	m.notify()
}

func (m *Machine) load() error {
	cities, err := m.picker.RandomCities(m.count)
	if err != nil {
		return fmt.Errorf("drawing cities: %w", err)
	}
	pairs, err := m.builder.AllPairs(cities)
	if err != nil {
		return fmt.Errorf("computing distances: %w", err)
	}

	m.cities = cities
	m.pairs = pairs
	m.addLog(LevelInfo, "selected cities: "+strings.Join(cities, ", "))
	for _, p := range pairs {
		m.addLog(LevelInfo, fmt.Sprintf("%s to %s: %s", p.A, p.B, distance.Format(p.Distance)))
	}
	return nil
}

// SelectNearest records pairs[i] as the nearest guess, replacing any earlier
// one. It is ignored once the session is judged.
func (m *Machine) SelectNearest(i int) (Snapshot, error) {
	return m.selectGuess(i, &m.nearest)
}

// SelectFarthest records pairs[i] as the farthest guess, replacing any
// earlier one. It is ignored once the session is judged.
func (m *Machine) SelectFarthest(i int) (Snapshot, error) {
	return m.selectGuess(i, &m.farthest)
}

func (m *Machine) selectGuess(i int, slot *int) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result != nil {
		return m.snapshot(), nil
	}
	if i < 0 || i >= len(m.pairs) {
		return m.snapshot(), geoquiz.ErrPairNotInSession
	}
	*slot = i
	m.notify()
	return m.snapshot(), nil
}

// Submit judges both guesses against the ground truth and moves to Judged.
// With a guess missing it logs an error, changes nothing and returns
// geoquiz.ErrGuessIncomplete. Submitting a judged session is a no-op.
func (m *Machine) Submit() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.result != nil {
		return m.snapshot(), nil
	}
	if m.nearest == NoGuess || m.farthest == NoGuess {
		m.addLog(LevelError, geoquiz.ErrGuessIncomplete.Error())
		m.logger.Debug("submit rejected", "error", geoquiz.ErrGuessIncomplete)
		return m.snapshot(), geoquiz.ErrGuessIncomplete
	}

	truth, err := distance.NearestAndFarthest(m.pairs)
	if err != nil {
		m.addLog(LevelError, "could not judge guesses: "+err.Error())
		return m.snapshot(), err
	}

	res := Judge(m.pairs[m.nearest], m.pairs[m.farthest], truth)
	m.result = &res
	m.state = StateJudged

	if res.Success {
		m.addLog(LevelInfo, "result: all correct")
	} else {
		m.addLog(LevelInfo, "result: not quite")
	}
	if !res.NearestCorrect {
		m.addLog(LevelInfo, fmt.Sprintf("the nearest pair is %s and %s (%s)",
			truth.Nearest.A, truth.Nearest.B, distance.Format(truth.Nearest.Distance)))
	}
	if !res.FarthestCorrect {
		m.addLog(LevelInfo, fmt.Sprintf("the farthest pair is %s and %s (%s)",
			truth.Farthest.A, truth.Farthest.B, distance.Format(truth.Farthest.Distance)))
	}
	m.notify()
	return m.snapshot(), nil
}

// Judge compares guesses with the ground truth. A guess is correct only when
// it names exactly the same two cities as the true pair.
func Judge(nearest, farthest geoquiz.CityPair, truth distance.Extremes) Result {
	nc := nearest.Same(truth.Nearest)
	fc := farthest.Same(truth.Farthest)
	return Result{
		Success:         nc && fc,
		NearestCorrect:  nc,
		FarthestCorrect: fc,
		ActualNearest:   truth.Nearest,
		ActualFarthest:  truth.Farthest,
	}
}

func (m *Machine) addLog(level Level, msg string) {
	m.log = append(m.log, LogEntry{Time: m.now(), Level: level, Message: msg})
}

func (m *Machine) notify() {
	if len(m.observers) == 0 {
		return
	}
	snap := m.snapshot()
	for _, fn := range m.observers {
		fn(snap)
	}
}

func (m *Machine) snapshot() Snapshot {
	s := Snapshot{
		State:         m.state,
		NearestGuess:  m.nearest,
		FarthestGuess: m.farthest,
	}
	if m.cities != nil {
		s.Cities = append([]string{}, m.cities...)
	}
	if m.pairs != nil {
		s.Pairs = append([]geoquiz.CityPair{}, m.pairs...)
	}
	if m.result != nil {
		r := *m.result
		s.Result = &r
	}
	if m.log != nil {
		s.Log = append([]LogEntry{}, m.log...)
	}
	return s
}
