package game

import (
	"fmt"
	"time"

	"github.com/playperu/citydistance/internal/geoquiz"
)

// State is the phase a game session is in.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateJudged
)

var stateNames = [...]string{"idle", "loading", "ready", "judged"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *State) UnmarshalText(b []byte) error {
	for i, name := range stateNames {
		if name == string(b) {
			*s = State(i)
			return nil
		}
	}
	return fmt.Errorf("unknown game state %q", b)
}

// Level tags an event log entry.
type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type LogEntry struct {
	Time    time.Time `json:"time"`
	Level   Level     `json:"level"`
	Message string    `json:"message"`
}

// Result is the judged outcome of a session. Once set it never changes.
type Result struct {
	Success         bool
	NearestCorrect  bool
	FarthestCorrect bool
	ActualNearest   geoquiz.CityPair
	ActualFarthest  geoquiz.CityPair
}

// NoGuess marks an empty guess slot.
const NoGuess = -1

// Snapshot is a read-only copy of a session, safe to hand to any number of
// observers. Guesses are indexes into Pairs, or NoGuess.
type Snapshot struct {
	State         State
	Cities        []string
	Pairs         []geoquiz.CityPair
	NearestGuess  int
	FarthestGuess int
	Result        *Result
	Log           []LogEntry
}

// Nearest returns the pair guessed as nearest, if any.
func (s Snapshot) Nearest() (geoquiz.CityPair, bool) { return s.pairAt(s.NearestGuess) }

// Farthest returns the pair guessed as farthest, if any.
func (s Snapshot) Farthest() (geoquiz.CityPair, bool) { return s.pairAt(s.FarthestGuess) }

func (s Snapshot) pairAt(i int) (geoquiz.CityPair, bool) {
	if i < 0 || i >= len(s.Pairs) {
		return geoquiz.CityPair{}, false
	}
	return s.Pairs[i], true
}

// FindPair returns the index of the pair joining a and b, in either order.
func (s Snapshot) FindPair(a, b string) (int, bool) {
	want := geoquiz.CityPair{A: a, B: b}
	for i, p := range s.Pairs {
		if p.Same(want) {
			return i, true
		}
	}
	return NoGuess, false
}
