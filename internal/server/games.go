package server

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/citydistance/internal/game"
)

var ErrNotFound = errors.New("not found")

// Games keeps one state machine per player in memory. Nothing survives a
// restart.
type Games struct {
	newMachine func(id string) *game.Machine
	onRemove   func(id string)
	now        func() time.Time

	mu    sync.RWMutex
	games map[string]*gameEntry
}

type gameEntry struct {
	machine  *game.Machine
	lastSeen atomic.Int64
}

// NewGames builds a registry. onRemove, if non-nil, is called without the
// lock held for every game dropped by Delete or Sweep.
func NewGames(newMachine func(id string) *game.Machine, onRemove func(id string)) *Games {
	return &Games{
		newMachine: newMachine,
		onRemove:   onRemove,
		now:        time.Now,
		games:      make(map[string]*gameEntry),
	}
}

// Create registers a new machine under a fresh ID and starts it.
func (g *Games) Create() (string, game.Snapshot) {
	id := uuid.NewString()
	e := &gameEntry{machine: g.newMachine(id)}
	e.lastSeen.Store(g.now().UnixNano())

	g.mu.Lock()
	g.games[id] = e
	g.mu.Unlock()

	return id, e.machine.Start()
}

func (g *Games) entry(id string) (*gameEntry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	e, ok := g.games[id]
	return e, ok
}

// Get returns the machine for id and marks it as recently used.
func (g *Games) Get(id string) (*game.Machine, error) {
	e, ok := g.entry(id)
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen.Store(g.now().UnixNano())
	return e.machine, nil
}

// Touch marks id as recently used by a long-lived connection. It reports
// false once the game is gone.
func (g *Games) Touch(id string) bool {
	e, ok := g.entry(id)
	if !ok {
		return false
	}
	e.lastSeen.Store(g.now().UnixNano())
	return true
}

func (g *Games) Delete(id string) bool {
	g.mu.Lock()
	_, ok := g.games[id]
	delete(g.games, id)
	g.mu.Unlock()

	if ok && g.onRemove != nil {
		g.onRemove(id)
	}
	return ok
}

func (g *Games) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.games)
}

// Sweep drops every game not touched within ttl and returns their IDs.
func (g *Games) Sweep(ttl time.Duration) []string {
	cutoff := g.now().Add(-ttl).UnixNano()

	g.mu.Lock()
	var removed []string
	for id, e := range g.games {
		if e.lastSeen.Load() < cutoff {
			delete(g.games, id)
			removed = append(removed, id)
		}
	}
	g.mu.Unlock()

	if g.onRemove != nil {
		for _, id := range removed {
			g.onRemove(id)
		}
	}
	return removed
}
