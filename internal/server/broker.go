package server

import (
	"encoding/json"
	"sync"
)

// GameEvent is the payload published to a game's subscribers.
type GameEvent struct {
	Type string       `json:"type"`
	Game GameResponse `json:"game"`
}

// Broker is an in-process pub/sub for SSE events, keyed by game ID.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given game.
func (b *Broker) Subscribe(gameID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[chan []byte]struct{})
	}
	b.subs[gameID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the game's subscribers.
func (b *Broker) Unsubscribe(gameID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[gameID], ch)
	if len(b.subs[gameID]) == 0 {
		delete(b.subs, gameID)
	}
	b.mu.Unlock()
}

// Close ends every subscription to the game by closing its channels.
// Subscribers treat a closed channel as the game being gone.
func (b *Broker) Close(gameID string) {
	b.mu.Lock()
	for ch := range b.subs[gameID] {
		close(ch)
	}
	delete(b.subs, gameID)
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given game. It never
// blocks: a subscriber whose buffer is full misses the event.
func (b *Broker) Publish(gameID string, event GameEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if len(b.subs[gameID]) == 0 {
		return
	}

	data, _ := json.Marshal(event)
	for ch := range b.subs[gameID] {
		select {
		case ch <- data:
		default:
		}
	}
}
