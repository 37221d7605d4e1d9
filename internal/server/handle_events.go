package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// handleEvents streams a game's snapshots as Server-Sent Events. The current
// snapshot is sent first, then one event per transition. A "deleted" event
// ends the stream when the game is discarded or evicted. An open stream keeps
// the game alive.
func handleEvents(broker *Broker, games *Games, p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFrom(r)

		flusher, ok := w.(http.Flusher)
		if !ok {
			writeError(w, http.StatusInternalServerError, "streaming not supported")
			return
		}

		ch := broker.Subscribe(g.id)
		defer broker.Unsubscribe(g.id, ch)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")

		initial, _ := json.Marshal(GameEvent{Type: "snapshot", Game: p.game(g.id, g.machine.Snapshot())})
		fmt.Fprintf(w, "event: state\ndata: %s\n\n", initial)
		flusher.Flush()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case <-r.Context().Done():
				return
			case data, ok := <-ch:
				if !ok {
					gone, _ := json.Marshal(GameEvent{Type: "deleted", Game: GameResponse{ID: g.id}})
					fmt.Fprintf(w, "event: deleted\ndata: %s\n\n", gone)
					flusher.Flush()
					return
				}
				fmt.Fprintf(w, "event: state\ndata: %s\n\n", data)
				flusher.Flush()
			case <-ping.C:
				games.Touch(g.id)
				fmt.Fprintf(w, ": ping\n\n")
				flusher.Flush()
			}
		}
	}
}
