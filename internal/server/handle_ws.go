package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// WSReply answers every intent received over the websocket.
type WSReply struct {
	Game  GameResponse `json:"game"`
	Error string       `json:"error,omitempty"`
}

// handleWS accepts intents as JSON messages and replies with the resulting
// snapshot. The current snapshot is sent on connect. Every intent keeps the
// game alive; once the game is gone the socket is closed.
func handleWS(logger *slog.Logger, games *Games, p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFrom(r)

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true,
		})
		if err != nil {
			logger.Error("websocket accept failed", "error", err)
			return
		}
		defer conn.CloseNow()

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
		defer cancel()

		if err := wsjson.Write(ctx, conn, WSReply{Game: p.game(g.id, g.machine.Snapshot())}); err != nil {
			logger.Debug("websocket write failed", "error", err)
			return
		}

		for {
			var in Intent
			if err := wsjson.Read(ctx, conn, &in); err != nil {
				if websocket.CloseStatus(err) == websocket.StatusNormalClosure || errors.Is(err, context.Canceled) {
					return
				}
				logger.Debug("websocket read ended", "error", err)
				return
			}

			if !games.Touch(g.id) {
				_ = wsjson.Write(ctx, conn, WSReply{Game: GameResponse{ID: g.id}, Error: "game not found"})
				conn.Close(websocket.StatusGoingAway, "game not found")
				return
			}

			snap, err := apply(g.machine, in)
			reply := WSReply{Game: p.game(g.id, snap)}
			if err != nil {
				reply.Error = err.Error()
			}

			if err := wsjson.Write(ctx, conn, reply); err != nil {
				logger.Debug("websocket write failed", "error", err)
				return
			}
		}
	}
}
