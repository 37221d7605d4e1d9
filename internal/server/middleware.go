package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/citydistance/internal/game"
)

type ctxKey int

const ctxKeyGame ctxKey = iota

type gameRef struct {
	id      string
	machine *game.Machine
}

// gameMiddleware resolves {gameID} against the in-memory games.
func gameMiddleware(games *Games) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "gameID")
			m, err := games.Get(id)
			if err != nil {
				writeError(w, http.StatusNotFound, "game not found")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyGame, gameRef{id: id, machine: m})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func gameFrom(r *http.Request) gameRef {
	return r.Context().Value(ctxKeyGame).(gameRef)
}
