package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps, games *Games, broker *Broker, p presenter) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("City Distance Quiz API", "/openapi.json", "/docs"))

	r.Get("/api/cities", handleListCities(p))
	r.Get("/api/cities/extremes", handleExtremes(logger, deps.Engine))
	r.Get("/api/distance", handleDistance(deps.Engine))

	r.Post("/api/games", handleCreateGame(games, p))
	r.Route("/api/games/{gameID}", func(r chi.Router) {
		r.Use(gameMiddleware(games))
		r.Get("/", handleGetGame(p))
		r.Delete("/", handleDeleteGame(games))
		r.Post("/nearest", handleSelect(intentNearest, p))
		r.Post("/farthest", handleSelect(intentFarthest, p))
		r.Post("/submit", handleIntent(intentSubmit, p))
		r.Post("/reset", handleIntent(intentReset, p))
		r.Get("/events", handleEvents(broker, games, p))
	})

	r.With(gameMiddleware(games)).Get("/ws/games/{gameID}", handleWS(logger, games, p))

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
