package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playperu/citydistance/internal/catalog"
	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/game"
)

// Deps are the core collaborators the HTTP layer drives.
type Deps struct {
	Catalog          *catalog.Catalog
	Picker           game.CityPicker
	Engine           *distance.Engine
	CityCount        int
	GeohashPrecision int
	SPADir           string
}

type Server struct {
	srv    *http.Server
	logger *slog.Logger
	games  *Games
}

// New wires the router. mount, if non-nil, can attach extra sub-routers
// (health checks) before the SPA fallback is registered.
func New(addr string, logger *slog.Logger, deps Deps, mount func(r chi.Router)) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(newStructuredLogger(logger))
	r.Use(middleware.Recoverer)

	broker := NewBroker()
	p := presenter{catalog: deps.Catalog, precision: deps.GeohashPrecision}

	games := NewGames(func(id string) *game.Machine {
		return game.New(deps.Picker, deps.Engine,
			game.WithCityCount(deps.CityCount),
			game.WithLogger(logger.With("game_id", id)),
			game.WithObserver(func(s game.Snapshot) {
				broker.Publish(id, GameEvent{Type: "transition", Game: p.game(id, s)})
			}),
		)
	}, broker.Close)

	if mount != nil {
		mount(r)
	}
	addRoutes(r, logger, deps, games, broker, p)

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
		games:  games,
	}
}

func (s *Server) Run(_ context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.srv.Addr, err)
	}

	err = s.srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// SweepGames evicts games idle for longer than ttl every interval until ctx
// is done.
func (s *Server) SweepGames(ctx context.Context, interval, ttl time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if ids := s.games.Sweep(ttl); len(ids) > 0 {
				s.logger.Info("evicted idle games", "count", len(ids), "remaining", s.games.Len())
			}
		}
	}
}

func newStructuredLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				logger.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
