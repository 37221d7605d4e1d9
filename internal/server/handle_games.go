package server

import (
	"errors"
	"net/http"

	"github.com/playperu/citydistance/internal/game"
	"github.com/playperu/citydistance/internal/geoquiz"
)

// Intent is one player action. Pair picks by index into the game's pairs;
// Cities picks by the two city names instead.
type Intent struct {
	Type   string   `json:"type"`
	Pair   *int     `json:"pair,omitempty"`
	Cities []string `json:"cities,omitempty"`
}

// SelectRequest is the body of the nearest/farthest endpoints.
type SelectRequest struct {
	Pair   *int     `json:"pair,omitempty"`
	Cities []string `json:"cities,omitempty"`
}

const (
	intentStart    = "start"
	intentReset    = "reset"
	intentNearest  = "nearest"
	intentFarthest = "farthest"
	intentSubmit   = "submit"
)

var (
	errUnknownIntent = errors.New("unknown intent type")
	errNoPair        = errors.New("pair index or two city names required")
)

// apply runs one intent against m and returns the resulting snapshot.
func apply(m *game.Machine, in Intent) (game.Snapshot, error) {
	switch in.Type {
	case intentStart:
		return m.Start(), nil
	case intentReset:
		return m.Reset(), nil
	case intentNearest, intentFarthest:
		i, err := resolvePair(m.Snapshot(), in)
		if err != nil {
			return m.Snapshot(), err
		}
		if in.Type == intentNearest {
			return m.SelectNearest(i)
		}
		return m.SelectFarthest(i)
	case intentSubmit:
		return m.Submit()
	default:
		return m.Snapshot(), errUnknownIntent
	}
}

func resolvePair(s game.Snapshot, in Intent) (int, error) {
	if in.Pair != nil {
		return *in.Pair, nil
	}
	if len(in.Cities) != 2 {
		return 0, errNoPair
	}
	i, ok := s.FindPair(in.Cities[0], in.Cities[1])
	if !ok {
		return 0, geoquiz.ErrPairNotInSession
	}
	return i, nil
}

// intentStatus maps an intent error to an HTTP status.
func intentStatus(err error) int {
	switch {
	case errors.Is(err, geoquiz.ErrGuessIncomplete):
		return http.StatusConflict
	case errors.Is(err, geoquiz.ErrPairNotInSession),
		errors.Is(err, errNoPair),
		errors.Is(err, errUnknownIntent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleCreateGame(games *Games, p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, snap := games.Create()
		writeJSON(w, http.StatusCreated, p.game(id, snap))
	}
}

func handleGetGame(p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		g := gameFrom(r)
		writeJSON(w, http.StatusOK, p.game(g.id, g.machine.Snapshot()))
	}
}

func handleDeleteGame(games *Games) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games.Delete(gameFrom(r).id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleSelect(kind string, p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SelectRequest
		if err := readJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		runIntent(w, r, p, Intent{Type: kind, Pair: req.Pair, Cities: req.Cities})
	}
}

func handleIntent(kind string, p presenter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runIntent(w, r, p, Intent{Type: kind})
	}
}

func runIntent(w http.ResponseWriter, r *http.Request, p presenter, in Intent) {
	g := gameFrom(r)
	snap, err := apply(g.machine, in)
	if err != nil {
		writeError(w, intentStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, p.game(g.id, snap))
}
