package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/citydistance/internal/distance"
	"github.com/playperu/citydistance/internal/geoquiz"
)

func handleListCities(p presenter) http.HandlerFunc {
	cities := p.cities()

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cities)
	}
}

func handleDistance(engine *distance.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		from := strings.TrimSpace(r.URL.Query().Get("from"))
		to := strings.TrimSpace(r.URL.Query().Get("to"))
		if from == "" || to == "" {
			writeError(w, http.StatusBadRequest, "from and to are required")
			return
		}

		d, err := engine.Distance(from, to)
		var unknown *geoquiz.UnknownCityError
		if errors.As(err, &unknown) {
			writeError(w, http.StatusNotFound, unknown.Error())
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, DistanceResponse{
			From:      from,
			To:        to,
			Distance:  d,
			Formatted: distance.Format(d),
		})
	}
}

// handleExtremes serves the nearest and farthest pair over the whole catalog,
// computed once.
func handleExtremes(logger *slog.Logger, engine *distance.Engine) http.HandlerFunc {
	ex, err := engine.CatalogExtremes()
	if err != nil {
		logger.Error("computing catalog extremes", "error", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, ExtremesResponse{
			Nearest:  pairInfo(ex.Nearest),
			Farthest: pairInfo(ex.Farthest),
		})
	}
}
