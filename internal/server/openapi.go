package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/citydistance/internal/handler/health"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type distanceQuery struct {
	From string `query:"from" required:"true" description:"City name."`
	To   string `query:"to" required:"true" description:"City name."`
}

type gamePath struct {
	GameID string `path:"gameID"`
}

type selectInput struct {
	gamePath
	SelectRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "City Distance Quiz API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Pick the nearest and the farthest pair among randomly drawn cities.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]health.Result{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/cities
	listCities, _ := r.NewOperationContext(http.MethodGet, "/api/cities")
	listCities.SetSummary("List cities")
	listCities.SetDescription("Returns the reference catalog with coordinates and geohashes.")
	listCities.AddRespStructure([]CityInfo{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listCities)

	// GET /api/cities/extremes
	getExtremes, _ := r.NewOperationContext(http.MethodGet, "/api/cities/extremes")
	getExtremes.SetSummary("Catalog extremes")
	getExtremes.SetDescription("Nearest and farthest pair over the whole catalog.")
	getExtremes.AddRespStructure(ExtremesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getExtremes)

	// GET /api/distance
	getDistance, _ := r.NewOperationContext(http.MethodGet, "/api/distance")
	getDistance.SetSummary("Distance between two cities")
	getDistance.SetDescription("Great-circle distance in kilometers, rounded to 0.1 km.")
	getDistance.AddReqStructure(distanceQuery{})
	getDistance.AddRespStructure(DistanceResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getDistance.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	getDistance.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getDistance)

	// POST /api/games
	createGame, _ := r.NewOperationContext(http.MethodPost, "/api/games")
	createGame.SetSummary("Start a game")
	createGame.SetDescription("Draws a new set of cities and returns the game.")
	createGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	_ = r.AddOperation(createGame)

	// GET /api/games/{gameID}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}")
	getGame.SetSummary("Get game")
	getGame.SetDescription("Returns the current snapshot of a game.")
	getGame.AddReqStructure(gamePath{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// DELETE /api/games/{gameID}
	deleteGame, _ := r.NewOperationContext(http.MethodDelete, "/api/games/{gameID}")
	deleteGame.SetSummary("Discard game")
	deleteGame.AddReqStructure(gamePath{})
	deleteGame.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	deleteGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteGame)

	for _, slot := range []string{"nearest", "farthest"} {
		op, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/"+slot)
		op.SetSummary("Guess the " + slot + " pair")
		op.SetDescription("Pick by pair index or by the two city names. Ignored once the game is judged.")
		op.AddReqStructure(selectInput{})
		op.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		op.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		_ = r.AddOperation(op)
	}

	// POST /api/games/{gameID}/submit
	submit, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/submit")
	submit.SetSummary("Submit guesses")
	submit.SetDescription("Judges both guesses. 409 while a guess is missing; the game is left unchanged.")
	submit.AddReqStructure(gamePath{})
	submit.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	submit.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(submit)

	// POST /api/games/{gameID}/reset
	reset, _ := r.NewOperationContext(http.MethodPost, "/api/games/{gameID}/reset")
	reset.SetSummary("Reset game")
	reset.SetDescription("Draws new cities and clears guesses, result and log.")
	reset.AddReqStructure(gamePath{})
	reset.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	reset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(reset)

	// GET /api/games/{gameID}/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/games/{gameID}/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream with a snapshot after every transition.")
	getEvents.AddReqStructure(gamePath{})
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /ws/games/{gameID}
	getWS, _ := r.NewOperationContext(http.MethodGet, "/ws/games/{gameID}")
	getWS.SetSummary("WebSocket intents")
	getWS.SetDescription("Send {type, pair|cities} intents, receive a snapshot per intent.")
	getWS.AddReqStructure(gamePath{})
	getWS.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getWS)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
