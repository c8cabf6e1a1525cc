package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"risk-tracker/internal/domain"
	"risk-tracker/internal/service"
	"strconv"

	"github.com/rs/zerolog"
)

type TurnServer struct {
	turnSvc *service.TurnService
	logger  zerolog.Logger
}

func NewTurnServer(turnSvc *service.TurnService, logger zerolog.Logger) *TurnServer {
	return &TurnServer{turnSvc: turnSvc, logger: logger}
}

func (s *TurnServer) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.health)
	mux.HandleFunc("GET /turns", s.listTurns(false))
	mux.HandleFunc("GET /turns/all", s.listTurns(true))
	mux.HandleFunc("GET /turns/latest", s.latest)
	mux.HandleFunc("GET /roll", s.roll)
	mux.HandleFunc("GET /overview", s.overview)
	mux.HandleFunc("GET /players/{id}/turns", s.playerTurns)
	return mux
}

func (s *TurnServer) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *TurnServer) listTurns(all bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		turns, err := s.turnSvc.Turns(r.Context(), all)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, r, http.StatusOK, toTurnInfoResponses(turns))
	}
}

func (s *TurnServer) latest(w http.ResponseWriter, r *http.Request) {
	latest, err := s.turnSvc.Latest(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toLatestResponse(latest))
}

func (s *TurnServer) roll(w http.ResponseWriter, r *http.Request) {
	at, err := parseTurnQuery(r)
	if err != nil {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	used, roll, err := s.turnSvc.Roll(r.Context(), at)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toRollResponse(used, roll))
}

func (s *TurnServer) overview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.turnSvc.Overview(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toOverviewResponse(overview))
}

func (s *TurnServer) playerTurns(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || userID <= 0 {
		s.writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: "player id must be a positive integer"})
		return
	}

	turns, err := s.turnSvc.PlayerTurns(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, toPastTurnResponses(turns))
}

// parseTurnQuery reads season and day from the query string. Both absent
// means "latest"; supplying only one is rejected.
func parseTurnQuery(r *http.Request) (*domain.Latest, error) {
	q := r.URL.Query()
	rawSeason, rawDay := q.Get("season"), q.Get("day")
	if rawSeason == "" && rawDay == "" {
		return nil, nil
	}
	if rawSeason == "" || rawDay == "" {
		return nil, errors.New("season and day must be given together")
	}

	season, err := strconv.Atoi(rawSeason)
	if err != nil {
		return nil, errors.New("season must be an integer")
	}
	day, err := strconv.Atoi(rawDay)
	if err != nil {
		return nil, errors.New("day must be an integer")
	}
	return &domain.Latest{Season: season, Day: day}, nil
}

func (s *TurnServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, r, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		s.requestLogger(r).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.writeJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (s *TurnServer) writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.requestLogger(r).Warn().Err(err).Msg("failed to encode response")
	}
}

// requestLogger prefers the request-scoped logger installed by middleware.
func (s *TurnServer) requestLogger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &s.logger
}
