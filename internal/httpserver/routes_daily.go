// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily board.
//   - POST /daily/new → create a session in daily mode
//   - GET  /daily     → today's date key
//
// A daily session draws its truth board from a seed derived from the date,
// salt and board settings, so every player gets the same board per day and
// configuration. Nothing about daily play is stored.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/seton/internal/daily"
	"github.com/robalobadob/seton/internal/game"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/", s.handleDailyInfo)
		r.Post("/new", s.handleDailyNew)
	})
}

// handleDailyInfo reports the date the daily board currently belongs to.
func (s *Server) handleDailyInfo(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(map[string]any{
		"date":   daily.DateKey(s.now()),
		"config": s.cfg.Game.Defaults,
	})
}

// handleDailyNew creates a daily-mode session. Optional body: {"config": {...}}.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	req := newSessionReq{Config: s.cfg.Game.Defaults}
	// an empty body keeps the defaults
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	s.createSession(w, r, game.ModeDaily, req.Config)
}
