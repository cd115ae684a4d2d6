package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/seton/internal/game"
)

// handleSocket upgrades to a WebSocket carrying the same input messages as
// POST /session/{id}/input. Every message is answered with a snapshot frame.
// While the session is memorizing, snapshots are also pushed every PushEvery
// so the client sees the countdown and the switch to solving.
func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		log.Warn().Err(err).Str("session", id).Msg("websocket upgrade")
		return
	}
	defer conn.Close()
	l := log.With().Str("session", id).Logger()
	l.Debug().Msg("socket connected")

	done := make(chan struct{})
	defer close(done)
	incoming := make(chan message)
	readErr := make(chan error, 1)

	// All writes happen on this goroutine; the reader only forwards.
	go func() {
		for {
			var m message
			if err := conn.ReadJSON(&m); err != nil {
				readErr <- err
				return
			}
			select {
			case incoming <- m:
			case <-done:
				return
			}
		}
	}()

	push := func(ev game.Event, onlyMemorizing bool) bool {
		snap, before, err := s.apply(r.Context(), id, ev)
		if err != nil {
			_ = conn.WriteJSON(frame{Type: "error", Contents: map[string]string{"error": "session_gone"}})
			return false
		}
		if onlyMemorizing && before != game.StateMemorizing {
			return true
		}
		if err := conn.WriteJSON(frame{Type: "snapshot", Contents: snap}); err != nil {
			l.Debug().Err(err).Msg("socket write")
			return false
		}
		return true
	}

	if !push(game.Tick{}, false) {
		return
	}
	ticker := time.NewTicker(s.cfg.PushEvery)
	defer ticker.Stop()

	for {
		select {
		case m := <-incoming:
			ev, err := decodeEvent(m)
			if err != nil {
				if werr := conn.WriteJSON(frame{Type: "error", Contents: map[string]string{"error": err.Error()}}); werr != nil {
					return
				}
				continue
			}
			if !push(ev, false) {
				return
			}
		case <-ticker.C:
			if !push(game.Tick{}, true) {
				return
			}
		case err := <-readErr:
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				l.Warn().Err(err).Msg("socket closed")
			} else {
				l.Debug().Msg("socket disconnected")
			}
			return
		case <-r.Context().Done():
			return
		}
	}
}
