// internal/httpserver/server.go
//
// HTTP server wiring for the memory game.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, request log, panic recovery,
//     timeouts, JSON, CORS).
//   - Public endpoints: "/", "/health", POST /session, POST /daily/new.
//   - Session endpoints (require the session token):
//     GET /session/{id}, POST /session/{id}/input, DELETE /session/{id},
//     GET /session/{id}/ws.
//
// Notes:
//   - The server holds no game rules. It decodes input events, hands them to
//     game.Session.HandleInput inside store.Update and returns a snapshot.
//   - Session tokens are HS256 JWTs carrying the session ID ("sid").

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/seton/internal/config"
	"github.com/robalobadob/seton/internal/game"
	"github.com/robalobadob/seton/internal/store"
)

// Server bundles router, session store and configuration.
type Server struct {
	r        *chi.Mux
	store    store.Store
	cfg      *config.Config
	upgrader websocket.Upgrader
	now      func() time.Time
	seed     int64 // fixed board seed for new sessions; 0 draws from the clock
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, cfg *config.Config) *Server {
	s := &Server{r: chi.NewRouter(), store: st, cfg: cfg, now: time.Now}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)   // one log line per request
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(s.cors)          // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"seton","endpoints":["/health","POST /session","POST /daily/new","/session/{id}"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.store.Len()})
		})

		r.Post("/session", s.handleNewSession)
		s.mountDaily(r)

		r.Route("/session/{id}", func(r chi.Router) {
			r.Use(s.requireSession())
			r.Get("/", s.handleSnapshot)
			r.Post("/input", s.handleInput)
			r.Delete("/", s.handleDelete)
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			body, _ := json.Marshal(map[string]string{"error": "not_found", "path": r.URL.Path})
			http.Error(w, string(body), http.StatusNotFound)
		})
	})

	// The socket outlives any request timeout.
	s.r.With(s.requireSession()).Get("/session/{id}/ws", s.handleSocket)

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down,
// giving in-flight requests up to shutdownGrace to finish.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := hs.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const shutdownGrace = 5 * time.Second

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// SweepIdle drops sessions idle for longer than the configured limit until
// ctx is cancelled.
func (s *Server) SweepIdle(ctx context.Context) {
	t := time.NewTicker(s.cfg.SweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.store.Sweep(ctx, s.now().Add(-s.cfg.SessionIdle)); n > 0 {
				log.Info().Int("removed", n).Int("live", s.store.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin accepts same-host clients (no Origin header) and the
// configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || origin == s.cfg.ClientOrigin
}

// ------------------------------ SESSION ------------------------------------

// newSessionReq/Res payloads for POST /session.
type newSessionReq struct {
	Mode   string      `json:"mode"`   // "normal" | "daily"
	Config game.Config `json:"config"` // omitted fields keep the server defaults
}
type newSessionRes struct {
	SessionID string        `json:"sessionId"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Snapshot  game.Snapshot `json:"snapshot"`
}

// handleNewSession creates a session in the Setting state and returns its
// token and first snapshot.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	req := newSessionReq{Config: s.cfg.Game.Defaults}
	// an empty body keeps the defaults
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		http.Error(w, `{"error":"bad_mode"}`, http.StatusBadRequest)
		return
	}
	s.createSession(w, r, mode, req.Config)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request, mode game.Mode, cfg game.Config) {
	id := uuid.NewString()
	opts := []game.Option{
		game.WithLimits(s.cfg.Game.Limits),
		game.WithSeed(s.seed),
		game.WithClock(s.now),
		game.WithLogger(log.Logger),
	}
	if mode == game.ModeDaily {
		opts = append(opts, game.WithDaily(s.cfg.DailySalt))
	}
	sess := game.New(id, cfg, opts...)
	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}

	tok, exp, err := s.signToken(id)
	if err != nil {
		log.Error().Err(err).Msg("sign session token")
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Info().Str("session", id).Str("mode", string(mode)).Msg("session created")

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(newSessionRes{
		SessionID: id,
		Token:     tok,
		ExpiresAt: exp,
		Snapshot:  sess.Snapshot(),
	})
}

// handleSnapshot advances the countdown and returns the session view.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, _, err := s.apply(r.Context(), chi.URLParam(r, "id"), game.Tick{})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// handleInput applies one input event and returns the session view after it.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var msg message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	ev, err := decodeEvent(msg)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}
	snap, _, err := s.apply(r.Context(), chi.URLParam(r, "id"), ev)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(snap)
}

// handleDelete discards a session.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, err)
		return
	}
	s.clearSessionCookie(w)
	_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

// apply runs one event against a session and returns the snapshot after it
// and the state before it.
func (s *Server) apply(ctx context.Context, id string, ev game.Event) (game.Snapshot, game.State, error) {
	var (
		snap   game.Snapshot
		before game.State
	)
	err := s.store.Update(ctx, id, func(sess *game.Session) error {
		before = sess.State()
		sess.HandleInput(ev)
		snap = sess.Snapshot()
		return nil
	})
	return snap, before, err
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return
	}
	log.Error().Err(err).Msg("session store")
	http.Error(w, `{"error":"store_failed"}`, http.StatusInternalServerError)
}
