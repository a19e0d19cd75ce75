// internal/httpserver/server.go
//
// HTTP server wiring for the Yahtzee backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/health", "/api/".
//   - Game endpoints under /api/games: create, fetch, roll, score, possible scores.
//   - High score endpoints: mounted under /api/high-scores (routes_highscores.go).
//
// Notes:
//   - Every game action loads the record, applies it through the game engine and
//     replaces the record as a whole (last write wins).
//   - store.ErrNotFound maps to 404, game.ErrIllegalAction to 400.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/yahtzee/internal/game"
	"github.com/robalobadob/yahtzee/internal/highscore"
	"github.com/robalobadob/yahtzee/internal/store"
)

// Server bundles the router with the game and high score stores.
type Server struct {
	r      *chi.Mux
	games  store.Store
	scores highscore.Store
	roller game.Roller
}

// Options tunes the middleware stack.
type Options struct {
	ClientOrigin   string        // CORS origin; "*" allows any
	RequestTimeout time.Duration // 0 means 10s
	Roller         game.Roller   // nil means game.DefaultRoller
	Logger         *zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(games store.Store, scores highscore.Store, opts Options) *Server {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "*"
	}
	if opts.Roller == nil {
		opts.Roller = game.DefaultRoller
	}
	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Server{r: chi.NewRouter(), games: games, scores: scores, roller: opts.Roller}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                     // add X-Request-ID
	s.r.Use(chimw.RealIP)                        // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(logger))             // request-scoped logger
	s.r.Use(requestIDField)                      // correlate log lines
	s.r.Use(accessLog)                           // one line per request
	s.r.Use(chimw.Recoverer)                     // recover from panics
	s.r.Use(chimw.Timeout(opts.RequestTimeout))  // bound handler time
	s.r.Use(jsonContentType)                     // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/api", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Yahtzee Game API"})
		})
		r.Route("/games", func(r chi.Router) {
			r.Post("/", s.handleCreateGame)
			r.Get("/{gameID}", s.handleGetGame)
			r.Post("/{gameID}/roll", s.handleRoll)
			r.Post("/{gameID}/score", s.handleScore)
			r.Get("/{gameID}/possible-scores", s.handlePossibleScores)
		})
		s.mountHighScores(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Handler exposes the router (useful for tests and custom http.Server setups).
func (s *Server) Handler() http.Handler { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows one origin (or any with "*"). Credentials are only
// advertised for a concrete origin, browsers reject them with "*".
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if origin != "*" {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestIDField tags the request logger with chi's request id.
func requestIDField(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per completed request.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Info().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ helpers ------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeGameError maps store and engine errors to status codes.
func writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found")
	case errors.Is(err, game.ErrIllegalAction):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("game request failed")
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}
