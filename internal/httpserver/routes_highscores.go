// internal/httpserver/routes_highscores.go
//
// Leaderboard routes under /api/high-scores:
//   - POST /api/high-scores               → store a new entry
//   - GET  /api/high-scores               → top 10 by score
//   - GET  /api/high-scores/check/{score} → would this score make the board?

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/yahtzee/internal/highscore"
)

// mountHighScores registers all /high-scores routes on r.
func (s *Server) mountHighScores(r chi.Router) {
	r.Route("/high-scores", func(r chi.Router) {
		r.Post("/", s.handleCreateHighScore)
		r.Get("/", s.handleListHighScores)
		r.Get("/check/{score}", s.handleCheckHighScore)
	})
}

// createHighScoreReq is the payload for POST /api/high-scores.
type createHighScoreReq struct {
	PlayerName string `json:"player_name"`
	Score      int    `json:"score"`
	GameMode   string `json:"game_mode"`
}

func (s *Server) handleCreateHighScore(w http.ResponseWriter, r *http.Request) {
	var req createHighScoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	hs, err := highscore.New(req.PlayerName, req.Score, req.GameMode)
	if err != nil {
		if errors.Is(err, highscore.ErrInvalid) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	if err := s.scores.Insert(r.Context(), hs); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("insert high score")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Info().
		Str("player", hs.PlayerName).
		Int("score", hs.Score).
		Str("mode", hs.GameMode).
		Msg("high score stored")
	writeJSON(w, http.StatusOK, hs)
}

func (s *Server) handleListHighScores(w http.ResponseWriter, r *http.Request) {
	top, err := s.scores.Top(r.Context(), highscore.BoardSize)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("list high scores")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	if top == nil {
		top = []highscore.HighScore{}
	}
	writeJSON(w, http.StatusOK, top)
}

func (s *Server) handleCheckHighScore(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(chi.URLParam(r, "score"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "score must be an integer")
		return
	}
	q, err := highscore.Check(r.Context(), s.scores, score)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("check high score")
		writeError(w, http.StatusInternalServerError, "load_failed")
		return
	}
	writeJSON(w, http.StatusOK, q)
}
