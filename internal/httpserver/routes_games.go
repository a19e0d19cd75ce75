// internal/httpserver/routes_games.go
//
// Game endpoints under /api/games:
//   - POST /api/games                          → create a game (first roll already made)
//   - GET  /api/games/{id}                     → fetch the game record
//   - POST /api/games/{id}/roll                → roll the dice not held
//   - POST /api/games/{id}/score               → score a category, advance the turn
//   - GET  /api/games/{id}/possible-scores     → preview scores for open categories
//
// Each action is load → engine → replace. Nothing is cached between requests.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/yahtzee/internal/game"
)

// createGameReq is the payload for POST /api/games.
type createGameReq struct {
	GameMode    string   `json:"game_mode"`   // "single" | "multiplayer"
	PlayerNames []string `json:"player_names"` // turn order
}

// handleCreateGame creates a game, inserts it and returns the full record.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	g, err := game.New(req.GameMode, req.PlayerNames, s.roller)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.games.Insert(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gameId", g.ID).Msg("insert game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	hlog.FromRequest(r).Info().
		Str("gameId", g.ID).
		Str("mode", g.Mode).
		Int("players", len(g.Players)).
		Msg("game created")
	writeJSON(w, http.StatusOK, g)
}

// handleGetGame returns the stored record.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// rollReq is the payload for POST /api/games/{id}/roll.
type rollReq struct {
	GameID   string `json:"game_id"` // optional; must match the path when sent
	HeldDice []bool `json:"held_dice"`
}

// handleRoll re-rolls the dice not marked held.
func (s *Server) handleRoll(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	var req rollReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID != "" && req.GameID != id {
		writeError(w, http.StatusBadRequest, "game_id does not match path")
		return
	}
	if len(req.HeldDice) != game.NumDice {
		writeError(w, http.StatusBadRequest, "held_dice must have 5 entries")
		return
	}
	var held [game.NumDice]bool
	copy(held[:], req.HeldDice)

	s.apply(w, r, id, func(g *game.Game) error { return g.Roll(held, s.roller) })
}

// scoreReq is the payload for POST /api/games/{id}/score.
type scoreReq struct {
	GameID   string `json:"game_id"`
	Category string `json:"category"`
}

// handleScore scores one category for the current player.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.GameID != "" && req.GameID != id {
		writeError(w, http.StatusBadRequest, "game_id does not match path")
		return
	}
	cat, ok := game.ParseCategory(strings.TrimSpace(req.Category))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}

	s.apply(w, r, id, func(g *game.Game) error {
		if err := g.Score(cat, s.roller); err != nil {
			return err
		}
		if g.GameOver {
			hlog.FromRequest(r).Info().Str("gameId", g.ID).Str("winner", *g.Winner).Msg("game over")
		}
		return nil
	})
}

// handlePossibleScores previews the open categories for the current dice.
func (s *Server) handlePossibleScores(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Get(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g.PossibleScores())
}

// apply loads game id, runs action on it and replaces the record.
// Nothing is written when action fails.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, id string, action func(*game.Game) error) {
	g, err := s.games.Get(r.Context(), id)
	if err != nil {
		writeGameError(w, r, err)
		return
	}
	if err := action(g); err != nil {
		writeGameError(w, r, err)
		return
	}
	if err := s.games.Replace(r.Context(), g); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("gameId", id).Msg("replace game")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	writeJSON(w, http.StatusOK, g)
}
