// internal/game/engine.go
//
// Turn state machine for a single Yahtzee game.
// Responsibilities:
//   - Create new games with the first turn already rolled.
//   - Validate and apply rolls (at most three per turn, the first automatic).
//   - Score a category for the current player and advance the turn.
//   - Detect game over and pick the winner.
//
// Notes:
//   - Every turn begins with one roll consumed: rolls_remaining=2, rolls_used=1.
//   - The engine mutates *Game in place; persistence is the caller's job.
//   - Winner ties go to the first player in turn order.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxRolls is the number of rolls a turn allows, the automatic one included.
	MaxRolls = 3

	ModeSingle      = "single"
	ModeMultiplayer = "multiplayer"
)

// New constructs a game for the given players and performs the first roll.
// Blank names become "Player N". An empty mode defaults to single or
// multiplayer depending on the number of players.
func New(mode string, names []string, r Roller) (*Game, error) {
	if len(names) == 0 {
		return nil, ErrNoPlayers
	}
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = ModeSingle
		if len(names) > 1 {
			mode = ModeMultiplayer
		}
	}

	players := make([]Player, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			n = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = Player{
			ID:       uuid.NewString(),
			Name:     n,
			IsActive: i == 0,
		}
	}

	g := &Game{
		ID:         uuid.NewString(),
		Players:    players,
		TurnNumber: 1,
		Mode:       mode,
		CreatedAt:  time.Now().UTC(),
	}
	g.startTurn(r)
	return g, nil
}

// Phase reports where the current turn stands.
func (g *Game) Phase() Phase {
	switch {
	case g.GameOver:
		return PhaseGameOver
	case g.RollsUsed == 0:
		return PhaseAwaitingRoll
	case g.RollsRemaining <= 0:
		return PhaseMustScore
	default:
		return PhaseRolling
	}
}

// Roll re-rolls every die not marked in held. held replaces the stored
// hold pattern as-is.
//
// Errors (all match ErrIllegalAction):
//   - ErrGameOver once the game has ended.
//   - ErrNoRollsRemaining after the third roll of a turn.
func (g *Game) Roll(held [NumDice]bool, r Roller) error {
	if g.GameOver {
		return ErrGameOver
	}
	if g.RollsRemaining <= 0 {
		return ErrNoRollsRemaining
	}
	g.Dice.roll(held, r)
	g.RollsRemaining--
	g.RollsUsed++
	return nil
}

// Score writes the current dice into category c for the current player,
// then either ends the game or moves on to the next player's turn.
//
// Errors (all match ErrIllegalAction):
//   - ErrGameOver once the game has ended.
//   - ErrMustRollFirst if nothing has been rolled this turn.
//   - ErrCategoryScored if the box is already filled.
func (g *Game) Score(c Category, r Roller) error {
	if g.GameOver {
		return ErrGameOver
	}
	if g.RollsUsed == 0 {
		return ErrMustRollFirst
	}
	if !c.Valid() {
		return fmt.Errorf("%w: unknown category %d", ErrIllegalAction, int(c))
	}
	p := g.Current()
	if err := p.ScoreCard.set(c, PossibleScore(g.Dice.Values, c)); err != nil {
		return err
	}

	if g.allComplete() {
		g.finish()
		return nil
	}
	g.advance(r)
	return nil
}

// PossibleScores previews every box the current player can still fill.
// Empty before the first roll of a turn and after the game ends.
func (g *Game) PossibleScores() map[Category]int {
	out := make(map[Category]int, NumCategories)
	if g.GameOver || g.RollsUsed == 0 || len(g.Players) == 0 {
		return out
	}
	card := &g.Current().ScoreCard
	for _, c := range Categories() {
		if !card.IsSet(c) {
			out[c] = PossibleScore(g.Dice.Values, c)
		}
	}
	return out
}

// startTurn performs the automatic first roll of a turn.
func (g *Game) startTurn(r Roller) {
	g.Dice.rollAll(r)
	g.RollsRemaining = MaxRolls - 1
	g.RollsUsed = 1
}

// advance hands the dice to the next player, bumping the turn number when
// play wraps back to the first seat.
func (g *Game) advance(r Roller) {
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
	if g.CurrentPlayer == 0 {
		g.TurnNumber++
	}
	for i := range g.Players {
		g.Players[i].IsActive = i == g.CurrentPlayer
	}
	g.startTurn(r)
}

func (g *Game) allComplete() bool {
	for i := range g.Players {
		if !g.Players[i].ScoreCard.Complete() {
			return false
		}
	}
	return true
}

// finish marks the game over and records the winner.
func (g *Game) finish() {
	g.GameOver = true
	best := 0
	for i := range g.Players {
		if g.Players[i].ScoreCard.GrandTotal > g.Players[best].ScoreCard.GrandTotal {
			best = i
		}
	}
	name := g.Players[best].Name
	g.Winner = &name
	for i := range g.Players {
		g.Players[i].IsActive = false
	}
}
