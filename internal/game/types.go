// internal/game/types.go
//
// Core type definitions for the Yahtzee game engine.
// Defines:
//   - Category: the 13 fixed scorecard boxes.
//   - Dice: five faces plus the caller's hold pattern.
//   - ScoreCard: optional score per category and the derived totals.
//   - Player / Game: the persisted game record.

package game

import (
	"encoding/json"
	"fmt"
	"time"
)

// NumDice is the number of dice in play.
const NumDice = 5

// Category identifies one scorecard box.
type Category int

const (
	Ones Category = iota
	Twos
	Threes
	Fours
	Fives
	Sixes
	ThreeOfAKind
	FourOfAKind
	FullHouse
	SmallStraight
	LargeStraight
	Yahtzee
	Chance

	// NumCategories is the number of boxes on a scorecard.
	NumCategories = int(Chance) + 1
)

var categoryNames = [NumCategories]string{
	"ones", "twos", "threes", "fours", "fives", "sixes",
	"three_of_a_kind", "four_of_a_kind", "full_house",
	"small_straight", "large_straight", "yahtzee", "chance",
}

// Categories lists every category in scorecard order.
func Categories() []Category {
	out := make([]Category, NumCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// Valid reports whether c is one of the 13 categories.
func (c Category) Valid() bool { return c >= Ones && c <= Chance }

// Upper reports whether c belongs to the upper section (ones..sixes).
func (c Category) Upper() bool { return c >= Ones && c <= Sixes }

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a snake_case name ("full_house") to its Category.
func ParseCategory(name string) (Category, bool) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), true
		}
	}
	return 0, false
}

// MarshalText lets Category serve as a JSON object key.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(categoryNames[c]), nil
}

func (c *Category) UnmarshalText(b []byte) error {
	parsed, ok := ParseCategory(string(b))
	if !ok {
		return fmt.Errorf("unknown category %q", string(b))
	}
	*c = parsed
	return nil
}

// Dice holds the shared dice for the current turn.
// Held is whatever the caller sent with the last roll.
type Dice struct {
	Values [NumDice]int  `json:"values"`
	Held   [NumDice]bool `json:"held"`
}

// ScoreCard keeps one optional score per category.
// A nil entry means the box has not been scored yet.
// The total fields are derived; see RecomputeTotals.
type ScoreCard struct {
	Entries [NumCategories]*int

	UpperSubtotal int
	UpperBonus    int
	UpperTotal    int
	LowerTotal    int
	GrandTotal    int
}

// Get returns the score in box c and whether it has been set.
func (s *ScoreCard) Get(c Category) (int, bool) {
	if !c.Valid() || s.Entries[c] == nil {
		return 0, false
	}
	return *s.Entries[c], true
}

// IsSet reports whether box c already holds a score.
func (s *ScoreCard) IsSet(c Category) bool {
	_, ok := s.Get(c)
	return ok
}

// Complete reports whether all 13 boxes are set.
func (s *ScoreCard) Complete() bool {
	for _, e := range s.Entries {
		if e == nil {
			return false
		}
	}
	return true
}

// set writes a score into an empty box and refreshes the totals.
func (s *ScoreCard) set(c Category, v int) error {
	if !c.Valid() {
		return fmt.Errorf("invalid category %d", int(c))
	}
	if s.Entries[c] != nil {
		return ErrCategoryScored
	}
	s.Entries[c] = &v
	*s = RecomputeTotals(*s)
	return nil
}

// MarshalJSON renders the card as a flat object: one key per category
// (null when unset) plus the totals.
func (s ScoreCard) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, NumCategories+5)
	for i, e := range s.Entries {
		out[categoryNames[i]] = e
	}
	out["upper_subtotal"] = s.UpperSubtotal
	out["upper_bonus"] = s.UpperBonus
	out["upper_total"] = s.UpperTotal
	out["lower_total"] = s.LowerTotal
	out["grand_total"] = s.GrandTotal
	return json.Marshal(out)
}

// UnmarshalJSON reads the category boxes and recomputes the totals,
// so stored totals are never trusted.
func (s *ScoreCard) UnmarshalJSON(b []byte) error {
	var raw map[string]*int
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decode scorecard: %w", err)
	}
	var card ScoreCard
	for i, name := range categoryNames {
		card.Entries[i] = raw[name]
	}
	*s = RecomputeTotals(card)
	return nil
}

// Player is one seat at the table.
type Player struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ScoreCard ScoreCard `json:"scorecard"`
	IsActive  bool      `json:"is_active"` // display hint; Game.CurrentPlayer is authoritative
}

// Phase is the turn state derived from the roll counters.
type Phase string

const (
	PhaseAwaitingRoll Phase = "awaiting_roll"
	PhaseRolling      Phase = "rolling"
	PhaseMustScore    Phase = "must_score"
	PhaseGameOver     Phase = "game_over"
)

// Game is the full persisted record of one game.
type Game struct {
	ID             string    `json:"id"`
	Players        []Player  `json:"players"`
	CurrentPlayer  int       `json:"current_player"`
	Dice           Dice      `json:"dice"`
	RollsRemaining int       `json:"rolls_remaining"`
	RollsUsed      int       `json:"rolls_used"`
	TurnNumber     int       `json:"turn_number"`
	Mode           string    `json:"game_mode"`
	GameOver       bool      `json:"game_over"`
	Winner         *string   `json:"winner"`
	CreatedAt      time.Time `json:"created_at"`
}

// gameJSON adds the derived phase to the wire form.
type gameJSON struct {
	*gameAlias
	Phase Phase `json:"phase"`
}

type gameAlias Game

func (g Game) MarshalJSON() ([]byte, error) {
	return json.Marshal(gameJSON{gameAlias: (*gameAlias)(&g), Phase: g.Phase()})
}

// Clone returns a copy that shares no mutable state with g.
func (g *Game) Clone() *Game {
	cp := *g
	cp.Players = make([]Player, len(g.Players))
	copy(cp.Players, g.Players)
	if g.Winner != nil {
		w := *g.Winner
		cp.Winner = &w
	}
	return &cp
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player {
	return &g.Players[g.CurrentPlayer]
}
