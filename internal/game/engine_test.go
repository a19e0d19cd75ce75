package game

import (
	"encoding/json"
	"errors"
	"testing"
)

// scriptedRoller returns faces in order, cycling when exhausted.
type scriptedRoller struct {
	faces []int
	i     int
}

func (s *scriptedRoller) Intn(n int) int {
	f := s.faces[s.i%len(s.faces)]
	s.i++
	return f - 1
}

func fixed(faces ...int) *scriptedRoller { return &scriptedRoller{faces: faces} }

// fillExcept sets every box of p except skip to value.
func fillExcept(p *Player, skip Category, value int) {
	for _, c := range Categories() {
		if c == skip {
			continue
		}
		v := value
		p.ScoreCard.Entries[c] = &v
	}
	p.ScoreCard = RecomputeTotals(p.ScoreCard)
}

func TestNewRollsFirstTurn(t *testing.T) {
	g, err := New("multiplayer", []string{"ann", "  ", "cy"}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if g.ID == "" {
		t.Fatal("expected game id")
	}
	if g.RollsRemaining != 2 || g.RollsUsed != 1 {
		t.Fatalf("rolls = %d remaining / %d used, want 2/1", g.RollsRemaining, g.RollsUsed)
	}
	if g.TurnNumber != 1 || g.CurrentPlayer != 0 || g.Phase() != PhaseRolling {
		t.Fatalf("turn=%d current=%d phase=%s", g.TurnNumber, g.CurrentPlayer, g.Phase())
	}
	for i, v := range g.Dice.Values {
		if v < 1 || v > 6 {
			t.Fatalf("die %d = %d out of range", i, v)
		}
		if g.Dice.Held[i] {
			t.Fatalf("die %d held after first roll", i)
		}
	}
	if !g.Players[0].IsActive || g.Players[1].IsActive || g.Players[2].IsActive {
		t.Fatal("only the first player should be active")
	}
	if g.Players[1].Name != "Player 2" {
		t.Fatalf("blank name = %q, want Player 2", g.Players[1].Name)
	}
	if g.Players[0].ID == g.Players[2].ID {
		t.Fatal("player ids must be unique")
	}
}

func TestNewRequiresPlayers(t *testing.T) {
	if _, err := New("single", nil, nil); !errors.Is(err, ErrNoPlayers) {
		t.Fatalf("err = %v, want ErrNoPlayers", err)
	}
}

func TestRollExhaustsAfterThreeFromFreshTurn(t *testing.T) {
	g := &Game{Players: []Player{{Name: "ann"}}, RollsRemaining: MaxRolls, TurnNumber: 1}
	if g.Phase() != PhaseAwaitingRoll {
		t.Fatalf("phase = %s, want awaiting_roll", g.Phase())
	}
	for i := 0; i < MaxRolls; i++ {
		if err := g.Roll([NumDice]bool{}, nil); err != nil {
			t.Fatalf("roll %d: %v", i+1, err)
		}
	}
	if g.RollsRemaining != 0 || g.Phase() != PhaseMustScore {
		t.Fatalf("remaining=%d phase=%s", g.RollsRemaining, g.Phase())
	}
	err := g.Roll([NumDice]bool{}, nil)
	if !errors.Is(err, ErrIllegalAction) || !errors.Is(err, ErrNoRollsRemaining) {
		t.Fatalf("fourth roll err = %v", err)
	}
}

func TestRollTwiceAfterAutomaticRoll(t *testing.T) {
	g, _ := New("single", []string{"ann"}, nil)
	for i := 0; i < 2; i++ {
		if err := g.Roll([NumDice]bool{}, nil); err != nil {
			t.Fatalf("roll %d: %v", i+1, err)
		}
	}
	if g.RollsUsed != 3 {
		t.Fatalf("rolls used = %d, want 3", g.RollsUsed)
	}
	if err := g.Roll([NumDice]bool{}, nil); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("err = %v, want illegal action", err)
	}
}

func TestRollKeepsHeldDice(t *testing.T) {
	g, _ := New("single", []string{"ann"}, fixed(1, 2, 3, 4, 5))
	held := [NumDice]bool{true, false, true, false, false}
	if err := g.Roll(held, fixed(6)); err != nil {
		t.Fatalf("roll: %v", err)
	}
	want := [NumDice]int{1, 6, 3, 6, 6}
	if g.Dice.Values != want {
		t.Fatalf("values = %v, want %v", g.Dice.Values, want)
	}
	if g.Dice.Held != held {
		t.Fatalf("held = %v, want %v", g.Dice.Held, held)
	}

	// the caller's pattern replaces the old one outright
	if err := g.Roll([NumDice]bool{false, true, false, false, true}, fixed(2)); err != nil {
		t.Fatalf("roll: %v", err)
	}
	want = [NumDice]int{2, 6, 2, 2, 6}
	if g.Dice.Values != want {
		t.Fatalf("values = %v, want %v", g.Dice.Values, want)
	}
}

func TestRollRandomFacesInRange(t *testing.T) {
	for i := 0; i < 200; i++ {
		g, _ := New("single", []string{"ann"}, nil)
		before := g.Dice.Values
		held := [NumDice]bool{i%2 == 0, false, i%3 == 0, true, false}
		if err := g.Roll(held, nil); err != nil {
			t.Fatalf("roll: %v", err)
		}
		for d, v := range g.Dice.Values {
			if held[d] && v != before[d] {
				t.Fatalf("held die %d changed %d -> %d", d, before[d], v)
			}
			if v < 1 || v > 6 {
				t.Fatalf("die %d = %d out of range", d, v)
			}
		}
	}
}

func TestScoreBeforeRoll(t *testing.T) {
	g := &Game{Players: []Player{{Name: "ann"}}, RollsRemaining: MaxRolls, TurnNumber: 1}
	err := g.Score(Chance, nil)
	if !errors.Is(err, ErrIllegalAction) || !errors.Is(err, ErrMustRollFirst) {
		t.Fatalf("err = %v, want must roll first", err)
	}
}

func TestScoreAlreadyScored(t *testing.T) {
	g, _ := New("single", []string{"ann"}, fixed(2, 2, 2, 3, 3))
	if err := g.Score(FullHouse, fixed(2, 2, 2, 3, 3)); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got, _ := g.Players[0].ScoreCard.Get(FullHouse); got != 25 {
		t.Fatalf("full house = %d, want 25", got)
	}
	err := g.Score(FullHouse, nil)
	if !errors.Is(err, ErrIllegalAction) || !errors.Is(err, ErrCategoryScored) {
		t.Fatalf("err = %v, want category already scored", err)
	}
	if got, _ := g.Players[0].ScoreCard.Get(FullHouse); got != 25 {
		t.Fatalf("full house changed to %d", got)
	}
}

func TestScoreAdvancesTurn(t *testing.T) {
	g, _ := New("multiplayer", []string{"ann", "bob"}, fixed(1, 1, 1, 4, 5))
	if err := g.Roll([NumDice]bool{true, true, true, false, false}, fixed(1)); err != nil {
		t.Fatalf("roll: %v", err)
	}
	if err := g.Score(Ones, fixed(3)); err != nil {
		t.Fatalf("score: %v", err)
	}
	if got, _ := g.Players[0].ScoreCard.Get(Ones); got != 5 {
		t.Fatalf("ones = %d, want 5", got)
	}
	if g.Players[0].ScoreCard.GrandTotal != 5 {
		t.Fatalf("grand total = %d, want 5", g.Players[0].ScoreCard.GrandTotal)
	}
	if g.CurrentPlayer != 1 || g.TurnNumber != 1 {
		t.Fatalf("current=%d turn=%d, want 1/1", g.CurrentPlayer, g.TurnNumber)
	}
	if g.RollsRemaining != 2 || g.RollsUsed != 1 || g.Dice.Held != ([NumDice]bool{}) {
		t.Fatalf("new turn not reset: %+v rolls %d/%d", g.Dice, g.RollsRemaining, g.RollsUsed)
	}
	if g.Dice.Values != ([NumDice]int{3, 3, 3, 3, 3}) {
		t.Fatalf("new turn dice = %v", g.Dice.Values)
	}
	if g.Players[0].IsActive || !g.Players[1].IsActive {
		t.Fatal("active flag should follow the current player")
	}

	if err := g.Score(Threes, fixed(4)); err != nil {
		t.Fatalf("score: %v", err)
	}
	if g.CurrentPlayer != 0 || g.TurnNumber != 2 {
		t.Fatalf("current=%d turn=%d, want 0/2", g.CurrentPlayer, g.TurnNumber)
	}
}

func TestGameOverPicksWinner(t *testing.T) {
	cases := []struct {
		name       string
		annFill    int
		bobFill    int
		wantWinner string
	}{
		{"tie goes to first player", 10, 10, "ann"},
		{"higher total wins", 10, 11, "bob"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := New("multiplayer", []string{"ann", "bob"}, fixed(1))
			fillExcept(&g.Players[0], Chance, tc.annFill)
			fillExcept(&g.Players[1], Chance, tc.bobFill)

			if err := g.Score(Chance, fixed(1)); err != nil {
				t.Fatalf("ann score: %v", err)
			}
			if g.GameOver {
				t.Fatal("game over before every card is complete")
			}
			if err := g.Score(Chance, fixed(1)); err != nil {
				t.Fatalf("bob score: %v", err)
			}
			if !g.GameOver || g.Phase() != PhaseGameOver {
				t.Fatal("expected game over")
			}
			if g.Winner == nil || *g.Winner != tc.wantWinner {
				t.Fatalf("winner = %v, want %s", g.Winner, tc.wantWinner)
			}
			if g.CurrentPlayer != 1 {
				t.Fatalf("current player moved after game over: %d", g.CurrentPlayer)
			}
		})
	}
}

func TestGameOverRejectsActions(t *testing.T) {
	g, _ := New("single", []string{"ann"}, fixed(6))
	fillExcept(&g.Players[0], Yahtzee, 6)
	if err := g.Score(Yahtzee, nil); err != nil {
		t.Fatalf("score: %v", err)
	}
	if !g.GameOver || *g.Winner != "ann" {
		t.Fatalf("game over=%v winner=%v", g.GameOver, g.Winner)
	}
	if got := g.Players[0].ScoreCard.GrandTotal; got != 6*12+50 {
		t.Fatalf("grand total = %d", got)
	}
	if err := g.Roll([NumDice]bool{}, nil); !errors.Is(err, ErrGameOver) {
		t.Fatalf("roll err = %v, want game over", err)
	}
	if err := g.Score(Chance, nil); !errors.Is(err, ErrIllegalAction) {
		t.Fatalf("score err = %v, want illegal action", err)
	}
	if len(g.PossibleScores()) != 0 {
		t.Fatal("expected no possible scores after game over")
	}
}

func TestPossibleScores(t *testing.T) {
	fresh := &Game{Players: []Player{{Name: "ann"}}, RollsRemaining: MaxRolls}
	if got := fresh.PossibleScores(); len(got) != 0 {
		t.Fatalf("possible scores before rolling = %v", got)
	}

	g, _ := New("single", []string{"ann"}, fixed(2, 3, 4, 5, 6))
	got := g.PossibleScores()
	if len(got) != NumCategories {
		t.Fatalf("got %d categories, want %d", len(got), NumCategories)
	}
	if got[LargeStraight] != 40 || got[SmallStraight] != 30 || got[Chance] != 20 || got[Yahtzee] != 0 {
		t.Fatalf("unexpected preview %v", got)
	}

	v := 0
	g.Players[0].ScoreCard.Entries[LargeStraight] = &v
	got = g.PossibleScores()
	if _, ok := got[LargeStraight]; ok {
		t.Fatal("scored category must not be offered")
	}
	if len(got) != NumCategories-1 {
		t.Fatalf("got %d categories, want %d", len(got), NumCategories-1)
	}
}

func TestScoreCardJSONRecomputesTotals(t *testing.T) {
	in := []byte(`{"ones":3,"sixes":null,"chance":20,"grand_total":999,"upper_bonus":35}`)
	var card ScoreCard
	if err := json.Unmarshal(in, &card); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if card.GrandTotal != 23 || card.UpperBonus != 0 {
		t.Fatalf("totals not recomputed: grand=%d bonus=%d", card.GrandTotal, card.UpperBonus)
	}
	if card.IsSet(Sixes) || !card.IsSet(Ones) {
		t.Fatal("unexpected set/unset state")
	}

	out, err := json.Marshal(card)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if v, ok := raw["yahtzee"]; !ok || v != nil {
		t.Fatalf("unset box should encode as null, got %v (present=%v)", v, ok)
	}
	if raw["grand_total"] != float64(23) {
		t.Fatalf("grand_total = %v", raw["grand_total"])
	}
}
