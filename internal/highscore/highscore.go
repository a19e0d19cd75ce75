// internal/highscore/highscore.go
//
// High score leaderboard.
// Responsibilities:
//   - HighScore: immutable, append-only leaderboard entry.
//   - New: validate a submission and stamp id/time.
//   - Check: decide whether a score would make the top 10, and at which rank.

package highscore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BoardSize is the number of entries shown on the leaderboard.
const BoardSize = 10

// ErrInvalid is returned by New for unusable submissions.
var ErrInvalid = errors.New("invalid high score")

// HighScore is one leaderboard entry.
type HighScore struct {
	ID         string    `json:"id"`
	PlayerName string    `json:"player_name"`
	Score      int       `json:"score"`
	GameMode   string    `json:"game_mode"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store persists high scores. Entries are never updated or deleted.
type Store interface {
	Insert(ctx context.Context, hs HighScore) error
	// Top returns up to limit entries, score descending, oldest first on ties.
	Top(ctx context.Context, limit int) ([]HighScore, error)
	Count(ctx context.Context) (int, error)
	// CountAbove counts entries with a score strictly greater than score.
	CountAbove(ctx context.Context, score int) (int, error)
}

// New validates a submission and returns the entry to store.
func New(name string, score int, mode string) (HighScore, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return HighScore{}, fmt.Errorf("%w: player name is required", ErrInvalid)
	}
	if score < 0 {
		return HighScore{}, fmt.Errorf("%w: score must not be negative", ErrInvalid)
	}
	mode = strings.TrimSpace(mode)
	if mode == "" {
		mode = "single"
	}
	return HighScore{
		ID:         uuid.NewString(),
		PlayerName: name,
		Score:      score,
		GameMode:   mode,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Qualification is the answer to "would this score make the board?".
// Rank is nil when it would not.
type Qualification struct {
	Qualifies bool `json:"is_high_score"`
	Rank      *int `json:"rank"`
}

// Check reports whether score would enter the leaderboard.
//
//   - Fewer than BoardSize entries: always, at rank count+1.
//   - Otherwise only if score beats the lowest of the top BoardSize,
//     at rank (entries strictly above score)+1.
func Check(ctx context.Context, st Store, score int) (Qualification, error) {
	count, err := st.Count(ctx)
	if err != nil {
		return Qualification{}, fmt.Errorf("count high scores: %w", err)
	}
	if count < BoardSize {
		rank := count + 1
		return Qualification{Qualifies: true, Rank: &rank}, nil
	}

	top, err := st.Top(ctx, BoardSize)
	if err != nil {
		return Qualification{}, fmt.Errorf("load top scores: %w", err)
	}
	if len(top) == 0 || score <= top[len(top)-1].Score {
		return Qualification{}, nil
	}

	above, err := st.CountAbove(ctx, score)
	if err != nil {
		return Qualification{}, fmt.Errorf("count scores above %d: %w", score, err)
	}
	rank := above + 1
	return Qualification{Qualifies: true, Rank: &rank}, nil
}
