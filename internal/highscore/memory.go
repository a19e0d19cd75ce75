package highscore

import (
	"context"
	"sort"
	"sync"
)

type memory struct {
	mu     sync.RWMutex
	scores []HighScore
}

// NewMemoryStore returns a Store that lives for the process lifetime.
func NewMemoryStore() Store { return &memory{} }

func (m *memory) Insert(ctx context.Context, hs HighScore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores = append(m.scores, hs)
	return nil
}

func (m *memory) Top(ctx context.Context, limit int) ([]HighScore, error) {
	m.mu.RLock()
	out := make([]HighScore, len(m.scores))
	copy(out, m.scores)
	m.mu.RUnlock()

	sortBoard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memory) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scores), nil
}

func (m *memory) CountAbove(ctx context.Context, score int) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, hs := range m.scores {
		if hs.Score > score {
			n++
		}
	}
	return n, nil
}

// sortBoard orders by score descending, then oldest first.
func sortBoard(s []HighScore) {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].CreatedAt.Before(s[j].CreatedAt)
	})
}
