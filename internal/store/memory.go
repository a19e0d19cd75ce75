// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for development/testing, or when durability is not required.
//
// Characteristics:
//   - Stores *game.Game records keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Hands out clones, so callers must Replace to persist a change.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/yahtzee/internal/game"
)

var (
	// ErrNotFound is returned for unknown game ids.
	ErrNotFound = errors.New("game not found")
	// ErrExists is returned when inserting an id that is already stored.
	ErrExists = errors.New("game already exists")
)

// Store defines the persistence interface for game records.
// Implementations may be backed by memory (this file), SQLite or BoltDB.
type Store interface {
	// Get retrieves a game by ID. Returns ErrNotFound if missing.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Insert stores a new game. Returns ErrExists if the ID is taken.
	Insert(ctx context.Context, g *game.Game) error

	// Replace overwrites an existing game. Returns ErrNotFound if missing.
	Replace(ctx context.Context, g *game.Game) error
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex          // guards games map
	games map[string]*game.Game // keyed by Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*game.Game)}
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *memory) Insert(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; ok {
		return ErrExists
	}
	m.games[g.ID] = g.Clone()
	return nil
}

func (m *memory) Replace(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.games[g.ID]; !ok {
		return ErrNotFound
	}
	m.games[g.ID] = g.Clone()
	return nil
}
