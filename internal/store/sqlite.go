package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/yahtzee/internal/game"
)

// SQLiteStore keeps each game as a JSON document in the games table.
// The schema comes from the embedded migrations (see sqlitedb.Open).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore wraps an open, migrated database handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore { return &SQLiteStore{db: db} }

func (s *SQLiteStore) Get(ctx context.Context, id string) (*game.Game, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM games WHERE id=?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select game %s: %w", id, err)
	}
	var g game.Game
	if err := json.Unmarshal([]byte(doc), &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}

func (s *SQLiteStore) Insert(ctx context.Context, g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games (id, doc, game_over, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?)`,
		g.ID, string(doc), g.GameOver, g.CreatedAt.UTC().Format(time.RFC3339), now,
	)
	if err != nil {
		return fmt.Errorf("insert game %s: %w", g.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrExists
	}
	return nil
}

func (s *SQLiteStore) Replace(ctx context.Context, g *game.Game) error {
	doc, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET doc=?, game_over=?, updated_at=? WHERE id=?`,
		string(doc), g.GameOver, time.Now().UTC().Format(time.RFC3339), g.ID,
	)
	if err != nil {
		return fmt.Errorf("replace game %s: %w", g.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("replace game %s: %w", g.ID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
