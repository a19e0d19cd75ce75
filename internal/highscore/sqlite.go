package highscore

import (
	"context"
	"database/sql"
	"time"
)

// timeLayout is fixed width so created_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore reads and writes the high_scores table.
type SQLiteStore struct{ db *sql.DB }

func NewSQLiteStore(db *sql.DB) *SQLiteStore { return &SQLiteStore{db: db} }

func (s *SQLiteStore) Insert(ctx context.Context, hs HighScore) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO high_scores (id, player_name, score, game_mode, created_at)
        VALUES (?, ?, ?, ?, ?)`,
		hs.ID, hs.PlayerName, hs.Score, hs.GameMode, hs.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

func (s *SQLiteStore) Top(ctx context.Context, limit int) ([]HighScore, error) {
	if limit <= 0 {
		limit = BoardSize
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, player_name, score, game_mode, created_at
        FROM high_scores
        ORDER BY score DESC, created_at ASC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]HighScore, 0, limit)
	for rows.Next() {
		var hs HighScore
		var created string
		if err := rows.Scan(&hs.ID, &hs.PlayerName, &hs.Score, &hs.GameMode, &created); err != nil {
			return nil, err
		}
		hs.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, hs)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM high_scores`).Scan(&n)
	return n, err
}

func (s *SQLiteStore) CountAbove(ctx context.Context, score int) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM high_scores WHERE score > ?`, score).Scan(&n)
	return n, err
}
