package highscore

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"
)

const scoresBucket = "high_scores"

// BoltStore keeps high scores as JSON values keyed by id. Queries scan the
// bucket, which stays small for a leaderboard.
type BoltStore struct{ db *bbolt.DB }

// NewBoltStore wraps an open BoltDB handle and creates the bucket.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(scoresBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create high score bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Insert(ctx context.Context, hs HighScore) error {
	payload, err := json.Marshal(hs)
	if err != nil {
		return fmt.Errorf("encode high score: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(scoresBucket)).Put([]byte(hs.ID), payload)
	})
}

func (s *BoltStore) all(ctx context.Context) ([]HighScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []HighScore
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(scoresBucket)).ForEach(func(_, v []byte) error {
			var hs HighScore
			if err := json.Unmarshal(v, &hs); err != nil {
				return fmt.Errorf("decode high score: %w", err)
			}
			out = append(out, hs)
			return nil
		})
	})
	return out, err
}

func (s *BoltStore) Top(ctx context.Context, limit int) ([]HighScore, error) {
	out, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	sortBoard(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *BoltStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(scoresBucket)).ForEach(func(_, _ []byte) error {
			n++
			return nil
		})
	})
	return n, err
}

func (s *BoltStore) CountAbove(ctx context.Context, score int) (int, error) {
	out, err := s.all(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, hs := range out {
		if hs.Score > score {
			n++
		}
	}
	return n, nil
}
