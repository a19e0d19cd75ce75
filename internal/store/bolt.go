package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/robalobadob/yahtzee/internal/game"
)

const gamesBucket = "games"

// BoltStore keeps each game as a JSON document in a BoltDB bucket.
type BoltStore struct {
	db *bbolt.DB
}

// NewBoltStore wraps an open BoltDB handle and creates the games bucket.
func NewBoltStore(db *bbolt.DB) (*BoltStore, error) {
	err := db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(gamesBucket))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create games bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(ctx context.Context, id string) (*game.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var g game.Game
	err := s.db.View(func(tx *bbolt.Tx) error {
		payload := tx.Bucket([]byte(gamesBucket)).Get([]byte(id))
		if payload == nil {
			return ErrNotFound
		}
		if err := json.Unmarshal(payload, &g); err != nil {
			return fmt.Errorf("decode game %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *BoltStore) Insert(ctx context.Context, g *game.Game) error {
	return s.put(ctx, g, false)
}

func (s *BoltStore) Replace(ctx context.Context, g *game.Game) error {
	return s.put(ctx, g, true)
}

// put writes g; exists says whether the key must already be present.
func (s *BoltStore) put(ctx context.Context, g *game.Game, exists bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(gamesBucket))
		found := b.Get([]byte(g.ID)) != nil
		switch {
		case exists && !found:
			return ErrNotFound
		case !exists && found:
			return ErrExists
		}
		return b.Put([]byte(g.ID), payload)
	})
}
