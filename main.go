package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.etcd.io/bbolt"

	"github.com/robalobadob/yahtzee/internal/config"
	"github.com/robalobadob/yahtzee/internal/highscore"
	"github.com/robalobadob/yahtzee/internal/httpserver"
	"github.com/robalobadob/yahtzee/internal/sqlitedb"
	"github.com/robalobadob/yahtzee/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	games, scores, closeFn, err := openStores(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open stores")
	}
	defer closeFn()

	srv := httpserver.New(games, scores, httpserver.Options{
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: cfg.RequestTimeout,
	})
	log.Info().
		Str("port", cfg.Port).
		Str("driver", cfg.StoreDriver).
		Msg("starting yahtzee server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStores builds the game and high score stores for the configured driver.
func openStores(cfg config.Config) (store.Store, highscore.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqlitedb.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.NewSQLiteStore(db), highscore.NewSQLiteStore(db), closer(db), nil

	case config.DriverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.BoltPath), 0o755); err != nil {
			return nil, nil, nil, fmt.Errorf("create bolt dir: %w", err)
		}
		db, err := bbolt.Open(cfg.BoltPath, 0o600, &bbolt.Options{Timeout: time.Second})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open bolt: %w", err)
		}
		games, err := store.NewBoltStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		scores, err := highscore.NewBoltStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		return games, scores, func() { _ = db.Close() }, nil

	default:
		return store.NewMemoryStore(), highscore.NewMemoryStore(), func() {}, nil
	}
}

func closer(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("close sqlite")
		}
	}
}
