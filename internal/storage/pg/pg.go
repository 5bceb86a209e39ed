package pg

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventz-dev/eventz/internal/config"
	"github.com/eventz-dev/eventz/internal/logger"

	_ "github.com/lib/pq"
)

// Storage is the document-store adapter. It deliberately exposes only
// per-document operations: every statement touches a single row, so the
// invariant layer above cannot rely on cross-document atomicity.
type Storage struct {
	db *sql.DB
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Public.Pg.Host, "dbname", cfg.Public.Pg.Dbname)
	db, err := Connect(cfg)
	if err != nil {
		return nil, err
	}
	storage := &Storage{db}
	if err := storage.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return storage, nil
}

func Connect(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Public.Pg.Host, cfg.Public.Pg.Port, cfg.Public.Pg.User, cfg.Public.Pg.Password, cfg.Public.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err = db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}

// NewWithDB wraps an existing connection. Used by integration tests.
func NewWithDB(ctx context.Context, db *sql.DB) (*Storage, error) {
	storage := &Storage{db}
	if err := storage.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return storage, nil
}

func (s *Storage) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id                  TEXT PRIMARY KEY,
			name                TEXT NOT NULL,
			is_default          BOOLEAN NOT NULL DEFAULT FALSE,
			redirect_url        TEXT NOT NULL,
			redirect_mode       TEXT NOT NULL DEFAULT 'manual',
			auto_redirect_delay INT NOT NULL DEFAULT 5,
			hero_image          TEXT NOT NULL DEFAULT '',
			hero_title          TEXT NOT NULL DEFAULT '',
			hero_text           TEXT NOT NULL DEFAULT '',
			hero_slogan         TEXT NOT NULL DEFAULT '',
			created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
			seq                 BIGSERIAL
		);
		CREATE INDEX IF NOT EXISTS events_default_idx ON events (is_default);

		CREATE TABLE IF NOT EXISTS users (
			id             TEXT PRIMARY KEY,
			username       TEXT UNIQUE,
			password_hash  TEXT,
			email          TEXT,
			wallet_address TEXT UNIQUE,
			role           TEXT NOT NULL DEFAULT 'user',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			last_login     TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Ping checks database connectivity for readiness probes.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}
