package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
)

// Postgres stores the collection as one jsonb row in the collections
// table, bound to a single collection name at construction. Every save
// rewrites the whole payload (last write wins), which keeps the store
// boundary narrow enough that an indexed schema could replace it without
// touching the ranking engine.
type Postgres struct {
	db     *sql.DB
	name   string
	logger *slog.Logger
}

// NewPostgres creates a postgres-backed store for the named collection.
func NewPostgres(db *sql.DB, name string, logger *slog.Logger) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{
		db:     db,
		name:   name,
		logger: logger,
	}
}

// Load reads the stored payload. A missing row yields an empty
// collection. A payload that no longer unmarshals is treated as empty
// rather than an error; the next save overwrites it.
func (p *Postgres) Load(ctx context.Context) ([]gauntlet.Album, error) {
	var payload []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE name = $1`, p.name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %q: %w", p.name, err)
	}

	var albums []gauntlet.Album
	if err := json.Unmarshal(payload, &albums); err != nil {
		p.logger.Warn("corrupt collection payload, treating as empty",
			"collection", p.name,
			"error", err)
		return nil, nil
	}
	return albums, nil
}

// Save upserts the full collection payload.
func (p *Postgres) Save(ctx context.Context, albums []gauntlet.Album) error {
	payload, err := json.Marshal(albums)
	if err != nil {
		return fmt.Errorf("failed to encode collection %q: %w", p.name, err)
	}

	_, err = p.db.ExecContext(ctx, `
		INSERT INTO collections (name, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()
	`, p.name, payload)
	if err != nil {
		return fmt.Errorf("failed to save collection %q: %w", p.name, err)
	}
	return nil
}
