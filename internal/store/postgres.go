package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inamate/drawtools/internal/typeid"
)

// The document column is json rather than jsonb so field order survives.
const schema = `
CREATE TABLE IF NOT EXISTS drawing_snapshots (
	id         TEXT PRIMARY KEY,
	drawing_id TEXT NOT NULL,
	version    INTEGER NOT NULL,
	document   JSON NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (drawing_id, version)
)`

// Postgres stores snapshots in a drawing_snapshots table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPool connects to the database and verifies the connection.
func NewPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// NewPostgres connects to url and creates the snapshot table if needed.
func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	pool, err := NewPool(ctx, url)
	if err != nil {
		return nil, err
	}
	p := &Postgres{pool: pool}
	if err := p.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

// Migrate creates the snapshot table.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (p *Postgres) Save(ctx context.Context, drawingID string, doc json.RawMessage) (*Snapshot, error) {
	if drawingID == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, drawingID)
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// serialize version assignment per drawing
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, drawingID); err != nil {
		return nil, fmt.Errorf("lock drawing: %w", err)
	}

	snap := &Snapshot{
		ID:        typeid.NewSnapshotID(),
		DrawingID: drawingID,
		Document:  doc,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO drawing_snapshots (id, drawing_id, version, document)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(version) FROM drawing_snapshots WHERE drawing_id = $2), 0) + 1,
			$3)
		RETURNING version, created_at`,
		snap.ID, drawingID, string(doc),
	).Scan(&snap.Version, &snap.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create snapshot: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return snap, nil
}

func (p *Postgres) Latest(ctx context.Context, drawingID string) (*Snapshot, error) {
	var snap Snapshot
	var doc string
	err := p.pool.QueryRow(ctx, `
		SELECT id, drawing_id, version, document::text, created_at
		FROM drawing_snapshots
		WHERE drawing_id = $1
		ORDER BY version DESC
		LIMIT 1`,
		drawingID,
	).Scan(&snap.ID, &snap.DrawingID, &snap.Version, &doc, &snap.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	snap.Document = json.RawMessage(doc)
	return &snap, nil
}

func (p *Postgres) Close() {
	p.pool.Close()
}
