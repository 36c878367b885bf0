package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a drawing has no snapshots.
	ErrNotFound = errors.New("drawing not found")
	// ErrInvalidID is returned for drawing ids that cannot name a snapshot.
	ErrInvalidID = errors.New("invalid drawing id")
)

// Snapshot is one saved version of a drawing. Document holds the drawing's
// field record as JSON.
type Snapshot struct {
	ID        string          `json:"id"`
	DrawingID string          `json:"drawingId"`
	Version   int             `json:"version"`
	Document  json.RawMessage `json:"document"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Store keeps versioned drawing snapshots. Save assigns the next version
// number for the drawing.
type Store interface {
	Save(ctx context.Context, drawingID string, doc json.RawMessage) (*Snapshot, error)
	Latest(ctx context.Context, drawingID string) (*Snapshot, error)
	Close()
}
