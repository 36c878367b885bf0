package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/inamate/drawtools/internal/typeid"
)

// Files stores snapshots as JSON files under dir/<drawingID>/<version>.json.
type Files struct {
	dir string
	mu  sync.Mutex
}

// NewFiles creates a file store rooted at dir.
func NewFiles(dir string) (*Files, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	slog.Info("using file store", "dir", dir)
	return &Files{dir: dir}, nil
}

func (f *Files) drawingDir(drawingID string) (string, error) {
	if drawingID == "" || strings.ContainsAny(drawingID, `/\.`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, drawingID)
	}
	return filepath.Join(f.dir, drawingID), nil
}

func (f *Files) Save(ctx context.Context, drawingID string, doc json.RawMessage) (*Snapshot, error) {
	dir, err := f.drawingDir(drawingID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create drawing dir: %w", err)
	}
	latest, err := latestVersion(dir)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:        typeid.NewSnapshotID(),
		DrawingID: drawingID,
		Version:   latest + 1,
		Document:  doc,
		CreatedAt: time.Now().UTC(),
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	// write then rename so readers never see a partial file
	path := filepath.Join(dir, strconv.Itoa(snap.Version)+".json")
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, nil
}

func (f *Files) Latest(ctx context.Context, drawingID string) (*Snapshot, error) {
	dir, err := f.drawingDir(drawingID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	v, err := latestVersion(dir)
	if err != nil {
		return nil, err
	}
	if v == 0 {
		return nil, ErrNotFound
	}

	data, err := os.ReadFile(filepath.Join(dir, strconv.Itoa(v)+".json"))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s/%d: %w", drawingID, v, err)
	}
	return &snap, nil
}

func (f *Files) Close() {}

// latestVersion returns the highest version saved in dir, or 0.
func latestVersion(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("list snapshots: %w", err)
	}
	latest := 0
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok || e.IsDir() {
			continue
		}
		if v, err := strconv.Atoi(name); err == nil {
			latest = max(latest, v)
		}
	}
	return latest, nil
}
