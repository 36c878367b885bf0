package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/drawtools/internal/typeid"
)

// exerciseStore runs the behavior every Store must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	id := typeid.NewDrawingID()

	_, err := s.Latest(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	first, err := s.Save(ctx, id, json.RawMessage(`{"Count":0}`))
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)
	assert.Equal(t, id, first.DrawingID)
	assert.NoError(t, typeid.Validate(first.ID, typeid.PrefixSnapshot))

	second, err := s.Save(ctx, id, json.RawMessage(`{"Count":1,"Type0":"DrawTools.DrawLine"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, second.Version)

	latest, err := s.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Version)
	assert.Equal(t, second.ID, latest.ID)
	assert.JSONEq(t, `{"Count":1,"Type0":"DrawTools.DrawLine"}`, string(latest.Document))

	other, err := s.Save(ctx, typeid.NewDrawingID(), json.RawMessage(`{"Count":0}`))
	require.NoError(t, err)
	assert.Equal(t, 1, other.Version)
}

func TestFiles(t *testing.T) {
	s, err := NewFiles(filepath.Join(t.TempDir(), "drawings"))
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}

func TestFilesRejectsPathIDs(t *testing.T) {
	s, err := NewFiles(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	for _, id := range []string{"", "../escape", "a/b", "x.json"} {
		_, err := s.Save(ctx, id, json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrInvalidID, id)
		_, err = s.Latest(ctx, id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}
}

func TestFilesConcurrentSaves(t *testing.T) {
	s, err := NewFiles(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	id := typeid.NewDrawingID()

	var wg sync.WaitGroup
	for range 8 {
		wg.Go(func() {
			_, err := s.Save(ctx, id, json.RawMessage(`{"Count":0}`))
			assert.NoError(t, err)
		})
	}
	wg.Wait()

	latest, err := s.Latest(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 8, latest.Version)
}

func TestFilesIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFiles(dir)
	require.NoError(t, err)

	id := typeid.NewDrawingID()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, id), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, id, "draft.json"), []byte("x"), 0o644))

	_, err = s.Latest(context.Background(), id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFilesCancelledContext(t *testing.T) {
	s, err := NewFiles(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, typeid.NewDrawingID(), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	s, err := NewPostgres(context.Background(), url)
	require.NoError(t, err)
	defer s.Close()

	exerciseStore(t, s)
}
