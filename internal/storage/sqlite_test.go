package storage_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/dynastygames/emperorquiz/internal/database"
	"github.com/dynastygames/emperorquiz/internal/migrations"
	"github.com/dynastygames/emperorquiz/internal/storage"
)

func setupBlobs(t *testing.T) *storage.SQLiteBlobs {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(db); err != nil {
		t.Fatalf("running migrations: %v", err)
	}
	return storage.NewSQLiteBlobs(ctx, db)
}

func TestSQLiteBlobsRoundTrip(t *testing.T) {
	blobs := setupBlobs(t)

	if err := blobs.Save("emperors", []byte(`{"records":[]}`)); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := blobs.Load("emperors")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !bytes.Equal(got, []byte(`{"records":[]}`)) {
		t.Errorf("loaded %q, want %q", got, `{"records":[]}`)
	}
}

func TestSQLiteBlobsOverwrite(t *testing.T) {
	blobs := setupBlobs(t)

	if err := blobs.Save("game_state", []byte("one")); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := blobs.Save("game_state", []byte("two")); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := blobs.Load("game_state")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "two" {
		t.Errorf("loaded %q, want %q", got, "two")
	}
}

func TestSQLiteBlobsLoadMissing(t *testing.T) {
	blobs := setupBlobs(t)

	_, err := blobs.Load("nope")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteBlobsRemove(t *testing.T) {
	blobs := setupBlobs(t)

	if err := blobs.Save("game_state", []byte("x")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := blobs.Remove("game_state"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := blobs.Load("game_state"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound after remove, got %v", err)
	}

	// Removing a missing key is not an error.
	if err := blobs.Remove("game_state"); err != nil {
		t.Errorf("second remove: %v", err)
	}
}
