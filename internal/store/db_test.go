package store

import (
	"path/filepath"
	"testing"
)

func TestOpen_CreatesDirectoryAndSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "focuswatch.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	var mode string
	if err := db.conn.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("reading journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	count, err := db.CountSessions()
	if err != nil {
		t.Fatalf("CountSessions on fresh database: %v", err)
	}
	if count != 0 {
		t.Errorf("CountSessions = %d, want 0", count)
	}
}
