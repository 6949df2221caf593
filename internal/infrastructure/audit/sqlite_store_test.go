package audit

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/pamash/internal/domain"
)

func newTempSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(filepath.Join(t.TempDir(), "audit.db"))
}

func TestSQLiteRecordAndEntries(t *testing.T) {
	store := newTempSQLiteStore(t)

	base := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	records := []domain.AuditEntry{
		{Kind: domain.AuditBlocked, User: "mallory", Command: "rm -rf /", Timestamp: base},
		{Kind: domain.AuditIncident, User: "bob", Command: "sudo su", Timestamp: base.Add(time.Minute)},
	}
	for _, entry := range records {
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	entries, err := store.Entries(0, "")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].User != "bob" {
		t.Fatalf("entries not newest first: %+v", entries)
	}
	if entries[0].ID == "" {
		t.Fatal("id not assigned on record")
	}
}

func TestSQLiteEntriesSearchAndLimit(t *testing.T) {
	store := newTempSQLiteStore(t)

	base := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	for i, cmd := range []string{"rm -rf /", "ls", "rm tmp.txt"} {
		entry := domain.AuditEntry{
			Kind:      domain.AuditBlocked,
			User:      "mallory",
			Command:   cmd,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	matched, err := store.Entries(0, "rm")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(matched) != 2 {
		t.Fatalf("search matched %d entries, want 2", len(matched))
	}

	limited, err := store.Entries(1, "")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(limited) != 1 || limited[0].Command != "rm tmp.txt" {
		t.Fatalf("limit 1 = %+v", limited)
	}
}

func TestSQLiteClear(t *testing.T) {
	store := newTempSQLiteStore(t)
	if err := store.Record(domain.AuditEntry{Kind: domain.AuditBlocked, User: "x", Command: "y"}); err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, err := store.Entries(0, "")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("Clear left %d entries", len(entries))
	}
}

func TestFileStoreFallbackRoundTrip(t *testing.T) {
	store := &FileStore{path: filepath.Join(t.TempDir(), "audit.jsonl")}

	base := time.Date(2025, 1, 20, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		entry := domain.AuditEntry{
			Kind:      domain.AuditIncident,
			User:      "mallory",
			Command:   "rm -rf /",
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	entries, err := store.Entries(2, "")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	entries, err = store.Entries(0, "")
	if err != nil {
		t.Fatalf("Entries error: %v", err)
	}
	if entries != nil {
		t.Fatalf("Clear left %+v", entries)
	}
}
