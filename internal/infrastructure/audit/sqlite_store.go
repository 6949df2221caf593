// Package audit persists the client-side trail of observed incidents and
// blocked commands in a SQLite database, with a jsonl fallback when the
// database cannot be opened.
package audit

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// SQLiteStore persists audit entries in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the audit database at the given path,
// defaulting to ~/.pamash/audit/audit.db.
func NewSQLiteStore(path string) *SQLiteStore {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".pamash", "audit", "audit.db")
	}
	path = filesystem.ExpandHome(path)
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		// fallback to file store
		return &SQLiteStore{path: path}
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		return &SQLiteStore{path: path}
	}
	return store
}

func (s *SQLiteStore) init() error {
	if s.db == nil {
		return os.ErrInvalid
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS audit (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		kind TEXT,
		user TEXT,
		command TEXT,
		detail TEXT
	);`)
	return err
}

// Record implements ports.AuditRepository.
func (s *SQLiteStore) Record(entry domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Record(entry)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO audit (id, timestamp, kind, user, command, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.Format(time.RFC3339),
		string(entry.Kind),
		entry.User,
		entry.Command,
		entry.Detail,
	)
	return err
}

// Entries returns audit entries newest first (limit/search optional).
func (s *SQLiteStore) Entries(limit int, search string) ([]domain.AuditEntry, error) {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Entries(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, kind, user, command, detail FROM audit")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE user LIKE ? OR command LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var ts, kind string
		if err := rows.Scan(&entry.ID, &ts, &kind, &entry.User, &entry.Command, &entry.Detail); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			entry.Timestamp = t
		}
		entry.Kind = domain.AuditKind(kind)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Clear deletes all audit entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return (&FileStore{path: s.fallbackPath()}).Clear()
	}
	_, err := s.db.Exec("DELETE FROM audit")
	return err
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) fallbackPath() string {
	return strings.TrimSuffix(s.path, filepath.Ext(s.path)) + ".jsonl"
}

var _ ports.AuditRepository = (*SQLiteStore)(nil)
