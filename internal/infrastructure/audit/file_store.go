package audit

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// FileStore appends audit entries to a jsonl file. Used as a fallback when
// the SQLite database cannot be opened.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a new audit store under ~/.pamash/audit/audit.jsonl.
func NewFileStore() *FileStore {
	return &FileStore{
		path: filepath.Join(filesystem.UserHomeDir(), ".pamash", "audit", "audit.jsonl"),
	}
}

// Record implements ports.AuditRepository.
func (f *FileStore) Record(entry domain.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = file.Write(data)
	return err
}

// Entries loads audit entries newest first (best-effort).
func (f *FileStore) Entries(limit int, search string) ([]domain.AuditEntry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
	var entries []domain.AuditEntry
	for i := len(lines) - 1; i >= 0; i-- {
		if len(lines[i]) == 0 {
			continue
		}
		var entry domain.AuditEntry
		if err := json.Unmarshal(lines[i], &entry); err != nil {
			continue
		}
		if search != "" && !matches(entry, search) {
			continue
		}
		entries = append(entries, entry)
		if limit > 0 && len(entries) >= limit {
			break
		}
	}
	return entries, nil
}

// Clear removes the audit file.
func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func matches(entry domain.AuditEntry, search string) bool {
	return strings.Contains(entry.User, search) || strings.Contains(entry.Command, search)
}

var _ ports.AuditRepository = (*FileStore)(nil)
