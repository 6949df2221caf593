// Package accounts persists local user records in a YAML file, keyed by
// email. This is the demo's stand-in for real account storage: passwords
// are stored and compared in plaintext on purpose.
package accounts

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// Store is a file-backed AccountRepository.
type Store struct {
	path string
	mu   sync.Mutex
}

type accountsFile struct {
	Accounts map[string]domain.Account `yaml:"accounts"`
}

// NewStore builds a store at the given path, defaulting to
// ~/.pamash/accounts.yaml.
func NewStore(path string) *Store {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".pamash", "accounts.yaml")
	}
	return &Store{path: filesystem.ExpandHome(path)}
}

// Lookup implements ports.AccountRepository.
func (s *Store) Lookup(email string) (domain.Account, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return domain.Account{}, false, err
	}
	account, ok := file.Accounts[normalizeEmail(email)]
	return account, ok, nil
}

// Save implements ports.AccountRepository. Saving an existing email
// overwrites the record.
func (s *Store) Save(account domain.Account) error {
	if strings.TrimSpace(account.Email) == "" {
		return errors.New("account email required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	if file.Accounts == nil {
		file.Accounts = map[string]domain.Account{}
	}
	file.Accounts[normalizeEmail(account.Email)] = account
	return s.write(file)
}

// All implements ports.AccountRepository, returning records sorted by email.
func (s *Store) All() ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(file.Accounts))
	for _, account := range file.Accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Email < accounts[j].Email })
	return accounts, nil
}

func (s *Store) read() (accountsFile, error) {
	var file accountsFile
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, nil
		}
		return file, err
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return accountsFile{}, err
	}
	return file, nil
}

func (s *Store) write(file accountsFile) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	raw, err := yaml.Marshal(file)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ ports.AccountRepository = (*Store)(nil)
