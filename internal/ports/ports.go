// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (session orchestration, incident polling) depends on
// these abstractions; infrastructure adapters (HTTP scoring client, YAML
// account store, SQLite audit store, terminal renderer) implement them.
package ports

import (
	"context"

	"github.com/doeshing/pamash/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.pamash/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ScoringClient talks to the remote risk-scoring service. The service
// trusts client-supplied username/role verbatim; no auth token travels with
// any request (accepted trust boundary of the demo).
type ScoringClient interface {
	// Ping is the liveness probe: any successful response means online.
	Ping(ctx context.Context) error
	// Predict scores one command and returns the service's verdict.
	Predict(ctx context.Context, req domain.ScoreRequest) (domain.Verdict, error)
	// Incidents fetches the full current incident feed. The service offers
	// no incremental "since id" query; callers self-filter.
	Incidents(ctx context.Context) ([]domain.Incident, error)
	// UserCommands fetches one user's scored-command history.
	UserCommands(ctx context.Context, username string) ([]domain.UserCommand, error)
}

// SafetyService decides whether a submitted command may execute: allow-list
// first, remote scoring otherwise, failing open on any error.
type SafetyService interface {
	Evaluate(ctx context.Context, sess *domain.Session, command string) domain.Evaluation
}

// AccountRepository is the user-lookup capability backing login and
// registration. Records are keyed by email.
type AccountRepository interface {
	Lookup(email string) (domain.Account, bool, error)
	Save(account domain.Account) error
	All() ([]domain.Account, error)
}

// Notifier displays transient alerts and exposes the currently visible set.
type Notifier interface {
	Show(title, message, kind string)
	Active() int
}

// AuditRepository persists the client-side trail of observed incidents and
// blocked commands.
type AuditRepository interface {
	Record(entry domain.AuditEntry) error
	Entries(limit int, search string) ([]domain.AuditEntry, error)
	Clear() error
}

// Interpreter executes approved commands against session state and the mock
// filesystem. No command mutates the filesystem; it is read-only scenery.
type Interpreter interface {
	Run(sess *domain.Session, command string) []domain.OutputLine
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
