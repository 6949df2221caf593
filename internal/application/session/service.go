// Package session orchestrates the terminal session: login, command
// submission through the safety classifier, and the admin incident log
// view.
package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/ports"
)

// Fixed bypass credential: always succeeds regardless of stored records.
const (
	BypassEmail    = "demo@pama.ai"
	BypassPassword = "demo"
	BypassName     = "Demo User"
)

// Service owns the session state and drives one submission at a time:
// echo, verdict, then verdict-dependent output, in that order.
type Service struct {
	Safety      ports.SafetyService
	Scoring     ports.ScoringClient
	Accounts    ports.AccountRepository
	Interpreter ports.Interpreter
	Audit       ports.AuditRepository
	Logger      ports.Logger
	Banner      string

	mu   sync.Mutex
	sess domain.Session
}

// LoginError is a user-visible login rejection; no state is mutated when it
// is returned.
type LoginError struct {
	Message string
}

func (e *LoginError) Error() string { return e.Message }

// CheckServer runs the liveness probe and records the result. Any failure
// flips the session into offline (fail-open) mode.
func (s *Service) CheckServer(ctx context.Context) bool {
	err := s.Scoring.Ping(ctx)

	s.mu.Lock()
	s.sess.ServerOnline = err == nil
	online := s.sess.ServerOnline
	s.mu.Unlock()

	if err != nil && s.Logger != nil {
		s.Logger.Warn("server offline", map[string]interface{}{"error": err.Error()})
	}
	return online
}

// Login authenticates against the account store: plaintext password
// compare, role mismatch rejection, and the fixed bypass credential as a
// last resort. A successful login resets the whole session, so previously
// seen incidents re-notify on the next poll.
func (s *Service) Login(ctx context.Context, email, password string, role domain.Role) ([]domain.OutputLine, error) {
	account, found, err := s.Accounts.Lookup(email)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}

	var user domain.Account
	switch {
	case found && account.Password == password:
		if account.Role != role {
			return nil, &LoginError{Message: fmt.Sprintf("Role mismatch! This account is for %ss.", account.Role)}
		}
		user = account
	case email == BypassEmail && password == BypassPassword:
		user = domain.Account{Name: BypassName, Email: email, Role: role}
	default:
		return nil, &LoginError{Message: "Invalid credentials. Try demo@pama.ai / demo"}
	}

	s.mu.Lock()
	s.sess.Reset(uuid.NewString(), user, time.Now())
	online := s.sess.ServerOnline
	s.mu.Unlock()

	if s.Logger != nil {
		s.Logger.Info("login", map[string]interface{}{"user": user.Name, "role": string(user.Role)})
	}

	lines := []domain.OutputLine{domain.System(s.Banner)}
	if online {
		lines = append(lines, domain.Success("[SECURE] AI Threat Defenses Active."))
	} else {
		lines = append(lines, domain.Error("[WARNING] Server Offline. Running in restricted mode."))
	}
	return lines, nil
}

// Logout drops authentication. In-flight requests are not cancelled; the
// poller gate makes their late completions harmless.
func (s *Service) Logout() {
	s.mu.Lock()
	s.sess.Logout()
	s.mu.Unlock()
}

// Submit processes one command line. Empty input never reaches evaluation.
// The echo is appended before the verdict-dependent output, which precedes
// any command output; Submit is synchronous, so the next submission cannot
// interleave.
func (s *Service) Submit(ctx context.Context, raw string) []domain.OutputLine {
	command := strings.TrimSpace(raw)
	if command == "" {
		return nil
	}

	s.mu.Lock()
	if !s.sess.LoggedIn {
		s.mu.Unlock()
		return []domain.OutputLine{domain.Error("Not logged in.")}
	}
	s.sess.Phase = domain.PhaseAwaitingVerdict
	snapshot := s.sess
	s.mu.Unlock()

	lines := []domain.OutputLine{domain.Echo(fmt.Sprintf("%s %s", Prompt(snapshot), raw))}

	eval := s.Safety.Evaluate(ctx, &snapshot, command)
	lines = append(lines, s.applyEvaluation(command, eval)...)

	if !eval.Safe {
		s.mu.Lock()
		s.sess.Phase = domain.PhaseIdle
		s.mu.Unlock()
		return lines
	}

	s.mu.Lock()
	s.sess.Phase = domain.PhaseExecuting
	current := s.sess
	s.mu.Unlock()

	lines = append(lines, s.Interpreter.Run(&current, command)...)

	s.mu.Lock()
	s.sess.Phase = domain.PhaseIdle
	s.mu.Unlock()
	return lines
}

// applyEvaluation projects the classifier's decision onto session state and
// produces the verdict lines.
func (s *Service) applyEvaluation(command string, eval domain.Evaluation) []domain.OutputLine {
	var lines []domain.OutputLine

	if eval.Verdict != nil {
		s.mu.Lock()
		s.sess.ObserveVerdict(*eval.Verdict)
		s.mu.Unlock()

		daily := formatScore(eval.Verdict.AverageRiskScore)
		weekly := strconv.Itoa(eval.Verdict.WeeklyTotalRisk)
		if eval.Verdict.Risky() {
			lines = append(lines, domain.Error(fmt.Sprintf("[ALERT] Threat Detected! (Daily Avg: %s | Weekly Total: %s)", daily, weekly)))
		} else {
			lines = append(lines, domain.Success(fmt.Sprintf("[SAFE] Daily Avg: %s | Weekly Total: %s", daily, weekly)))
		}
	}

	if eval.Source == domain.SourceFailOpen {
		lines = append(lines, domain.Error("[API Error] Safety check failed."))
	}

	if !eval.Safe {
		lines = append(lines,
			domain.Error("[BLOCKED] Command flagged by AI Model."),
			domain.System("Incident logged and reported to Higher Authority."),
		)
		s.recordBlocked(command)
	}
	return lines
}

func (s *Service) recordBlocked(command string) {
	if s.Audit == nil {
		return
	}
	s.mu.Lock()
	user := s.sess.User.Name
	s.mu.Unlock()

	err := s.Audit.Record(domain.AuditEntry{
		Kind:    domain.AuditBlocked,
		User:    user,
		Command: command,
		Detail:  "flagged by scoring service",
	})
	if err != nil && s.Logger != nil {
		s.Logger.Warn("audit record failed", map[string]interface{}{"error": err.Error()})
	}
}

// IncidentLog is the admin log view: the wide incident feed plus the
// drill-down histories of users whose limit_exceeded flag was set.
type IncidentLog struct {
	Incidents     []domain.Incident
	UserHistories map[string][]domain.UserCommand
}

// OpenIncidentLog fetches the admin view and clears the unread counter as a
// side effect of opening it.
func (s *Service) OpenIncidentLog(ctx context.Context) (IncidentLog, error) {
	log, err := FetchIncidentLog(ctx, s.Scoring, s.Logger)
	if err != nil {
		return IncidentLog{}, err
	}

	s.mu.Lock()
	s.sess.ClearUnread()
	s.mu.Unlock()
	return log, nil
}

// FetchIncidentLog pulls the wide incident feed and drills into users whose
// limit_exceeded flag was set. Drill-down fetch failures skip that user
// only.
func FetchIncidentLog(ctx context.Context, scoring ports.ScoringClient, logger ports.Logger) (IncidentLog, error) {
	incidents, err := scoring.Incidents(ctx)
	if err != nil {
		return IncidentLog{}, fmt.Errorf("fetch incidents: %w", err)
	}

	log := IncidentLog{Incidents: incidents, UserHistories: map[string][]domain.UserCommand{}}
	for _, inc := range incidents {
		if !inc.LimitExceeded {
			continue
		}
		if _, seen := log.UserHistories[inc.User]; seen {
			continue
		}
		history, err := scoring.UserCommands(ctx, inc.User)
		if err != nil {
			if logger != nil {
				logger.Warn("user history fetch failed", map[string]interface{}{"user": inc.User, "error": err.Error()})
			}
			continue
		}
		log.UserHistories[inc.User] = history
	}
	return log, nil
}

// PollingEligible implements the poller's per-tick gate.
func (s *Service) PollingEligible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.PollingEligible()
}

// ObserveIncidents filters one poll batch against the watermark; see
// domain.Session.ObserveIncidents.
func (s *Service) ObserveIncidents(ids []int64) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess.ObserveIncidents(ids)
}

// Snapshot returns a copy of the current session state for rendering.
func (s *Service) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sess
}

// Prompt renders the shell prompt for the session.
func Prompt(sess domain.Session) string {
	return fmt.Sprintf("%s@pama:~$", sess.User.Role)
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
