// Package domain defines core business entities and value objects for pamash.
//
// The domain layer is independent of infrastructure concerns: session state
// transitions (risk ledger updates, incident watermark advancement) live here
// as pure logic so they can be tested without a terminal or a network.
package domain

import "time"

// Role separates regular terminal users from administrators who receive
// incident notifications.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a role string, defaulting to RoleUser.
func ParseRole(value string) Role {
	if Role(value) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Account is a locally stored user record, keyed by email. Passwords are
// compared in plaintext against this record; hardening is an explicit
// non-goal of the demo.
type Account struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     Role   `yaml:"role"`
}

// RiskLedger holds the per-user risk figures rendered from scoring
// responses. The values are a projection of the most recent server
// response, never recomputed locally.
type RiskLedger struct {
	DailyAvg    float64
	WeeklyTotal int
}

// Danger thresholds for ledger styling.
const (
	DailyDangerThreshold  = 8.0
	WeeklyDangerThreshold = 80
)

// DailyDanger reports whether the daily average crosses the danger line.
func (l RiskLedger) DailyDanger() bool { return l.DailyAvg > DailyDangerThreshold }

// WeeklyDanger reports whether the weekly total crosses the danger line.
func (l RiskLedger) WeeklyDanger() bool { return l.WeeklyTotal > WeeklyDangerThreshold }

// SessionPhase tracks where a submission is in its lifecycle.
type SessionPhase string

const (
	PhaseNotAuthenticated SessionPhase = "not_authenticated"
	PhaseIdle             SessionPhase = "authenticated_idle"
	PhaseAwaitingVerdict  SessionPhase = "awaiting_verdict"
	PhaseExecuting        SessionPhase = "executing"
)

// Session is the single shared mutable resource of a terminal run. It is
// owned by the session service; the incident poller touches it only through
// the methods below.
type Session struct {
	ID                 string
	User               Account
	LoggedIn           bool
	LoggedInAt         time.Time
	ServerOnline       bool
	Phase              SessionPhase
	Path               []string
	Ledger             RiskLedger
	LastSeenIncidentID int64
	UnreadCount        int
}

// Reset returns the session to its post-login defaults. Called on every
// successful login, not merely on process start: a newly logged-in admin is
// re-notified of all still-returned incidents until the first poll catches
// up.
func (s *Session) Reset(id string, user Account, at time.Time) {
	s.ID = id
	s.User = user
	s.LoggedIn = true
	s.LoggedInAt = at
	s.Phase = PhaseIdle
	s.Path = []string{"~"}
	s.Ledger = RiskLedger{}
	s.LastSeenIncidentID = 0
	s.UnreadCount = 0
}

// Logout clears authentication. Server connectivity is retained; in-flight
// requests are not cancelled (the poller gate makes late completions
// harmless).
func (s *Session) Logout() {
	s.LoggedIn = false
	s.User = Account{}
	s.Phase = PhaseNotAuthenticated
}

// ObserveVerdict projects a scoring response onto the ledger, keeping the
// figures exactly as received.
func (s *Session) ObserveVerdict(v Verdict) {
	s.Ledger.DailyAvg = v.AverageRiskScore
	s.Ledger.WeeklyTotal = v.WeeklyTotalRisk
}

// ObserveIncidents processes one poll batch. Incidents are filtered against
// the watermark as of the batch fetch, so an out-of-order feed notifies
// every id above it exactly once; the watermark then holds the batch
// maximum among qualifying ids and never regresses. Returns the qualifying
// ids in feed order; unread grows by one per returned id.
func (s *Session) ObserveIncidents(ids []int64) []int64 {
	start := s.LastSeenIncidentID
	var fresh []int64
	for _, id := range ids {
		if id <= start {
			continue
		}
		fresh = append(fresh, id)
		if id > s.LastSeenIncidentID {
			s.LastSeenIncidentID = id
		}
		s.UnreadCount++
	}
	return fresh
}

// ClearUnread zeroes the unread counter. Triggered by opening the incident
// log view, not by individual notifications expiring.
func (s *Session) ClearUnread() {
	s.UnreadCount = 0
}

// PollingEligible reports whether an incident poll tick may run. Re-checked
// on every tick.
func (s *Session) PollingEligible() bool {
	return s.LoggedIn && s.User.Role == RoleAdmin && s.ServerOnline
}
