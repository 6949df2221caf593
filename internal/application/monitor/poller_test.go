package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/doeshing/pamash/internal/domain"
)

type stubScoring struct {
	incidents []domain.Incident
	err       error
	calls     int
}

func (s *stubScoring) Ping(ctx context.Context) error { return nil }

func (s *stubScoring) Predict(ctx context.Context, req domain.ScoreRequest) (domain.Verdict, error) {
	return domain.Verdict{}, errors.New("not used")
}

func (s *stubScoring) Incidents(ctx context.Context) ([]domain.Incident, error) {
	s.calls++
	return s.incidents, s.err
}

func (s *stubScoring) UserCommands(ctx context.Context, username string) ([]domain.UserCommand, error) {
	return nil, nil
}

type stubGate struct {
	eligible bool
	sess     domain.Session
}

func (g *stubGate) PollingEligible() bool { return g.eligible }

func (g *stubGate) ObserveIncidents(ids []int64) []int64 {
	return g.sess.ObserveIncidents(ids)
}

type stubNotifier struct {
	shown []string
}

func (n *stubNotifier) Show(title, message, kind string) {
	n.shown = append(n.shown, message)
}

func (n *stubNotifier) Active() int { return len(n.shown) }

type stubAudit struct {
	entries []domain.AuditEntry
}

func (a *stubAudit) Record(entry domain.AuditEntry) error {
	a.entries = append(a.entries, entry)
	return nil
}

func (a *stubAudit) Entries(limit int, search string) ([]domain.AuditEntry, error) {
	return a.entries, nil
}

func (a *stubAudit) Clear() error { return nil }

func feed(ids ...int64) []domain.Incident {
	incidents := make([]domain.Incident, len(ids))
	for i, id := range ids {
		incidents[i] = domain.Incident{ID: id, User: "mallory", Command: "rm -rf /"}
	}
	return incidents
}

func TestTickNotifiesEachNewIncidentOnce(t *testing.T) {
	gate := &stubGate{eligible: true, sess: domain.Session{LastSeenIncidentID: 2}}
	notifier := &stubNotifier{}
	audit := &stubAudit{}
	poller := &Poller{
		Scoring:  &stubScoring{incidents: feed(3, 7, 5)},
		Gate:     gate,
		Notifier: notifier,
		Audit:    audit,
	}

	if fired := poller.Tick(context.Background()); fired != 3 {
		t.Fatalf("fired = %d, want 3", fired)
	}
	if gate.sess.LastSeenIncidentID != 7 {
		t.Fatalf("watermark = %d, want 7", gate.sess.LastSeenIncidentID)
	}
	if len(audit.entries) != 3 {
		t.Fatalf("audited %d incidents, want 3", len(audit.entries))
	}

	// same feed again: nothing new
	if fired := poller.Tick(context.Background()); fired != 0 {
		t.Fatalf("replay tick fired %d notifications", fired)
	}
	if len(notifier.shown) != 3 {
		t.Fatalf("total notifications = %d, want 3", len(notifier.shown))
	}
}

func TestTickSkipsWhenIneligible(t *testing.T) {
	scoring := &stubScoring{incidents: feed(1, 2)}
	poller := &Poller{
		Scoring:  scoring,
		Gate:     &stubGate{eligible: false},
		Notifier: &stubNotifier{},
	}

	if fired := poller.Tick(context.Background()); fired != 0 {
		t.Fatalf("ineligible tick fired %d notifications", fired)
	}
	if scoring.calls != 0 {
		t.Fatal("ineligible tick hit the feed endpoint")
	}
}

func TestTickSwallowsFetchErrors(t *testing.T) {
	gate := &stubGate{eligible: true}
	notifier := &stubNotifier{}
	scoring := &stubScoring{err: errors.New("connection refused")}
	poller := &Poller{Scoring: scoring, Gate: gate, Notifier: notifier}

	if fired := poller.Tick(context.Background()); fired != 0 {
		t.Fatalf("failed tick fired %d notifications", fired)
	}

	// recovery on the next tick still applies the full feed
	scoring.err = nil
	scoring.incidents = feed(4)
	if fired := poller.Tick(context.Background()); fired != 1 {
		t.Fatalf("recovered tick fired %d notifications, want 1", fired)
	}
	if notifier.shown[0] != "User mallory attempted risky command: rm -rf /" {
		t.Fatalf("notification text = %q", notifier.shown[0])
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	poller := &Poller{
		Interval: DefaultInterval,
		Scoring:  &stubScoring{},
		Gate:     &stubGate{},
		Notifier: &stubNotifier{},
	}

	done := make(chan struct{})
	go func() {
		poller.Run(ctx)
		close(done)
	}()
	<-done
}
