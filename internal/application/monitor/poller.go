// Package monitor runs the admin incident poll loop: a fixed-interval,
// cancellable task that re-fetches the full incident feed each tick and
// self-filters against the session watermark.
package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/ports"
)

// SessionGate is the poller's narrow view of session state. Both methods
// are safe for concurrent use.
type SessionGate interface {
	// PollingEligible is re-checked on every tick: logged in, admin role,
	// server online.
	PollingEligible() bool
	// ObserveIncidents filters a poll batch against the watermark and
	// returns the ids to notify, in feed order.
	ObserveIncidents(ids []int64) []int64
}

// DefaultInterval is the incident poll period.
const DefaultInterval = 3 * time.Second

// Poller emits at-most-once-per-incident notifications for the admin.
type Poller struct {
	Interval time.Duration
	Scoring  ports.ScoringClient
	Gate     SessionGate
	Notifier ports.Notifier
	Audit    ports.AuditRepository
	Logger   ports.Logger
}

// Run ticks until the context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Tick(ctx)
		}
	}
}

// Tick runs one poll cycle and returns the number of notifications fired.
// Fetch failures are swallowed for this tick: no backoff, no retry counter,
// no user-facing error. A down service and an empty feed look the same.
func (p *Poller) Tick(ctx context.Context) int {
	if !p.Gate.PollingEligible() {
		return 0
	}

	incidents, err := p.Scoring.Incidents(ctx)
	if err != nil {
		if p.Logger != nil {
			p.Logger.Debug("poll skipped", map[string]interface{}{"error": err.Error()})
		}
		return 0
	}

	ids := make([]int64, len(incidents))
	for i, inc := range incidents {
		ids[i] = inc.ID
	}
	fresh := map[int64]struct{}{}
	for _, id := range p.Gate.ObserveIncidents(ids) {
		fresh[id] = struct{}{}
	}

	fired := 0
	for _, inc := range incidents {
		if _, ok := fresh[inc.ID]; !ok {
			continue
		}
		p.Notifier.Show(
			"SECURITY ALERT",
			fmt.Sprintf("User %s attempted risky command: %s", inc.User, inc.Command),
			"alert",
		)
		p.record(inc)
		fired++
	}
	return fired
}

func (p *Poller) record(inc domain.Incident) {
	if p.Audit == nil {
		return
	}
	err := p.Audit.Record(domain.AuditEntry{
		Kind:    domain.AuditIncident,
		User:    inc.User,
		Command: inc.Command,
		Detail:  fmt.Sprintf("incident %d at %s", inc.ID, inc.Timestamp),
	})
	if err != nil && p.Logger != nil {
		p.Logger.Warn("audit record failed", map[string]interface{}{"error": err.Error()})
	}
}
