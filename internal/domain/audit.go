package domain

import "time"

// AuditKind classifies locally recorded events.
type AuditKind string

const (
	AuditIncident AuditKind = "incident" // incident observed by the poller
	AuditBlocked  AuditKind = "blocked"  // command blocked in this session
)

// AuditEntry is one locally persisted record of an observed incident or a
// blocked command. This is the client's own trail, independent of the
// service's incident store.
type AuditEntry struct {
	ID        string    `json:"id"`
	Kind      AuditKind `json:"kind"`
	User      string    `json:"user"`
	Command   string    `json:"command"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}
