package domain

// Incident is one flagged-command record issued by the scoring service.
// Ids are service-assigned and monotonic; records are immutable once
// issued. The feed endpoint returns a superset of the fields the poller
// needs (the admin log view renders the denormalized risk columns).
type Incident struct {
	ID            int64   `json:"id"`
	Timestamp     string  `json:"timestamp"`
	User          string  `json:"user"`
	Command       string  `json:"command"`
	DailyAvg      float64 `json:"daily_avg"`
	WeeklyTotal   int     `json:"weekly_total"`
	Read          bool    `json:"read"`
	LimitExceeded bool    `json:"limit_exceeded"`
}

// UserCommand is one entry of a user's scored-command history, fetched when
// drilling into users whose limit_exceeded flag was set.
type UserCommand struct {
	Time    string `json:"time"`
	Command string `json:"command"`
	Score   int    `json:"score"`
}

// Score above which a history entry is highlighted in the drill-down view.
const UserCommandHighlightScore = 5
