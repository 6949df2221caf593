package domain

import "time"

// Config mirrors ~/.pamash/config.yaml.
type Config struct {
	ConfigFormatVersion string               `yaml:"config_format_version"`
	Server              ServerSettings       `yaml:"server"`
	Poller              PollerSettings       `yaml:"poller"`
	Notifications       NotificationSettings `yaml:"notifications"`
	Security            SecuritySettings     `yaml:"security"`
	Accounts            AccountSettings      `yaml:"accounts"`
	Audit               AuditSettings        `yaml:"audit"`
	Terminal            TerminalSettings     `yaml:"terminal"`
	Logging             LoggingSettings      `yaml:"logging"`
}

// ServerSettings points at the remote scoring service.
type ServerSettings struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout"`
}

// Timeout returns the request timeout as a duration.
func (s ServerSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// PollerSettings controls the admin incident poll loop.
type PollerSettings struct {
	Enabled         bool `yaml:"enabled"`
	IntervalSeconds int  `yaml:"interval"`
}

// Interval returns the poll interval as a duration.
func (p PollerSettings) Interval() time.Duration {
	return time.Duration(p.IntervalSeconds) * time.Second
}

// NotificationSettings controls toast lifetime.
type NotificationSettings struct {
	DisplayMillis int `yaml:"display_ms"`
	FadeMillis    int `yaml:"fade_ms"`
}

// DisplayDuration returns how long a toast stays fully visible.
func (n NotificationSettings) DisplayDuration() time.Duration {
	return time.Duration(n.DisplayMillis) * time.Millisecond
}

// FadeDuration returns the fade window preceding removal.
func (n NotificationSettings) FadeDuration() time.Duration {
	return time.Duration(n.FadeMillis) * time.Millisecond
}

// SecuritySettings defines classifier behavior.
type SecuritySettings struct {
	AllowListFile string `yaml:"allowlist_file"`
}

// AccountSettings locates the local account store.
type AccountSettings struct {
	File string `yaml:"file"`
}

// AuditSettings locates the local audit database.
type AuditSettings struct {
	DBFile string `yaml:"db_file"`
}

// TerminalSettings carries cosmetic session values.
type TerminalSettings struct {
	Banner   string `yaml:"banner"`
	Hostname string `yaml:"hostname"`
}

// LoggingSettings selects the logger backend.
type LoggingSettings struct {
	Backend string `yaml:"backend"` // "std" or "charm"
	Verbose bool   `yaml:"verbose"`
}
