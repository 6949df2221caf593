package logger

import (
	"os"

	charmlog "github.com/charmbracelet/log"
)

// CharmLogger routes structured logs through charmbracelet/log.
type CharmLogger struct {
	log *charmlog.Logger
}

// NewCharm creates a CharmLogger writing to stderr.
func NewCharm(verbose bool) *CharmLogger {
	l := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
		Prefix:          "pamash",
	})
	if verbose {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
	return &CharmLogger{log: l}
}

func (l *CharmLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug(msg, flatten(fields)...)
}

func (l *CharmLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, flatten(fields)...)
}

func (l *CharmLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn(msg, flatten(fields)...)
}

func (l *CharmLogger) Error(msg string, err error, fields map[string]interface{}) {
	args := flatten(fields)
	if err != nil {
		args = append(args, "error", err)
	}
	l.log.Error(msg, args...)
}

func flatten(fields map[string]interface{}) []interface{} {
	args := make([]interface{}, 0, len(fields)*2)
	for key, value := range fields {
		args = append(args, key, value)
	}
	return args
}
