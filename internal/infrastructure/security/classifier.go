// Package security implements the command safety classifier: allow-list
// matching first, remote risk scoring otherwise, failing open on any error.
package security

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/pamash/assets"
	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// Classifier implements the SafetyService port.
type Classifier struct {
	allow   map[string]struct{}
	scoring ports.ScoringClient
	logger  ports.Logger
}

// AllowListFile is the YAML schema root of the allow-list rules file.
type AllowListFile struct {
	Rules struct {
		SafeVerbs []string `yaml:"safe_verbs"`
	} `yaml:"rules"`
}

// NewClassifier loads the allow-list from disk (or defaults when missing)
// and wires the remote scoring client.
func NewClassifier(path string, scoring ports.ScoringClient, logger ports.Logger) (*Classifier, error) {
	verbs, err := loadAllowList(path)
	if err != nil {
		return nil, err
	}

	allow := make(map[string]struct{}, len(verbs))
	for _, verb := range verbs {
		allow[strings.ToLower(verb)] = struct{}{}
	}

	return &Classifier{allow: allow, scoring: scoring, logger: logger}, nil
}

// Evaluate implements ports.SafetyService.
//
// Decision order: offline fail-open, allow-list, remote scoring. Only the
// verb is lower-cased for matching; the command text travels to the service
// unmodified. A transport or parse failure never blocks a command.
func (c *Classifier) Evaluate(ctx context.Context, sess *domain.Session, command string) domain.Evaluation {
	if c == nil || sess == nil {
		return domain.Evaluation{Safe: true, Source: domain.SourceFailOpen, Err: errors.New("classifier not initialized")}
	}

	if !sess.ServerOnline {
		return domain.Evaluation{Safe: true, Source: domain.SourceOffline}
	}

	if c.Allowed(command) {
		return domain.Evaluation{Safe: true, Source: domain.SourceAllowList}
	}

	verdict, err := c.scoring.Predict(ctx, domain.ScoreRequest{
		Command:  command,
		Username: sess.User.Name,
		Role:     string(sess.User.Role),
	})
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("scoring call failed, failing open", map[string]interface{}{"error": err.Error()})
		}
		return domain.Evaluation{Safe: true, Source: domain.SourceFailOpen, Err: err}
	}

	return domain.Evaluation{
		Safe:    !verdict.Risky(),
		Source:  domain.SourceRemote,
		Verdict: &verdict,
	}
}

// Allowed reports whether the command's verb is on the allow-list. Matching
// is case-insensitive on the first whitespace-delimited token only.
func (c *Classifier) Allowed(command string) bool {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return false
	}
	_, ok := c.allow[strings.ToLower(fields[0])]
	return ok
}

func loadAllowList(path string) ([]string, error) {
	path = expandPath(path)
	data, err := os.ReadFile(path)
	if err != nil {
		// fall back to the embedded defaults
		data = assets.DefaultAllowListYAML
	}
	var rules AllowListFile
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, err
	}
	if len(rules.Rules.SafeVerbs) == 0 {
		rules.Rules.SafeVerbs = defaultSafeVerbs()
	}
	return rules.Rules.SafeVerbs, nil
}

func expandPath(path string) string {
	if path == "" {
		return filepath.Join(filesystem.UserHomeDir(), ".pamash", "allowlist.yaml")
	}
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Join(filesystem.UserHomeDir(), path)
}

func defaultSafeVerbs() []string {
	return []string{"ls", "dir", "cd", "pwd", "echo", "whoami", "help", "clear"}
}

var _ ports.SafetyService = (*Classifier)(nil)
