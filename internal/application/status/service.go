// Package status runs environment diagnostics for the terminal client.
package status

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/pkg/filesystem"
	"github.com/doeshing/pamash/internal/ports"
)

// Service checks config, the scoring service, and the local stores.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Scoring        ports.ScoringClient
	Accounts       ports.AccountRepository
	Audit          ports.AuditRepository
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("format %s", cfg.ConfigFormatVersion)))

	if s.Scoring != nil {
		if err := s.Scoring.Ping(ctx); err != nil {
			// offline mode is fail-open, so this is a warning, not an error
			checks = append(checks, warn("Scoring service", fmt.Sprintf("offline: %v", err)))
		} else {
			checks = append(checks, ok("Scoring service", cfg.Server.BaseURL))
		}
	}

	if s.Accounts != nil {
		accounts, err := s.Accounts.All()
		if err != nil {
			checks = append(checks, fail("Account store", err.Error()))
		} else {
			checks = append(checks, ok("Account store", fmt.Sprintf("%d accounts", len(accounts))))
		}
	}

	if s.Audit != nil {
		if _, err := s.Audit.Entries(1, ""); err != nil {
			checks = append(checks, warn("Audit store", err.Error()))
		} else {
			checks = append(checks, ok("Audit store", cfg.Audit.DBFile))
		}
	}

	checks = append(checks, allowListCheck(cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func allowListCheck(cfg domain.Config) domain.HealthCheck {
	path := cfg.Security.AllowListFile
	if path == "" {
		return ok("Allow-list", "using embedded defaults")
	}
	if _, err := os.Stat(filesystem.ExpandHome(path)); err != nil {
		return warn("Allow-list", fmt.Sprintf("%s missing, using embedded defaults", path))
	}
	return ok("Allow-list", path)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
