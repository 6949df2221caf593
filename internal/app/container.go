package app

import (
	"context"

	"github.com/doeshing/pamash/internal/application/session"
	"github.com/doeshing/pamash/internal/application/status"
	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/infrastructure/accounts"
	"github.com/doeshing/pamash/internal/infrastructure/audit"
	"github.com/doeshing/pamash/internal/infrastructure/config"
	"github.com/doeshing/pamash/internal/infrastructure/interp"
	"github.com/doeshing/pamash/internal/infrastructure/scoring"
	"github.com/doeshing/pamash/internal/infrastructure/security"
	"github.com/doeshing/pamash/internal/infrastructure/vfs"
	"github.com/doeshing/pamash/internal/pkg/logger"
	"github.com/doeshing/pamash/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	ConfigLoader   *config.FileLoader
	Scoring        ports.ScoringClient
	Accounts       ports.AccountRepository
	Audit          ports.AuditRepository
	SessionService *session.Service
	StatusService  *status.Service
	Logger         ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.ForBackend(cfg.Logging.Backend, verbose || cfg.Logging.Verbose)

	scoringClient := scoring.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout())
	accountStore := accounts.NewStore(cfg.Accounts.File)
	auditStore := audit.NewSQLiteStore(cfg.Audit.DBFile)

	classifier, err := security.NewClassifier(cfg.Security.AllowListFile, scoringClient, log)
	if err != nil {
		classifier, err = security.NewClassifier("", scoringClient, log)
		if err != nil {
			return nil, err
		}
	}

	tree, err := vfs.Default()
	if err != nil {
		return nil, err
	}

	sessionService := &session.Service{
		Safety:      classifier,
		Scoring:     scoringClient,
		Accounts:    accountStore,
		Interpreter: interp.New(tree, cfg.Terminal.Hostname),
		Audit:       auditStore,
		Logger:      log,
		Banner:      cfg.Terminal.Banner,
	}

	statusService := &status.Service{
		ConfigProvider: cfgLoader,
		Scoring:        scoringClient,
		Accounts:       accountStore,
		Audit:          auditStore,
	}

	return &Container{
		Config:         cfg,
		ConfigLoader:   cfgLoader,
		Scoring:        scoringClient,
		Accounts:       accountStore,
		Audit:          auditStore,
		SessionService: sessionService,
		StatusService:  statusService,
		Logger:         log,
	}, nil
}
