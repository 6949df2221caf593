package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
	"github.com/doeshing/pamash/internal/application/monitor"
	"github.com/doeshing/pamash/internal/application/session"
	"github.com/doeshing/pamash/internal/domain"
	"github.com/doeshing/pamash/internal/infrastructure/notify"
)

func newShellCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive secure shell",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), container, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func runShell(ctx context.Context, container *app.Container, in io.Reader, out io.Writer) error {
	svc := container.SessionService
	svc.CheckServer(ctx)

	prompter := NewAuthPrompter(in, out)
	reader := prompter.Reader()

	for {
		if err := loginLoop(ctx, svc, prompter, out); err != nil {
			return err
		}

		pollerCtx, stopPoller := context.WithCancel(ctx)
		startPoller(pollerCtx, container, svc, out)

		again, err := commandLoop(ctx, svc, reader, out)
		stopPoller()
		svc.Logout()
		if err != nil || !again {
			return err
		}
	}
}

func loginLoop(ctx context.Context, svc *session.Service, prompter *AuthPrompter, out io.Writer) error {
	for {
		creds, err := prompter.Ask()
		if err != nil {
			return err
		}

		lines, err := svc.Login(ctx, creds.Email, creds.Password, creds.Role)
		if err != nil {
			var loginErr *session.LoginError
			if errors.As(err, &loginErr) {
				WriteLine(out, domain.Error(loginErr.Message))
				continue
			}
			return err
		}

		sess := svc.Snapshot()
		fmt.Fprintf(out, "Session: %s (%s)\n", sess.User.Name, sess.User.Role)
		WriteLines(out, lines)
		return nil
	}
}

// startPoller launches the incident loop for this login. The per-tick gate
// keeps it dormant for non-admin sessions.
func startPoller(ctx context.Context, container *app.Container, svc *session.Service, out io.Writer) {
	if !container.Config.Poller.Enabled {
		return
	}

	center := notify.NewCenter(
		container.Config.Notifications.DisplayDuration(),
		container.Config.Notifications.FadeDuration(),
		func(toast notify.Toast) { RenderToast(out, toast) },
	)

	poller := &monitor.Poller{
		Interval: container.Config.Poller.Interval(),
		Scoring:  container.Scoring,
		Gate:     svc,
		Notifier: center,
		Audit:    container.Audit,
		Logger:   container.Logger,
	}
	go poller.Run(ctx)
}

// commandLoop reads submissions until exit or logout. Returns true when the
// user logged out and a fresh login should begin.
func commandLoop(ctx context.Context, svc *session.Service, reader *bufio.Reader, out io.Writer) (bool, error) {
	for {
		fmt.Fprintf(out, "%s ", RenderPrompt(svc.Snapshot()))

		raw, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return false, nil
			}
			return false, err
		}

		trimmed := strings.ToLower(strings.TrimSpace(raw))
		switch trimmed {
		case "exit", "quit":
			return false, nil
		case "logout":
			WriteLine(out, domain.System("Logged out."))
			return true, nil
		}

		// client-side verb, not a shell command; non-admins get the
		// regular not-found path
		if trimmed == "logs" && svc.Snapshot().User.Role == domain.RoleAdmin {
			showIncidentLog(ctx, svc, out)
			continue
		}

		lines := svc.Submit(ctx, strings.TrimRight(raw, "\r\n"))
		if len(lines) == 0 {
			continue
		}
		WriteLines(out, lines)
		// dashboard stats refresh after every processed command
		RenderLedger(out, svc.Snapshot().Ledger)
	}
}

func showIncidentLog(ctx context.Context, svc *session.Service, out io.Writer) {
	log, err := svc.OpenIncidentLog(ctx)
	if err != nil {
		WriteLine(out, domain.Error("Error fetching logs. Server offline?"))
		return
	}
	RenderIncidentLog(out, log)
}
