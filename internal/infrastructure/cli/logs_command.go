package cli

import (
	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
	"github.com/doeshing/pamash/internal/application/session"
)

// newLogsCommand fetches the admin incident view once. The service trusts
// the client verbatim, so no login gate exists here.
func newLogsCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "logs",
		Short: "Fetch the incident feed and flagged-user histories",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := session.FetchIncidentLog(cmd.Context(), container.Scoring, container.Logger)
			if err != nil {
				return err
			}
			RenderIncidentLog(cmd.OutOrStdout(), log)
			return nil
		},
	}
}
