package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
)

func newStatusCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check config, stores, and scoring service connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := container.StatusService.Run(cmd.Context())
			RenderHealthReport(cmd.OutOrStdout(), report)
			if err != nil {
				return err
			}
			if !report.Healthy() {
				return fmt.Errorf("one or more checks failed")
			}
			return nil
		},
	}
}
