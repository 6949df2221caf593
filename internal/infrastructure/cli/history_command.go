package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
)

// newHistoryCommand inspects the local audit trail: incidents the poller
// observed and commands this client blocked.
func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the local audit trail",
	}

	var (
		limit  int
		search string
	)
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := container.Audit.Entries(limit, search)
			if err != nil {
				return err
			}
			RenderAuditEntries(cmd.OutOrStdout(), entries)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Max entries to show")
	listCmd.Flags().StringVar(&search, "search", "", "Filter by user or command substring")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all audit entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := container.Audit.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Audit trail cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}
