package cli

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/infrastructure/devserver"
)

// newMockServerCommand runs the local scoring stub so the shell can be
// demoed without the real service.
func newMockServerCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mockserver",
		Short: "Run a local stand-in for the scoring service",
		RunE: func(cmd *cobra.Command, args []string) error {
			server := devserver.New()
			fmt.Fprintf(cmd.OutOrStdout(), "mock scoring service listening on %s\n", addr)
			return http.ListenAndServe(addr, server.Router())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8000", "Listen address")
	return cmd
}
