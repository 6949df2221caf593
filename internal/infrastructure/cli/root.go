package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	shellCmd := newShellCommand(container)

	root := &cobra.Command{
		Use:   "pamash",
		Short: "PAMA Secure Shell - terminal with remote risk scoring",
		Long:  "pamash runs a simulated secure shell whose commands are screened by a remote risk-scoring service before execution.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return shellCmd.RunE(cmd, args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(shellCmd)
	root.AddCommand(newLogsCommand(container))
	root.AddCommand(newRegisterCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newStatusCommand(container))
	root.AddCommand(newConfigCommand(container))
	root.AddCommand(newMockServerCommand())
	return root, nil
}
