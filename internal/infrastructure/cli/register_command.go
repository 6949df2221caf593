package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doeshing/pamash/internal/app"
	"github.com/doeshing/pamash/internal/domain"
)

func newRegisterCommand(container *app.Container) *cobra.Command {
	var (
		name     string
		email    string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a local account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" || email == "" || password == "" {
				return fmt.Errorf("name, email and password are required")
			}
			account := domain.Account{
				Name:     name,
				Email:    email,
				Password: password,
				Role:     domain.ParseRole(role),
			}
			if err := container.Accounts.Save(account); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New account created for %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	cmd.Flags().StringVar(&role, "role", "user", "Account role (user or admin)")
	return cmd
}
