package admin

import "github.com/spf13/cobra"

func NewAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage studio admin accounts",
	}

	cmd.AddCommand(NewCreateCommand())

	return cmd
}
