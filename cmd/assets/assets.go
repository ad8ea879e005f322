package assets

import "github.com/spf13/cobra"

func NewAssetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage portfolio images",
	}

	cmd.AddCommand(NewUploadCommand())

	return cmd
}
