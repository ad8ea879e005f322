package system

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/interiora_backend/cmd/cmdutil"
	"github.com/Alijeyrad/interiora_backend/pkg/database"
)

func NewInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the database if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			fmt.Println("Initializing database...")
			created, err := database.CreateDatabaseIfNotExists(ctx, database.FromCentralConfig(cfg.Database))
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if created {
				fmt.Printf("Database %q created.\n", cfg.Database.DBName)
			} else {
				fmt.Printf("Database %q already exists.\n", cfg.Database.DBName)
			}
			return nil
		},
	}

	return cmd
}
