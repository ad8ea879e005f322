package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/Alijeyrad/interiora_backend/cmd/cmdutil"
	"github.com/Alijeyrad/interiora_backend/internal/app"
	"github.com/Alijeyrad/interiora_backend/internal/service/admin"
	"github.com/Alijeyrad/interiora_backend/pkg/authorize"
	"github.com/Alijeyrad/interiora_backend/pkg/util/password"
)

func NewCreateCommand() *cobra.Command {
	var (
		email    string
		role     string
		generate bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Long: `Create an account for the admin API.

Missing values are prompted for. With --generate a random password is
created and printed once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Authentication.Enabled {
				return errors.New("authentication is disabled; set authentication.enabled to manage admins")
			}

			if email == "" {
				if err := survey.AskOne(&survey.Input{Message: "Email:"}, &email, survey.WithValidator(survey.Required)); err != nil {
					return err
				}
			}

			var pass string
			if generate {
				pass = password.Generate(cfg.Authentication.DefaultPasswordLength)
			} else if pass, err = askPassword(); err != nil {
				return err
			}

			var svc admin.Service
			return app.RunWithServices(cmd.Context(), cfg, func(ctx context.Context) error {
				u, err := svc.CreateAdmin(ctx, email, pass, role)
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Printf("Created %s admin %s (%s)\n", u.Role, u.Email, u.ID)
				if generate {
					fmt.Printf("Password: %s\n", pass)
				}
				return nil
			}, &svc)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Admin email address")
	cmd.Flags().StringVar(&role, "role", string(authorize.RoleAdmin), "Role: admin or editor")
	cmd.Flags().BoolVar(&generate, "generate", false, "Generate a random password")

	return cmd
}

func askPassword() (string, error) {
	var pass, confirm string

	strength := func(ans any) error {
		s, _ := ans.(string)
		return password.CheckStrength(s)
	}
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &pass, survey.WithValidator(strength)); err != nil {
		return "", err
	}
	if err := survey.AskOne(&survey.Password{Message: "Confirm password:"}, &confirm); err != nil {
		return "", err
	}
	if pass != confirm {
		return "", errors.New("passwords do not match")
	}
	return pass, nil
}
