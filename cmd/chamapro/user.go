package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kuhlali/chamapro-extend/internal/database"
	"github.com/kuhlali/chamapro-extend/internal/user"
	userStore "github.com/kuhlali/chamapro-extend/internal/user/store"
)

func userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	cmd.AddCommand(userCreateCmd())

	return cmd
}

func userCreateCmd() *cobra.Command {
	var params user.CreateParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.New(cfg.ConnectionString())
			if err != nil {
				return fmt.Errorf("connecting to database: %w", err)
			}
			defer db.Close()

			u, err := user.NewService(userStore.New(db)).Create(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", u.Username, u.ID)

			return nil
		},
	}

	cmd.Flags().StringVar(&params.Username, "username", "", "unique username")
	cmd.Flags().StringVar(&params.Email, "email", "", "email address")
	cmd.Flags().StringVar(&params.PhoneNumber, "phone", "", "M-Pesa phone number, e.g. 0712345678")
	cmd.Flags().StringVar(&params.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&params.LastName, "last", "", "last name")

	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
