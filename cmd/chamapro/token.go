package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kuhlali/chamapro-extend/internal/auth"
)

func tokenCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed API token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("invalid user id %q: %w", userID, err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.TokenTTL).Issue(id)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id the token is issued for")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
