package main

import (
	"fmt"
	"time"

	"chat-animation/config"
	"chat-animation/internal/services"

	"github.com/spf13/cobra"
)

func newTokenCmd(s *session) *cobra.Command {
	var (
		editor string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the settings API (needs JWT_SECRET)",
		Args:  cobra.NoArgs,
		// Tokens need only the secret, not a store connection.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s.cfg = config.LoadConfig()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := services.NewAuthService(s.cfg.JWTSecret).IssueToken(editor, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&editor, "editor", "animctl", "editor name embedded in the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
