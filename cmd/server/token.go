package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"customercore/internal/platform/config"
	"customercore/pkg/platform/middleware/auth"
)

// newIssueTokenCommand mints actor tokens for local use and smoke tests.
func newIssueTokenCommand(configFile *string) *cobra.Command {
	var (
		actor string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Print a signed bearer token for an actor",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if actor == "" {
				return errors.New("--actor is required")
			}
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			token, err := auth.NewTokenService(cfg.Auth.SigningKey, cfg.Auth.Issuer).Issue(actor, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&actor, "actor", "", "actor identifier placed in the sub claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
