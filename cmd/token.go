package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/AgentTarik/gosat-api/internal/auth"
	"github.com/AgentTarik/gosat-api/internal/config"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed JWT accepted by the protected routes",
		Long: `Print an HS256 JWT signed with JWT_SECRET.

Examples:
  gosat-api token --sub backoffice`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.Auth.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}

			issuer, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience, cfg.Auth.JWTAccessTTL)
			if err != nil {
				return err
			}
			token, exp, err := issuer.Issue(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintf(cmd.ErrOrStderr(), "expires at %s\n", exp.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "", "token subject")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
