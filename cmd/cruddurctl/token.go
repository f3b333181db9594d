package main

import (
	"fmt"
	"time"

	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/config"
	"github.com/Stevecmd/aws-bootcamp-cruddur-2024/internal/service/auth"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		secret   string
		lifetime time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <handle>",
		Short: "Mint a bearer token for a local server",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: secret})
			if err != nil {
				return err
			}
			token, err := svc.GenerateToken(cmd.Context(), args[0], lifetime)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", envOr("CRUDDUR_AUTH_JWT_SECRET", ""), "HS256 signing secret")
	cmd.Flags().DurationVar(&lifetime, "ttl", time.Hour, "Token lifetime")
	return cmd
}
