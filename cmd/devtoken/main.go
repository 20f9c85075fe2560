// Command devtoken mints access tokens for local development, signed with the
// server's AUTH_JWT_SECRET.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/HammerMeetNail/microstartup/internal/auth"
	"github.com/HammerMeetNail/microstartup/internal/models"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subject string
		email   string
		ttl     time.Duration
		issuer  string
	)

	cmd := &cobra.Command{
		Use:          "devtoken",
		Short:        "Print a signed access token for a local user",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("AUTH_JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("AUTH_JWT_SECRET is required")
			}

			id := uuid.New()
			if subject != "" {
				parsed, err := uuid.Parse(subject)
				if err != nil {
					return fmt.Errorf("invalid --sub: %w", err)
				}
				id = parsed
			}

			token, err := auth.NewVerifier(secret, issuer).Issue(models.User{ID: id, Email: email, Role: "authenticated"}, ttl)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	issuerDefault := os.Getenv("AUTH_ISSUER")
	if issuerDefault == "" {
		issuerDefault = "microstartup"
	}
	cmd.Flags().StringVar(&subject, "sub", "", "user id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&issuer, "issuer", issuerDefault, "token issuer")
	return cmd
}
