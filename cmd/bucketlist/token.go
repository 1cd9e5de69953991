package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/bucketlist/internal/auth"
)

func newTokenCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue and verify auth tokens with the configured secret key",
	}
	cmd.AddCommand(newTokenIssueCmd(a), newTokenVerifyCmd(a))
	return cmd
}

func newTokenIssueCmd(a *app) *cobra.Command {
	var (
		userID     int64
		expiration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "issue",
		Short: "Print a signed token for a user ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user-id must be positive")
			}
			tokens := auth.NewTokenManager(a.cfg.SecretKey, a.cfg.TokenExpiration)
			if expiration <= 0 {
				expiration = tokens.Expiration()
			}

			token, err := tokens.GenerateWithExpiration(userID, expiration)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "user ID to encode")
	cmd.Flags().DurationVar(&expiration, "expiration", 0, "token lifetime (default: configured token_expiration)")
	return cmd
}

func newTokenVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify TOKEN",
		Short: "Print the user ID of a valid token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, ok := auth.VerifyAuthToken(args[0], a.cfg.SecretKey)
			if !ok {
				return auth.ErrInvalidToken
			}
			fmt.Fprintln(cmd.OutOrStdout(), userID)
			return nil
		},
	}
}
