package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/shopdex/internal/token"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development API token",
	Long: `Sign a short-lived JWT with the configured secret. Production tokens
come from the auth service; this command exists for local development and
scripted API calls.`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("sub", "dev", "token subject (recorded as the uploader)")
	tokenCmd.Flags().String("name", "", "display name claim")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, args []string) error {
	sub, _ := cmd.Flags().GetString("sub")
	name, _ := cmd.Flags().GetString("name")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	signed, err := token.NewIssuer(cfg.Auth.JWTSecret).Issue(sub, name, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}
