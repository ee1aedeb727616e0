// Package main is the entry point for the shopdex-ingest CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/shopdex/internal/config"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/version"
)

var (
	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "shopdex-ingest",
	Short: "shopdex ingestion and tooling CLI",
	Long: `shopdex-ingest runs PDF batch ingestion and developer tooling against a
shopdex deployment.

Example usage:
  shopdex-ingest ingest ./pdfs          # ingest every PDF in a directory
  shopdex-ingest token --sub alice      # mint a development API token`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		env := config.GetEnv()

		var err error
		cfg, err = config.Load(env)
		if err != nil {
			return err
		}

		logger, err = logpkg.NewLogger(env, cfg.Logging.Level)
		if err != nil {
			return err
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
