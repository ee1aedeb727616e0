package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	dbPostgres "github.com/kailas-cloud/shopdex/internal/db/postgres"
	logpkg "github.com/kailas-cloud/shopdex/internal/logger"
	"github.com/kailas-cloud/shopdex/internal/metrics"
	"github.com/kailas-cloud/shopdex/internal/pdf"
	documentrepo "github.com/kailas-cloud/shopdex/internal/repository/document"
	ingestuc "github.com/kailas-cloud/shopdex/internal/usecase/ingest"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Ingest every PDF in a directory into the document store",
	Long: `Extract text from each PDF under the given directory and store the
resulting documents. Files that cannot be parsed are skipped; a storage
failure aborts the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().String("uploaded-by", "ingest-cli", "recorded uploader for each document")
	ingestCmd.Flags().Duration("timeout", 10*time.Minute, "overall run timeout")
}

func runIngest(cmd *cobra.Command, args []string) error {
	uploadedBy, _ := cmd.Flags().GetString("uploaded-by")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	if cfg.Database.Driver != "postgres" {
		return fmt.Errorf("ingest requires the postgres driver, config has %q", cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	ctx = logpkg.ContextWithLogger(ctx, logger)

	pool, err := dbPostgres.New(ctx, cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("create database pool: %w", err)
	}
	defer pool.Close()

	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
	if err := dbPostgres.WaitForReady(ctx, pool, readiness); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	metrics.RegisterIngestMetrics()

	svc := ingestuc.New(documentrepo.New(pool), pdf.New(), cfg.Ingest.UploadDir, cfg.Ingest.PublicPathFmt)

	dir := args[0]
	logger.Info("Starting batch ingestion", zap.String("dir", dir))

	stored, err := svc.ProcessDirectory(ctx, dir, uploadedBy)
	if err != nil {
		return fmt.Errorf("process directory: %w", err)
	}

	logger.Info("Batch ingestion finished", zap.Int("stored", stored))
	fmt.Fprintf(cmd.OutOrStdout(), "stored %d documents from %s\n", stored, dir)
	return nil
}
