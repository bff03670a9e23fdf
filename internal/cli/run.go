package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sparkify/warehouse-etl/internal/db"
	"github.com/sparkify/warehouse-etl/internal/logging"
	"github.com/sparkify/warehouse-etl/internal/pipeline"
	"github.com/sparkify/warehouse-etl/internal/warehouse"
)

var (
	runStartDate     string
	runEndDate       string
	runSkipLoad      bool
	runSkipAnalytics bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the ETL pipeline: load staging, transform, analytics",
	Long: `Run the full ETL pipeline against a schema that was previously
created with 'reset': bulk-load the raw files into the staging tables,
populate the dimension and fact tables, then execute the reporting
queries and print their result sets.

Stages run strictly in order; the first statement failure aborts the
remaining steps. Already-committed statements stay committed, so recovery
from a partial run is 'warehouse-etl reset' followed by a fresh run.

Example:
  warehouse-etl run --start-date 2018-11-01 --end-date 2018-11-30`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runStartDate, "start-date", "",
		"analytics window start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runEndDate, "end-date", "",
		"analytics window end date (YYYY-MM-DD, inclusive)")
	runCmd.Flags().BoolVar(&runSkipLoad, "skip-load", false,
		"skip the staging bulk loads (staging was populated by 'seed')")
	runCmd.Flags().BoolVar(&runSkipAnalytics, "skip-analytics", false,
		"load and transform only, skip the reporting queries")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runStartDate != "" {
		cfg.Analytics.StartDate = runStartDate
	}
	if runEndDate != "" {
		cfg.Analytics.EndDate = runEndDate
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if !runSkipLoad {
		if err := cfg.ValidateLoad(); err != nil {
			return err
		}
	}
	start, end, err := cfg.Analytics.Window()
	if err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer conn.Close(context.Background())

	// Refuse to run against a database that was never reset.
	schemaVersion, err := db.GetMetadataValue(ctx, conn, "schema_version")
	if err != nil {
		return fmt.Errorf(
			"warehouse schema has not been created; run 'warehouse-etl reset' first")
	}
	if schemaVersion != db.SchemaVersion {
		return fmt.Errorf(
			"warehouse schema version %s does not match expected %s; "+
				"run 'warehouse-etl reset' to rebuild",
			schemaVersion, db.SchemaVersion)
	}

	logging.Info().
		Str("start_date", cfg.Analytics.StartDate).
		Str("end_date", cfg.Analytics.EndDate).
		Msg("Starting ETL run")

	// A shutdown signal cancels the in-flight statement; anything already
	// committed stays committed.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	p := pipeline.New(conn, warehouse.NewCatalog(cfg.Load))
	opts := pipeline.RunOptions{
		SkipLoad:      runSkipLoad,
		SkipAnalytics: runSkipAnalytics,
	}
	if err := p.Run(ctx, start, end, opts); err != nil {
		return err
	}

	return nil
}
