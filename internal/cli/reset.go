package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparkify/warehouse-etl/internal/db"
	"github.com/sparkify/warehouse-etl/internal/logging"
	"github.com/sparkify/warehouse-etl/internal/pipeline"
	"github.com/sparkify/warehouse-etl/internal/warehouse"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the warehouse schema",
	Long: `Drop every pipeline table and recreate it empty. Drops run in
reverse dependency order (fact, dimensions, staging) and creates in
dependency order, so foreign keys never block either direction.

This is the only recovery path after a failed ETL run: statements commit
individually, so a mid-run failure leaves partially applied data behind.

Example:
  warehouse-etl reset --connection "postgres://..."`,
	RunE: runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer conn.Close(ctx)

	logging.Info().Msg("Resetting warehouse schema")

	p := pipeline.New(conn, warehouse.NewCatalog(cfg.Load))
	if err := p.Reset(ctx); err != nil {
		return err
	}

	return nil
}
