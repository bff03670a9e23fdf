package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparkify/warehouse-etl/internal/datagen"
	"github.com/sparkify/warehouse-etl/internal/db"
)

var (
	seedSongs      int
	seedEvents     int
	seedRandomSeed uint64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Populate the staging tables with synthetic data",
	Long: `Generate synthetic song metadata and activity log rows directly
into the staging tables, bypassing the object-storage bulk load. Useful
against warehouses with no S3 access: seed, then transform and report
with 'run --skip-load'.

The schema must already exist (run 'reset' first). Seeded rows append to
whatever is already staged.

Example:
  warehouse-etl seed --songs 500 --events 10000
  warehouse-etl run --skip-load`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().IntVar(&seedSongs, "songs", 0,
		"number of song metadata rows to generate")
	seedCmd.Flags().IntVar(&seedEvents, "events", 0,
		"number of activity log rows to generate")
	seedCmd.Flags().Uint64Var(&seedRandomSeed, "random-seed", 0,
		"generator seed for reproducible data (0 = random)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if seedSongs > 0 {
		cfg.Seed.Songs = seedSongs
	}
	if seedEvents > 0 {
		cfg.Seed.Events = seedEvents
	}
	if seedRandomSeed != 0 {
		cfg.Seed.RandomSeed = seedRandomSeed
	}

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}

	ctx := context.Background()
	conn, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to warehouse: %w", err)
	}
	defer conn.Close(ctx)

	if _, err := db.GetMetadataValue(ctx, conn, "schema_version"); err != nil {
		return fmt.Errorf(
			"warehouse schema has not been created; run 'warehouse-etl reset' first")
	}

	gen := datagen.NewGenerator(cfg.Seed)
	return gen.Seed(ctx, conn)
}
