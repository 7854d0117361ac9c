package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rana718/custseed/internal/config"
	"github.com/Rana718/custseed/internal/database"
	"github.com/Rana718/custseed/internal/seeder"
	"github.com/Rana718/custseed/internal/utils"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the customers table",
	Long: `Generate customer records with unique emails and insert them in batches.
Each batch is committed in its own transaction; a failed batch is rolled back
and stops the run, leaving earlier batches in place.

The target table must already exist with name, email and created_at columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		if cfg.Seed.Truncate {
			force, _ := cmd.Flags().GetBool("force")
			input := &utils.InputUtils{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
			if !input.AskConfirmation(fmt.Sprintf("⚠️  This deletes every row in %s. Continue?", cfg.Seed.Table), force) {
				color.Yellow("Seeding cancelled")
				return nil
			}
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		adapter, err := connect(ctx, cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer adapter.Close()

		if err := ensureTable(ctx, adapter, cfg.Seed.Table); err != nil {
			return err
		}

		loader, err := seeder.NewLoader(adapter, cfg.Seed.Table, cfg.Seed.Literal)
		if err != nil {
			return err
		}

		s := seeder.New(seeder.ConfigFrom(cfg), loader, seeder.WithOutput(cmd.OutOrStdout()))
		if _, err := s.Seed(ctx); err != nil {
			return err
		}

		count, err := adapter.GetTableRowCount(ctx, cfg.Seed.Table)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📊 %s now holds %s rows\n", cfg.Seed.Table, humanize.Comma(int64(count)))
		return nil
	},
}

// ensureTable fails when table is missing; seeding never creates it.
func ensureTable(ctx context.Context, adapter database.DatabaseAdapter, table string) error {
	exists, err := adapter.CheckTableExists(ctx, table)
	if err != nil {
		return fmt.Errorf("failed to check table %s: %w", table, err)
	}
	if !exists {
		return fmt.Errorf("table %s does not exist; create it before seeding", table)
	}
	return nil
}

// connect opens the store for cfg and reports where it is writing.
func connect(ctx context.Context, cfg *config.Config, out io.Writer) (database.DatabaseAdapter, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}

	adapter := newAdapter(cfg.Engine())
	if err := adapter.Connect(ctx, dbURL); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	color.New(color.FgCyan).Fprintf(out, "🔌 Connected to %s: %s\n", cfg.Engine(), cfg.Target())
	return adapter, nil
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("table", "", "target table")
	seedCmd.Flags().Int("total", 0, "records to insert")
	seedCmd.Flags().Int("batch", 0, "records per transaction")
	seedCmd.Flags().Int("workers", 0, "goroutines generating batches ahead of the writer")
	seedCmd.Flags().Int("max-attempts", 0, "email draws per record before giving up")
	seedCmd.Flags().Bool("literal", true, "inline values as SQL literals instead of bind parameters")
	seedCmd.Flags().Bool("truncate", false, "empty the table before seeding")
	seedCmd.Flags().Int64("seed", 0, "random seed (0 = time-based)")

	bindFlags(seedCmd, map[string]string{
		"seed.table":        "table",
		"seed.total":        "total",
		"seed.batch_size":   "batch",
		"seed.workers":      "workers",
		"seed.max_attempts": "max-attempts",
		"seed.literal":      "literal",
		"seed.truncate":     "truncate",
		"seed.rand_seed":    "seed",
	}, false)
}
