package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Rana718/custseed/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check the database connection",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		adapter, err := connect(ctx, cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer adapter.Close()

		if err := adapter.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✅ %s is reachable\n", cfg.Target())

		exists, err := adapter.CheckTableExists(ctx, cfg.Seed.Table)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", cfg.Seed.Table, err)
		}
		if !exists {
			color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "⚠️  Table %s does not exist yet\n", cfg.Seed.Table)
			return nil
		}

		count, err := adapter.GetTableRowCount(ctx, cfg.Seed.Table)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "📊 %s holds %s rows\n", cfg.Seed.Table, humanize.Comma(int64(count)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pingCmd)
}
