package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/parley/internal/db"
	"github.com/example/parley/internal/wire"
)

// SeedCmd returns the seed command
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures",
		Long: `Insert a few individuals and organizations and some conversations between
them into the configured database. Intended for an empty development database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(wire.DB()); err != nil {
				return fmt.Errorf("failed to seed database: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "✓ Fixtures loaded")
			fmt.Fprintln(cmd.OutOrStdout(), "  Try: parley message threads --as individual:1")
			return nil
		},
	}
}
