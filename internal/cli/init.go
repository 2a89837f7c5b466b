package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/parley/internal/config"
	"github.com/example/parley/internal/db"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var dbPath, as string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize parley in the current directory",
		Long: `Write .parley/config.json in the current directory and create the database
with the required schema.

Examples:
  parley init
  parley init --as individual:1 --db ./parley.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			return runInit(cmd, cwd, dbPath, as)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "database path (default ~/.parley/parley.db)")
	cmd.Flags().StringVar(&as, "identity", "", "default participant role:id for CLI commands")

	return cmd
}

func runInit(cmd *cobra.Command, dir, dbPath, as string) error {
	cfg, err := config.LoadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.DatabasePath = dbPath
	}
	if as != "" {
		ref, err := parseParticipantArg(as)
		if err != nil {
			return err
		}
		cfg.ParticipantID = ref.ID
		cfg.ParticipantRole = string(ref.Role)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resolved, err := cfg.ResolveDatabasePath()
	if err != nil {
		return err
	}
	conn, err := db.Open(resolved)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := config.SaveConfig(dir, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Database ready at %s\n", resolved)
	fmt.Fprintf(out, "✓ Config written to %s/%s\n", config.DirName, config.FileName)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  parley participant add individual \"Your Name\"")
	fmt.Fprintln(out, "  parley message inbox")
	return nil
}
