package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/parley/internal/cli"
	"github.com/example/parley/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "parley",
		Short:   "parley - direct messages between individuals and organizations",
		Version: version.String(),
		Long: `parley stores direct messages between participants (individuals and
organizations), tracks what each recipient has read, and groups exchanges
into conversation threads. It runs as a CLI or as an HTTP API (parley serve).`,
		SilenceUsage: true,
	}
	cli.RegisterGlobalFlags(rootCmd)

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ParticipantCmd())
	rootCmd.AddCommand(cli.MessageCmd())
	rootCmd.AddCommand(cli.ServeCmd())

	// Developer tools
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
