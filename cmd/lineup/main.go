package main

import (
	"os"

	"github.com/spf13/cobra"

	"lineup/internal/interfaces/cli/migrate"
	"lineup/internal/interfaces/cli/operator"
	"lineup/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lineup",
		Short: "Lineup - event check-in queue service",
		Long:  `Lineup issues numbered tickets to walk-up guests and lets operators advance the serving pointer from any device.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		operator.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
