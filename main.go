package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "bunnygarden",
		Short: "Bunny garden - a virtual pet that grows while you watch",
		Long: `bunnygarden simulates a pet rabbit in a small garden.

The rabbit ages through growth stages, gets hungry, wanders, dances and
eats the food you place. Its state is saved to a single slot and restored
on the next run.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Path to config.yaml (empty = use defaults)")
	rootCmd.PersistentFlags().String("backend", "", "Save backend: file, sqlite or memory (empty = use config)")
	rootCmd.PersistentFlags().String("save-path", "", "Save file or database path (empty = use config)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(
		newRunCmd(),
		newInspectCmd(),
		newResetCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bunnygarden version %s\n", version)
		},
	}
}
