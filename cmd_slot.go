package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the saved creature as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, false)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			rec, ok := store.Load(cmd.Context())
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No saved creature.")
				return nil
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete the saved creature and food",
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd, false)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if !store.Clear(cmd.Context()) {
				return fmt.Errorf("clearing save slot failed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s save slot.\n", cfg.Persistence.Backend)
			return nil
		},
	}
}
