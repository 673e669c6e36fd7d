package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milk9111/lol/storage"
)

var resetCmd = &cobra.Command{
	Use:   "reset [key...]",
	Short: "Clear saved progress",
	Long: `Delete the named keys from the progress database, or everything
including level results when no key is given.

Examples:
  lol reset unlocked
  lol reset fact.visits
  lol reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := storage.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		if len(args) == 0 {
			if err := store.Reset(""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All progress cleared.")
			return nil
		}
		for _, key := range args {
			if err := store.Reset(key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s.\n", key)
		}
		return nil
	},
}
