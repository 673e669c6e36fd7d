package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/milk9111/lol/levels"
	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/storage"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List levels with recorded results",
	Args:  cobra.NoArgs,
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
		return listLevels(cmd.OutOrStdout(), levels.NewCatalog(levels.Source{Dir: cfg.LevelDir}, nil), store)
	},
}

func listLevels(w io.Writer, cat *levels.Catalog, store *storage.Store) error {
	results, err := store.Results()
	if err != nil {
		return err
	}
	byLevel := make(map[int]storage.Result, len(results))
	for _, r := range results {
		byLevel[r.Level] = r
	}
	unlocked := store.ReadPersistent(lol.UnlockedKey, 1)

	fmt.Fprintf(w, "  %-3s  %-24s  %-6s  %-5s  %-6s  %s\n", "#", "Name", "Open", "Wins", "Losses", "Last played")
	for n := 1; n <= cat.Count(); n++ {
		name := "(invalid)"
		if spec, err := cat.Spec(n); err == nil {
			name = spec.Name
		}
		open := "no"
		if n <= unlocked {
			open = "yes"
		}
		r := byLevel[n]
		last := "-"
		if !r.LastPlay.IsZero() {
			last = r.LastPlay.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-3d  %-24s  %-6s  %-5d  %-6d  %s\n", n, name, open, r.Wins, r.Losses, last)
	}
	return nil
}
