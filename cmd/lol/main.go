// lol plays the levels of a small physics game.
//
// Usage:
//
//	lol play              - Open the game window
//	lol levels            - List levels with recorded results
//	lol reset [key...]    - Clear saved progress
//
// Global flags:
//
//	--config <path>  - Game settings file (default: search ~/.lol/configs, ./configs)
//	--db <path>      - Progress database (default from settings)
//	--levels <dir>   - Directory whose level files override the built-in ones
//	--debug          - Debug logging and physics outlines
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milk9111/lol/config"
)

var (
	flagConfig string
	flagDBPath string
	flagLevels string
	flagDebug  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lol",
	Short: "Play physics levels described in YAML",
	Long: `lol runs a 2D physics game whose levels are YAML files with optional
tengo scripts. Files in the levels directory replace the built-in levels and
are reloaded while playing.

Examples:
  lol play
  lol play --level 2 --debug
  lol levels
  lol reset unlocked`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lol",
		})
		if flagDebug {
			logger.SetLevel(log.DebugLevel)
		}
		log.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game settings")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Debug logging and physics outlines")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(resetCmd)
}

// loadConfig applies the global flags over the settings file.
func loadConfig() (config.Game, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.DBPath = flagDBPath
	}
	if flagLevels != "" {
		cfg.LevelDir = flagLevels
	}
	if flagDebug {
		cfg.Debug = true
	}
	return cfg, nil
}
