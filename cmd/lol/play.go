package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/spf13/cobra"

	"github.com/milk9111/lol/assets"
	"github.com/milk9111/lol/host"
	"github.com/milk9111/lol/levels"
	"github.com/milk9111/lol/lol"
	"github.com/milk9111/lol/storage"
)

var (
	flagLevel  int
	flagAssets string
	flagWatch  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	Long: `Open the game on the splash screen, or straight into a level with
--level. Level files and scripts changed on disk replay the current level.

Examples:
  lol play
  lol play --level 3
  lol play --levels ./mylevels --assets ./myassets`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start this level instead of the splash screen")
	playCmd.Flags().StringVar(&flagAssets, "assets", "assets", "Directory whose images and sounds override the built-in ones")
	playCmd.Flags().BoolVar(&flagWatch, "watch", true, "Reload levels edited on disk")
}

// resultRecorder stores the outcome of every finished level before the
// level scripts see it.
type resultRecorder struct {
	*levels.Catalog
	store *storage.Store
}

func (r resultRecorder) OnLevelCompleteTrigger(level int, win bool) {
	if err := r.store.RecordResult(level, win); err != nil {
		log.Error("record result", "level", level, "err", err)
	}
	r.Catalog.OnLevelCompleteTrigger(level, win)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	cat := levels.NewCatalog(levels.Source{Dir: cfg.LevelDir}, nil)
	if n := cat.Count(); n > 0 {
		cfg.NumLevels = n
	}
	game := lol.NewGame(cfg, resultRecorder{Catalog: cat, store: store}, store)

	var watchers []*levels.Watcher
	if flagWatch {
		if w := watchLevels(cfg.LevelDir); w != nil {
			watchers = append(watchers, w)
		}
	}

	ctx := audio.NewContext(assets.SampleRate)
	h := host.NewGame(game, host.Options{
		Assets:   assets.NewLoader(flagAssets, ctx),
		Catalog:  cat,
		Watchers: watchers,
		Debug:    cfg.Debug,
	})
	defer h.Close()

	if flagLevel > 0 {
		if flagLevel > cfg.NumLevels {
			return fmt.Errorf("level %d does not exist, there are %d", flagLevel, cfg.NumLevels)
		}
		game.PlayLevel(flagLevel)
	}

	log.Info("starting", "title", cfg.Title, "levels", cfg.NumLevels, "dir", cfg.LevelDir, "tps", host.TicksPerSecond(cfg))
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(host.TicksPerSecond(cfg))
	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// watchLevels watches dir and its scripts directory when they exist.
func watchLevels(dir string) *levels.Watcher {
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		log.Debug("level directory not watched", "dir", dir)
		return nil
	}
	dirs := []string{dir}
	scripts := filepath.Join(dir, "scripts")
	if fi, err := os.Stat(scripts); err == nil && fi.IsDir() {
		dirs = append(dirs, scripts)
	}
	w, err := levels.NewWatcher(dirs...)
	if err != nil {
		log.Warn("watch levels", "dir", dir, "err", err)
		return nil
	}
	return w
}
