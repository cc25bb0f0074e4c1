package cmd

import (
	"fmt"
	"os"

	"LocalCanvas/internal/board"
	"LocalCanvas/internal/config"
	"LocalCanvas/internal/persist"
	"LocalCanvas/internal/render"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is where init writes and every command reads config.
const DefaultConfigPath = ".localcanvas/config.yaml"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "localcanvas",
	Short: "A vector drawing canvas with undo history and local persistence",
	Long: `localcanvas draws arrows, lines, splines, rectangles, circles, free lines
and polygons, keeps a bounded undo/redo history, and saves the drawing
after every change.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to config file")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func boardOptions(cfg config.Config) board.Options {
	return board.Options{
		HistoryCap:  cfg.History.Cap,
		CloseRadius: cfg.Gesture.CloseRadius,
		Color:       cfg.Defaults.Color,
		StrokeWidth: cfg.Defaults.StrokeWidth,
	}
}

// openBoard builds a board backed by the on-disk store and restores the
// saved drawing.
func openBoard(cfg config.Config) (*board.Board, error) {
	store, err := persist.NewFileStore(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	b := board.New(
		render.NewStage(cfg.Canvas.Width, cfg.Canvas.Height),
		persist.NewBridge(store, cfg.Store.Key),
		boardOptions(cfg),
	)
	b.Load()
	return b, nil
}
