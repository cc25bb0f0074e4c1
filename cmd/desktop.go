package cmd

import (
	"LocalCanvas/internal/ui"

	"github.com/spf13/cobra"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop",
	Short: "Open the canvas in a desktop window",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ui.RunApp(ui.Options{
			Width:    cfg.Canvas.Width,
			Height:   cfg.Canvas.Height,
			StoreKey: cfg.Store.Key,
			Board:    boardOptions(cfg),
		})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(desktopCmd)
}
