package cmd

import (
	"fmt"
	"os"

	"LocalCanvas/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the saved drawing as PDF or a text summary",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "output format: pdf or text")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default canvas.pdf, or stdout for text)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := openBoard(cfg)
	if err != nil {
		return err
	}
	shapes := b.Shapes()

	switch exportFormat {
	case "pdf":
		out := exportOut
		if out == "" {
			out = "canvas.pdf"
		}
		if err := export.PDF(out, shapes); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d shapes to %s\n", len(shapes), out)
		return nil
	case "text":
		if exportOut == "" {
			return export.Summary(cmd.OutOrStdout(), shapes)
		}
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		return export.Summary(f, shapes)
	default:
		return fmt.Errorf("unknown export format %q", exportFormat)
	}
}
