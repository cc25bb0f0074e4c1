package cmd

import (
	"fmt"
	"time"

	canvasnet "LocalCanvas/internal/net"

	"github.com/spf13/cobra"
)

var discoverTimeout time.Duration

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List canvas servers advertised on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		found := 0
		err := canvasnet.Discover(discoverTimeout, func(addr string) {
			found++
			fmt.Fprintln(cmd.OutOrStdout(), addr)
		})
		if err != nil {
			return fmt.Errorf("browsing local network: %w", err)
		}
		if found == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No canvases found")
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().DurationVarP(&discoverTimeout, "timeout", "t", 2*time.Second, "how long to listen for answers")
	rootCmd.AddCommand(discoverCmd)
}
