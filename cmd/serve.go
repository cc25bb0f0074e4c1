package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	canvasnet "LocalCanvas/internal/net"

	"github.com/spf13/cobra"
)

var (
	servePort int
	serveMDNS bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the canvas to browser front-ends over websockets",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveMDNS, "mdns", true, "advertise the server on the local network")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	advertise := cfg.Server.MDNS
	if cmd.Flags().Changed("mdns") {
		advertise = serveMDNS
	}

	b, err := openBoard(cfg)
	if err != nil {
		return err
	}
	server := canvasnet.NewServer(b)

	if advertise {
		mdnsServer, err := canvasnet.Advertise(port)
		if err != nil {
			log.Printf("[MDNS] %v", err)
		} else {
			defer mdnsServer.Shutdown()
		}
	}

	hostIP, err := canvasnet.GetOutgoingIP()
	if err != nil {
		return fmt.Errorf("finding local address: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Canvas available at %s\n", canvasnet.ShareLink(hostIP, port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
