package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/httpapi"
	"github.com/vovakirdan/numbolt/internal/platform/tui"
)

const shutdownTimeout = 10 * time.Second

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve numbolt over SSH and/or HTTP",
	Long: `Start an SSH server with the full home screen, a JSON HTTP API,
or both. Each SSH user plays under a profile named after their username;
HTTP clients pass the profile in the request.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.numbolt/host_key

Examples:
  numbolt serve                           # SSH on :23234
  numbolt serve --ssh :2222               # SSH on port 2222
  numbolt serve --ssh "" --http :8080     # HTTP API only
  numbolt serve --http :8080              # Both

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to serve; set --ssh or --http")
		os.Exit(1)
	}

	logger := newLogger(false)

	store := openStoreOrWarn()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()
	deps := newDeps(store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 2)
	var shutdowns []func(context.Context) error

	if flagSSHAddr != "" {
		sshServer, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
			Seed:        flagSeed,
		}, deps)
		if err != nil {
			logger.Error("could not create SSH server", "error", err)
			return
		}
		shutdowns = append(shutdowns, sshServer.Shutdown)
		go func() { errc <- sshServer.Serve() }()

		fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))
	}

	if flagHTTPAddr != "" {
		opts := httpapi.Options{Logger: logger, Seed: flagSeed}
		if store != nil {
			opts.History = store
		}
		api := httpapi.New(deps, opts)
		shutdowns = append(shutdowns, api.Shutdown)
		go func() { errc <- api.ListenAndServe(flagHTTPAddr) }()
	}

	fmt.Println("Press Ctrl+C to stop")

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			logger.Error("server error", "error", err)
		}
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown", "error", err)
		}
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
