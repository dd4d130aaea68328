package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdude/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Block Dude SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level picker. Runs are
stored per-server and progress is tracked per SSH user name.

Host key handling:
  - If --host-key (or server.host_key_path) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.blockdude/host_key

Examples:
  blockdude serve                           # Listen on server.address
  blockdude serve --ssh :2222               # Listen on port 2222
  blockdude serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
}

func runServe(_ *cobra.Command, _ []string) {
	e := setup(false)
	defer e.close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = e.cfg.Server.Address
	cfg.HostKeyPath = e.cfg.Server.HostKeyPath
	cfg.IdleTimeout = e.cfg.Server.IdleTimeout
	cfg.DBPath = e.cfg.Storage.DBPath
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.Levels = e.loadLevels()
	cfg.BuildOptions = e.buildOptions()
	cfg.Runtime.TickRate = e.cfg.Display.TickRate
	cfg.Runtime.ViewportW = e.cfg.Display.ViewportW
	cfg.Runtime.ViewportH = e.cfg.Display.ViewportH
	cfg.Logger = e.logger.WithPrefix("blockdude-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fatal("creating server: %v", err)
	}

	fmt.Printf("Starting Block Dude SSH server on %s\n", cfg.Address)
	fmt.Printf("Serving %d levels\n", len(cfg.Levels))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fatal("server: %v", err)
	}
}
