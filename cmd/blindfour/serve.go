package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blindfour/internal/games/blindfour"
	"github.com/vovakirdan/blindfour/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeGame   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Blind Four SSH server",
	Long: `Start an SSH server that lets two players share a remote terminal.

Each SSH connection gets its own hotseat session. Finished matches are
recorded in the server's history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key under the XDG data directory

Examples:
  blindfour serve                           # Listen on the configured address
  blindfour serve --ssh :2222               # Listen on port 2222
  blindfour serve --game blindfour_chaos    # Start sessions on the chaos rules
  blindfour serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
	serveCmd.Flags().StringVar(&flagServeGame, "game", blindfour.GameID, "Rule set new sessions start on")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srvCfg := tui.DefaultSSHServerConfig()
	srvCfg.Address = cfg.Server.Address
	srvCfg.HostKeyPath = cfg.Server.HostKeyPath
	srvCfg.IdleTimeout = time.Duration(cfg.Server.IdleTimeoutMinutes) * time.Minute
	srvCfg.DBPath = historyPath(cfg)
	srvCfg.NoHistory = !cfg.History.Enabled
	srvCfg.GameID = flagServeGame
	srvCfg.TickRate = flagFPS
	srvCfg.Logger = newLogger(os.Stderr, "blindfour-ssh")

	if cmd.Flags().Changed("ssh") {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		srvCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	server, err := tui.NewSSHServer(srvCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting Blind Four SSH server on %s\n", srvCfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(srvCfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
