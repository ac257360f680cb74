package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKeyPath string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start SSH server for remote play",
	Long: `Start an SSH server so players can connect with any SSH client.

Each connection gets its own menu, game and scoreboard. Runs are saved
under the SSH user name. Sound is not played over SSH.

Examples:
  starcollider serve
  starcollider serve --ssh :2222
  starcollider serve --ssh 0.0.0.0:23234 --host-key /etc/starcollider/host_key`,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", def.Address, "SSH listen address")
	serveCmd.Flags().StringVar(&flagHostKeyPath, "host-key", "", "Path to SSH host key (auto-generated if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", int(def.IdleTimeout/time.Minute), "Idle timeout in minutes")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", path)

	srv, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKeyPath,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Game:        cfg,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Println("Star Collider SSH Server")
	fmt.Println()
	fmt.Printf("Listening on %s\n", srv.Addr())
	fmt.Println()
	fmt.Println("Connect with:")
	fmt.Printf("  ssh -p %s localhost\n", portOf(srv.Addr()))
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")

	ctx, stop := signalContext()
	defer stop()
	return srv.ListenAndServe(ctx)
}

// portOf returns the port part of a listen address like ":23234".
func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
