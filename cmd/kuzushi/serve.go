package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/kuzushi/internal/platform/session"
	"github.com/vovakirdan/kuzushi/internal/platform/tui"
	"github.com/vovakirdan/kuzushi/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Block Kuzushi SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection plays its own game. The high score file and the run
history are shared by every player.

With --http, the spectator stream and the scores API are served as well:
  GET /healthz         - Health check
  GET /api/highscore   - Current high score
  GET /api/runs        - Run history (?order=top|recent&limit=N)
  GET /ws              - Live frames (?player=name)

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.kuzushi/host_key

Examples:
  kuzushi serve                           # Listen on :23234 with auto-generated key
  kuzushi serve --ssh :2222               # Listen on port 2222
  kuzushi serve --http :8080              # Also serve spectators
  kuzushi serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Spectator HTTP address (disabled if empty)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runServe(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("kuzushi-ssh", true)
	if err != nil {
		return err
	}
	defer closeLog()

	high, store, err := openStores(logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	deps := tui.SSHDeps{
		Game:      gameCfg,
		HighScore: high,
		Runs:      store,
		Logger:    logger,
	}

	var hub *web.Hub
	if flagHTTPAddr != "" {
		hub = web.NewHub(logger)
		deps.Publisher = func(player string) session.FramePublisher {
			return hub.Publisher(player)
		}
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
	}

	server, err := tui.NewSSHServer(cfg, deps)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting Block Kuzushi SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	if hub != nil {
		fmt.Printf("Spectators: http://%s/ws\n", flagHTTPAddr)
	}
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	if hub != nil {
		var runs web.RunLister
		if store != nil {
			runs = store
		}
		srv := web.NewServer(hub, high, runs, logger)
		g.Go(func() error {
			return srv.ListenAndServe(ctx, flagHTTPAddr)
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
