package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/platform/session"
	"github.com/vovakirdan/kuzushi/internal/platform/tui"
	"github.com/vovakirdan/kuzushi/internal/platform/web"
	"github.com/vovakirdan/kuzushi/internal/platform/window"
	"github.com/vovakirdan/kuzushi/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWindow     bool
	flagSpectate   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Block Kuzushi.

Controls:
  Left/Right, A/D  - Move the paddle
  Up/Down, W/S     - Move the menu cursor
  Enter/Space      - Select
  Space            - Relaunch the ball
  Y/N              - Accept or decline the next level
  P                - Pause
  Q/Esc/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives, slower ball, wider paddle
  normal - The configured values
  hard   - Three lives, faster ball, narrow paddle

Examples:
  kuzushi play
  kuzushi play --window
  kuzushi play --difficulty hard
  kuzushi play --config ./my-kuzushi.yaml
  kuzushi play --spectate :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagWindow, "window", false, "Play in a native window instead of the terminal")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve the spectator stream and API on this address")
}

// loadGameConfig loads the config file and applies the difficulty preset.
func loadGameConfig() (config.KuzushiConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.KuzushiConfig{}, err
	}
	preset, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return config.KuzushiConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.KuzushiConfig{}, err
	}
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("kuzushi", false)
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

	player := os.Getenv("USER")
	if player == "" {
		player = "player"
	}

	opts := session.Options{
		Config:    gameCfg,
		Seed:      flagSeed,
		HighScore: high,
		Logger:    logger,
		Player:    player,
	}
	if store != nil {
		opts.Runs = store
	}

	if flagSpectate != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		hub := web.NewHub(logger)
		opts.Publisher = hub.Publisher(player)
		go serveSpectators(ctx, hub, high, store, logger)
	}

	sess := session.New(opts)

	// Get terminal size; the window frontend keeps its own size
	width, height := 80, 24 // Defaults
	if !flagWindow {
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	logger.Info("starting game", "window", flagWindow, "difficulty", flagDifficulty, "seed", flagSeed)
	if flagWindow {
		cfg.ScreenW, cfg.ScreenH = 0, 0
		err = window.Run(sess, cfg)
	} else {
		err = tui.Run(sess, cfg)
	}
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// serveSpectators runs the spectator API until ctx is cancelled.
func serveSpectators(ctx context.Context, hub *web.Hub, high *storage.HighScoreFile, store *storage.Store, logger *log.Logger) {
	var runs web.RunLister
	if store != nil {
		runs = store
	}
	srv := web.NewServer(hub, high, runs, logger)
	if err := srv.ListenAndServe(ctx, flagSpectate); err != nil {
		logger.Error("spectator server stopped", "error", err)
	}
}
