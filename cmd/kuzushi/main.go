// kuzushi is a block-breaking game for the terminal, a native window or SSH.
//
// Usage:
//
//	kuzushi play             - Play in the terminal (or --window)
//	kuzushi scores           - Show the run history
//	kuzushi serve            - Start the SSH server and spectator API
//	kuzushi config           - Print the effective game config
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set run history path (default: ~/.kuzushi/runs.db)
//	--highscore <path>  - Set high score file (default: highscore.txt)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Log destination (default: ~/.kuzushi/kuzushi.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/kuzushi/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      uint64
	flagDBPath    string
	flagHighScore string
	flagLogLevel  string
	flagLogFile   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "kuzushi",
	Short: "Block Kuzushi - break blocks in your terminal",
	Long: `Block Kuzushi is a block-breaking game. Bounce the ball off your paddle,
clear every block to win, and generate bigger levels as you go.

Available commands:
  play     - Play a game
  scores   - View the run history
  serve    - Start SSH server for remote play
  config   - Print the effective game config

Examples:
  kuzushi play
  kuzushi play --window --difficulty hard
  kuzushi scores --interactive
  kuzushi serve --ssh :2222 --http :8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.kuzushi/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagHighScore, "highscore", storage.DefaultHighScorePath, "Path to high score file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.kuzushi/kuzushi.log", "Log file path (- for stderr)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the application logger from the global flags.
// With toStderr set, or a --log-file of "-", logs go to stderr.
// The returned function closes the log file.
func newLogger(prefix string, toStderr bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	if !toStderr && flagLogFile != "-" {
		path, err := storage.ExpandPath(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //#nosec G304 -- user-supplied log path
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() } //nolint:errcheck // Best-effort close on exit
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStores opens the high score file and the run history.
// A run history that cannot be opened is logged and skipped.
func openStores(logger *log.Logger) (*storage.HighScoreFile, *storage.Store, error) {
	high, err := storage.NewHighScoreFile(flagHighScore)
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history, runs will not be recorded", "error", err)
		return high, nil, nil
	}
	return high, store, nil
}
