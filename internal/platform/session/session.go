// Package session drives one Block Kuzushi game for a frontend. It owns the
// game, loads and saves the high score, records finished runs and publishes
// every frame to an optional spectator.
package session

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
	"github.com/vovakirdan/kuzushi/internal/storage"
)

// HighScoreStore persists the best score.
type HighScoreStore interface {
	Load() int
	Save(score int) error
}

// RunRecorder stores finished runs.
type RunRecorder interface {
	SaveRun(run storage.RunRecord) (string, error)
}

// FramePublisher receives every frame the session produces.
// Publish must not block.
type FramePublisher interface {
	Publish(f kuzushi.Frame)
}

// Options configure a Session. Only Config is required.
type Options struct {
	Config    config.KuzushiConfig
	Seed      uint64 // 0 picks a time-based seed
	HighScore HighScoreStore
	Runs      RunRecorder
	Publisher FramePublisher
	Logger    *log.Logger
	Player    string // Player name used in logs
}

// Session is one player's game plus its collaborators.
// A Session is not safe for concurrent use.
type Session struct {
	game      *kuzushi.Game
	high      HighScoreStore
	runs      RunRecorder
	publisher FramePublisher
	logger    *log.Logger

	last     kuzushi.Frame
	quit     bool
	saved    int // High score last written to the store
	closed   bool
	lastSave error
}

// New creates a session on the title screen with the stored high score loaded.
func New(opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //#nosec G115 -- seed only needs to vary
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.Player != "" {
		logger = logger.With("player", opts.Player)
	}

	s := &Session{
		game:      kuzushi.New(opts.Config, seed),
		high:      opts.HighScore,
		runs:      opts.Runs,
		publisher: opts.Publisher,
		logger:    logger,
	}

	if s.high != nil {
		s.saved = s.high.Load()
		s.game.SetHighScore(s.saved)
	}
	s.logger.Debug("session created", "seed", seed, "highscore", s.saved)

	s.last = s.game.CurrentFrame()
	return s
}

// Advance runs one frame with the given input and returns it.
// After the player quits the last frame is returned unchanged.
func (s *Session) Advance(in core.InputFrame) kuzushi.Frame {
	if s.quit {
		return s.last
	}

	f := s.game.AdvanceFrame(in)
	s.last = f

	if f.RunEnded != nil {
		s.recordRun(*f.RunEnded)
	}
	if f.Quit {
		s.quit = true
		s.logger.Info("player quit", "score", f.Score, "highscore", f.High)
		s.saveHighScore()
	}
	if s.publisher != nil {
		s.publisher.Publish(f)
	}
	return f
}

// Frame returns the most recent frame.
func (s *Session) Frame() kuzushi.Frame {
	return s.last
}

// Game returns the underlying game.
func (s *Session) Game() *kuzushi.Game {
	return s.game
}

// Quit reports whether the player asked to leave.
func (s *Session) Quit() bool {
	return s.quit
}

// Close saves the high score if it improved. It is safe to call more than once.
func (s *Session) Close() error {
	if s.closed {
		return s.lastSave
	}
	s.closed = true
	s.saveHighScore()
	return s.lastSave
}

func (s *Session) recordRun(run kuzushi.RunSummary) {
	s.logger.Info("run ended",
		"outcome", run.Outcome,
		"score", run.Score,
		"level", run.Level,
		"lives", run.Lives,
		"frames", run.Frames,
	)
	if s.runs == nil {
		return
	}

	id, err := s.runs.SaveRun(storage.RunRecord{
		Outcome: string(run.Outcome),
		Score:   run.Score,
		Level:   run.Level,
		Lives:   run.Lives,
		Frames:  int64(run.Frames), //#nosec G115 -- frame count fits in int64
	})
	if err != nil {
		s.logger.Warn("could not record run", "error", err)
		return
	}
	s.logger.Debug("run recorded", "id", id)
}

func (s *Session) saveHighScore() {
	if s.high == nil {
		return
	}
	high := s.game.State().High
	if high <= s.saved {
		return
	}
	if err := s.high.Save(high); err != nil {
		s.lastSave = err
		s.logger.Warn("could not save high score", "error", err)
		return
	}
	s.saved = high
	s.lastSave = nil
	s.logger.Info("high score saved", "highscore", high)
}
