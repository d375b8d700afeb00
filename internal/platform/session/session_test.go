package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
	"github.com/vovakirdan/kuzushi/internal/storage"
)

type memHighScore struct {
	value int
	saves int
	err   error
}

func (m *memHighScore) Load() int { return m.value }

func (m *memHighScore) Save(score int) error {
	if m.err != nil {
		return m.err
	}
	m.value = score
	m.saves++
	return nil
}

type memRuns struct {
	runs []storage.RunRecord
}

func (m *memRuns) SaveRun(run storage.RunRecord) (string, error) {
	m.runs = append(m.runs, run)
	return "id", nil
}

type memPublisher struct {
	frames []kuzushi.Frame
}

func (m *memPublisher) Publish(f kuzushi.Frame) {
	m.frames = append(m.frames, f)
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Press(a)
	}
	return in
}

func TestSessionLoadsHighScore(t *testing.T) {
	hs := &memHighScore{value: 4200}
	s := New(Options{Config: config.DefaultKuzushiConfig(), Seed: 1, HighScore: hs})

	if got := s.Frame().High; got != 4200 {
		t.Errorf("initial frame high = %d, want 4200", got)
	}
	if s.Frame().Phase != "not_started" {
		t.Errorf("initial phase = %q", s.Frame().Phase)
	}
}

func TestSessionRecordsEndedRun(t *testing.T) {
	// An empty grid is cleared on the first playing frame.
	cfg := config.DefaultKuzushiConfig()
	cfg.Grid.Rows = 0

	runs := &memRuns{}
	pub := &memPublisher{}
	s := New(Options{Config: cfg, Seed: 1, Runs: runs, Publisher: pub})

	s.Advance(press(core.ActionConfirm))
	f := s.Advance(core.NewInputFrame())

	if f.Phase != "won" {
		t.Fatalf("phase = %q, want won", f.Phase)
	}
	if len(runs.runs) != 1 {
		t.Fatalf("recorded %d runs, want 1", len(runs.runs))
	}
	if runs.runs[0].Outcome != "won" || runs.runs[0].Level != 1 {
		t.Errorf("recorded run = %+v", runs.runs[0])
	}
	if len(pub.frames) != 2 {
		t.Errorf("published %d frames, want 2", len(pub.frames))
	}

	s.Advance(core.NewInputFrame())
	if len(runs.runs) != 1 {
		t.Error("run recorded more than once")
	}
}

func TestSessionSavesHighScoreOnQuit(t *testing.T) {
	hs := &memHighScore{value: 100}
	s := New(Options{Config: config.DefaultKuzushiConfig(), Seed: 1, HighScore: hs})
	s.Game().SetHighScore(900)

	f := s.Advance(press(core.ActionQuit))
	if !f.Quit || !s.Quit() {
		t.Fatal("expected quit")
	}
	if hs.value != 900 || hs.saves != 1 {
		t.Errorf("high score = %d after %d saves, want 900 after 1", hs.value, hs.saves)
	}

	// Close does not write an unchanged score again.
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if hs.saves != 1 {
		t.Errorf("saves = %d, want 1", hs.saves)
	}

	// Frames after quit are frozen.
	if got := s.Advance(press(core.ActionConfirm)); got.Seq != f.Seq {
		t.Errorf("seq advanced after quit: %d -> %d", f.Seq, got.Seq)
	}
}

func TestSessionCloseSkipsUnchangedScore(t *testing.T) {
	hs := &memHighScore{value: 500}
	s := New(Options{Config: config.DefaultKuzushiConfig(), Seed: 1, HighScore: hs})

	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}
	if hs.saves != 0 {
		t.Errorf("saves = %d, want 0", hs.saves)
	}
}

func TestSessionCloseReportsSaveError(t *testing.T) {
	hs := &memHighScore{err: errors.New("disk full")}
	s := New(Options{Config: config.DefaultKuzushiConfig(), Seed: 1, HighScore: hs})
	s.Game().SetHighScore(10)

	if err := s.Close(); err == nil {
		t.Error("expected save error from Close()")
	}
}

func TestSessionWithRealStores(t *testing.T) {
	dir := t.TempDir()
	hs, err := storage.NewHighScoreFile(filepath.Join(dir, "highscore.txt"))
	if err != nil {
		t.Fatal(err)
	}
	store, err := storage.Open(filepath.Join(dir, "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	cfg := config.DefaultKuzushiConfig()
	cfg.Grid.Rows = 0
	s := New(Options{Config: cfg, Seed: 3, HighScore: hs, Runs: store})
	s.Game().SetHighScore(1234)

	s.Advance(press(core.ActionConfirm))
	s.Advance(core.NewInputFrame())
	if err := s.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	if got := hs.Load(); got != 1234 {
		t.Errorf("high score file = %d, want 1234", got)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Outcome != "won" {
		t.Errorf("runs = %+v", runs)
	}
}
