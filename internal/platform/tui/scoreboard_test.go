package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kuzushi/internal/storage"
)

type fakeRuns struct {
	top    []storage.RunRecord
	recent []storage.RunRecord
	stats  *storage.RunStats
	err    error
}

func (f *fakeRuns) TopRuns(int) ([]storage.RunRecord, error)    { return f.top, f.err }
func (f *fakeRuns) RecentRuns(int) ([]storage.RunRecord, error) { return f.recent, f.err }
func (f *fakeRuns) Stats() (*storage.RunStats, error)           { return f.stats, f.err }

func TestScoreboardToggle(t *testing.T) {
	when := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	src := &fakeRuns{
		top: []storage.RunRecord{
			{Outcome: "won", Score: 5600, Level: 2, CreatedAt: when},
			{Outcome: "lost", Score: 300, Level: 1, CreatedAt: when},
		},
		recent: []storage.RunRecord{
			{Outcome: "lost", Score: 300, Level: 1, CreatedAt: when},
		},
		stats: &storage.RunStats{Runs: 2, Wins: 1, BestScore: 5600, AvgScore: 2950, BestLevel: 2},
	}

	m := NewScoreboardModel(src, 80, 24)
	if m.Order() != OrderTop || len(m.Runs()) != 2 {
		t.Fatalf("initial order %v with %d runs", m.Order(), len(m.Runs()))
	}

	view := m.View()
	for _, want := range []string{"TOP RUNS", "5600", "2 runs, 1 won"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if m.Order() != OrderRecent || len(m.Runs()) != 1 {
		t.Errorf("after toggle: order %v with %d runs", m.Order(), len(m.Runs()))
	}
	if !strings.Contains(m.View(), "RECENT RUNS") {
		t.Error("title not updated after toggle")
	}
}

func TestScoreboardEmptyAndError(t *testing.T) {
	tests := []struct {
		name string
		src  RunSource
		want string
	}{
		{"no runs", &fakeRuns{stats: &storage.RunStats{}}, "No runs recorded yet"},
		{"store error", &fakeRuns{err: errors.New("disk gone")}, "disk gone"},
		{"no store", nil, "No runs recorded yet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewScoreboardModel(tt.src, 80, 24)
			if !strings.Contains(m.View(), tt.want) {
				t.Errorf("view missing %q", tt.want)
			}
		})
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(&fakeRuns{}, 80, 24)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("view should be empty after quit")
	}
}

func TestRunRows(t *testing.T) {
	rows := RunRows([]storage.RunRecord{
		{Outcome: "won", Score: 100, Level: 3, CreatedAt: time.Now()},
	})
	if len(rows) != 1 {
		t.Fatalf("got %d rows", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "100" || rows[0][2] != "won" || rows[0][3] != "3" {
		t.Errorf("row = %v", rows[0])
	}
}
