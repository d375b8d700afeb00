package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/platform/session"
)

// Model is the Bubble Tea model for one Block Kuzushi session.
type Model struct {
	session    *session.Session
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	held       *HeldKeys
	inputFrame core.InputFrame
	lastTick   time.Time
	quitting   bool
}

// NewModel creates a model that drives sess at cfg.TickRate frames per second.
func NewModel(sess *session.Session, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	return Model{
		session:    sess,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		held:       NewHeldKeys(DefaultHoldWindow),
		inputFrame: core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame, m.held, time.Now()) {
		// Let the game see the quit so the session saves the high score.
		m.session.Advance(m.inputFrame)
		m.inputFrame.Clear()
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick advances the session by one frame.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	dt := time.Second / time.Duration(m.config.TickRate)
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	m.held.Apply(&m.inputFrame, now)
	m.inputFrame.DT = dt.Seconds()

	f := m.session.Advance(m.inputFrame)
	m.inputFrame.Clear()

	if f.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to ~/.kuzushi/screenshots.
func (m *Model) saveScreenshot() {
	m.draw()

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".kuzushi", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("kuzushi_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m *Model) draw() {
	cfg := m.session.Game().Config()
	Rasterize(m.screen, m.session.Frame().Commands, cfg.Screen.Width, cfg.Screen.Height)
}

// Quitting reports whether the player left the game.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current frame to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for sess and closes it when done.
func Run(sess *session.Session, cfg core.RuntimeConfig) error {
	model := NewModel(sess, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	if closeErr := sess.Close(); err == nil {
		err = closeErr
	}
	return err
}
