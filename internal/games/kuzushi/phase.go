package kuzushi

// Phase is the game flow state, derived every frame from Flags.
type Phase int

const (
	PhaseNotStarted Phase = iota // Title menu
	PhasePlaying                 // A run is in progress
	PhaseWon                     // Every block cleared
	PhaseLost                    // Out of lives
)

// String returns the phase name used in logs and spectator frames.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Flags are the stored facts a Phase is derived from.
type Flags struct {
	Started bool
	Alive   bool
	Won     bool
}

// DerivePhase maps flags to a phase.
// Precedence: not started, then lost (only while not won), then won, else playing.
// A frame that both empties lives and clears the grid therefore yields PhaseWon.
func DerivePhase(f Flags) Phase {
	switch {
	case !f.Started:
		return PhaseNotStarted
	case !f.Alive && !f.Won:
		return PhaseLost
	case f.Won:
		return PhaseWon
	default:
		return PhasePlaying
	}
}

// Menu is a vertical list with a wrapping cursor.
type Menu struct {
	Options []string
	Cursor  int
}

// Up moves the cursor up, wrapping to the bottom.
func (m *Menu) Up() {
	m.Cursor--
	if m.Cursor < 0 {
		m.Cursor = len(m.Options) - 1
	}
}

// Down moves the cursor down, wrapping to the top.
func (m *Menu) Down() {
	m.Cursor++
	if m.Cursor >= len(m.Options) {
		m.Cursor = 0
	}
}
