package kuzushi

// Tracker records score, high score and lives.
type Tracker struct {
	Score int
	High  int
	Lives int

	startLives int
	points     int
}

// NewTracker creates a tracker with startLives lives and a known high score.
func NewTracker(startLives, pointsPerBlock, high int) *Tracker {
	return &Tracker{
		Lives:      startLives,
		High:       high,
		startLives: startLives,
		points:     pointsPerBlock,
	}
}

// ResetScore zeroes the score for a new run or level.
func (t *Tracker) ResetScore() {
	t.Score = 0
}

// ResetLives restores the starting lives.
func (t *Tracker) ResetLives() {
	t.Lives = t.startLives
}

// AwardBlock adds the points for one destroyed block.
func (t *Tracker) AwardBlock() {
	t.Score += t.points
	t.observe()
}

// LoseLife removes one life.
func (t *Tracker) LoseLife() {
	t.Lives--
}

// AddLives grants extra lives.
func (t *Tracker) AddLives(n int) {
	t.Lives += n
}

// Depleted clamps lives at zero and reports whether none are left.
func (t *Tracker) Depleted() bool {
	if t.Lives <= 0 {
		t.Lives = 0
		return true
	}
	return false
}

// observe keeps High as the maximum score seen.
func (t *Tracker) observe() {
	if t.Score > t.High {
		t.High = t.Score
	}
}
