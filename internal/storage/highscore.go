package storage

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// DefaultHighScorePath is where the high score lives unless overridden.
const DefaultHighScorePath = "highscore.txt"

// HighScoreFile stores the best score as a single human-readable number.
type HighScoreFile struct {
	mu   sync.Mutex
	path string
}

// NewHighScoreFile creates a store backed by path. A leading ~ is expanded.
func NewHighScoreFile(path string) (*HighScoreFile, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &HighScoreFile{path: expanded}, nil
}

// Path returns the file location.
func (h *HighScoreFile) Path() string {
	return h.path
}

// Load returns the stored high score. A missing, unreadable or malformed file
// yields 0, as does a negative, non-finite or out of range value.
// Text after the leading number is ignored, so "123abc" loads as 123.
func (h *HighScoreFile) Load() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(leadingNumber(string(data)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= math.MaxInt {
		return 0
	}
	return int(v)
}

// leadingNumber returns the decimal number at the start of s, skipping
// leading whitespace: an optional sign, digits, an optional fraction and an
// optional exponent.
func leadingNumber(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := 0
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}

	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	n := digits()
	if i < len(s) && s[i] == '.' {
		i++
		n += digits()
	}
	if n == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		mark := i
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			i = mark
		}
	}
	return s[:i]
}

// Save overwrites the file with score.
func (h *HighScoreFile) Save(score int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if dir := filepath.Dir(h.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}
	data := fmt.Sprintf("%.0f\n", float64(score))
	if err := os.WriteFile(h.path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	return nil
}
