package kuzushi

import "github.com/vovakirdan/kuzushi/internal/core"

// konamiSequence is up up down down left right left right B A.
var konamiSequence = [...]core.Action{
	core.ActionUp, core.ActionUp,
	core.ActionDown, core.ActionDown,
	core.ActionLeft, core.ActionRight,
	core.ActionLeft, core.ActionRight,
	core.ActionB, core.ActionA,
}

// CheatCode tracks progress through the cheat sequence.
type CheatCode struct {
	index int
}

// Feed advances the sequence with one key press and reports completion.
// Any press that does not continue the sequence starts it over.
func (c *CheatCode) Feed(a core.Action) bool {
	if a == konamiSequence[c.index] {
		c.index++
		if c.index == len(konamiSequence) {
			c.index = 0
			return true
		}
		return false
	}
	c.index = 0
	return false
}

// Reset starts the sequence over.
func (c *CheatCode) Reset() {
	c.index = 0
}
