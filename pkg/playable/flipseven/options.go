package flipseven

import (
	"errors"
	"time"
)

// Options contains options for creating a new game of Flip 7
type Options struct {
	// TargetScore ends the match after the round in which any player reaches it
	TargetScore int
	// WinThreshold is the number of distinct numbers that wins the round outright
	WinThreshold int
	// FlipThreeDraws is how many forced draws a Flip Three card adds
	FlipThreeDraws int
	// PromptTimeout bounds how long a draw-or-stop prompt waits. Zero waits forever.
	PromptTimeout time.Duration
	// MinActivePlayers is the number of connected players needed to start another round
	MinActivePlayers int
	MaxPlayers       int
	// Seed makes shuffling deterministic when non-zero
	Seed int64
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		TargetScore:      200,
		WinThreshold:     7,
		FlipThreeDraws:   3,
		PromptTimeout:    time.Minute * 2,
		MinActivePlayers: 1,
		MaxPlayers:       18,
	}
}

func (o Options) validate() error {
	if o.TargetScore <= 0 {
		return errors.New("target score must be > 0")
	}

	if o.WinThreshold <= 0 {
		return errors.New("win threshold must be > 0")
	}

	if o.FlipThreeDraws < 0 {
		return errors.New("flip three draws cannot be negative")
	}

	if o.MinActivePlayers < 1 {
		return errors.New("min active players must be >= 1")
	}

	if o.MaxPlayers < 1 {
		return errors.New("max players must be >= 1")
	}

	return nil
}
