package flipseven

import (
	"errors"
	"fmt"
)

// ErrEmptyResources is when a player must draw but the deck and the discard pile are both empty
var ErrEmptyResources = errors.New("deck and discard pile are empty")

// ErrGameIsOver is returned when Run is called on an ended game
var ErrGameIsOver = errors.New("game is over")

// ErrNotEnoughPlayers is when too few connected players remain to continue
var ErrNotEnoughPlayers = errors.New("not enough connected players")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError struct {
	Min int
	Max int
	Got int
}

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected between %d and %d players, got %d", p.Min, p.Max, p.Got)
}

// InvalidStateError is returned when a turn is requested for a player who cannot take one.
// It always indicates a bug in the caller.
type InvalidStateError struct {
	PlayerID int64
	State    TurnState
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("player %d cannot take a turn in state %s", e.PlayerID, e.State)
}
