package playable

import (
	"context"
	"errors"
)

// ErrDisconnected is returned when a player's connection is no longer usable
var ErrDisconnected = errors.New("player is disconnected")

// Player is a player in a playable game
type Player interface {
	GetPlayerID() int64
	GetName() string
}

// Table is how a game talks to the people sitting at it
// Tell and Broadcast never block; messages to disconnected players are dropped.
type Table interface {
	// AskYesNo sends the prompt to the player and waits for the answer.
	// ErrDisconnected is returned if the player goes away while the prompt is pending.
	AskYesNo(ctx context.Context, playerID int64, prompt string) (string, error)

	// Tell sends a message to a single player
	Tell(playerID int64, msg *Response)

	// Broadcast sends a message to everyone except the listed players
	Broadcast(msg *Response, except ...int64)

	// IsConnected returns false once the player's connection is gone
	IsConnected(playerID int64) bool
}
