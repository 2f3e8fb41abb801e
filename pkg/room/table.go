package room

import (
	"context"
	"errors"

	"flip7-server/pkg/playable"
)

// gameTable connects a running game to the clients that were in the lobby when it started
type gameTable struct {
	dealer  *Dealer
	order   []*Client
	clients map[int64]*Client
}

func newGameTable(d *Dealer, clients []*Client) *gameTable {
	t := &gameTable{
		dealer:  d,
		order:   clients,
		clients: make(map[int64]*Client, len(clients)),
	}

	for _, c := range clients {
		t.clients[c.ID] = c
	}

	return t
}

func (t *gameTable) players() []playable.Player {
	players := make([]playable.Player, len(t.order))
	for i, c := range t.order {
		players[i] = c
	}

	return players
}

// AskYesNo implements playable.Table
// Anything the player typed before the prompt is discarded.
func (t *gameTable) AskYesNo(ctx context.Context, playerID int64, prompt string) (string, error) {
	c, ok := t.clients[playerID]
	if !ok || c.IsDone() {
		return "", playable.ErrDisconnected
	}

	c.drainAnswers()
	c.Send(&playable.Response{Key: "prompt", Value: prompt})

	select {
	case answer := <-c.answers:
		return answer, nil
	case <-c.Done():
		return "", playable.ErrDisconnected
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.Send(&playable.Response{Key: "timeout", Value: "Time is up! You stop for this round."})
		}

		return "", ctx.Err()
	}
}

// Tell implements playable.Table
func (t *gameTable) Tell(playerID int64, msg *playable.Response) {
	if c, ok := t.clients[playerID]; ok {
		c.Send(msg)
	}
}

// Broadcast implements playable.Table
// Messages sent to everyone are kept in the dealer's history for players joining the next lobby.
func (t *gameTable) Broadcast(msg *playable.Response, except ...int64) {
	skip := make(map[int64]bool, len(except))
	for _, id := range except {
		skip[id] = true
	}

	for _, c := range t.order {
		if !skip[c.ID] {
			c.Send(msg)
		}
	}

	if len(except) == 0 {
		t.dealer.addLogMessages(playable.LogMessageFromResponse(msg))
	}
}

// IsConnected implements playable.Table
func (t *gameTable) IsConnected(playerID int64) bool {
	c, ok := t.clients[playerID]
	return ok && !c.IsDone()
}
