package room

import (
	"context"
	"testing"
	"time"

	"flip7-server/pkg/playable"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func setupTestTable(names ...string) (*gameTable, []*Client) {
	clients := make([]*Client, len(names))
	for i, name := range names {
		clients[i] = NewClient(name)
	}

	d := NewDealer(logrus.StandardLogger(), Options{})
	return newGameTable(d, clients), clients
}

func TestGameTable_AskYesNo(t *testing.T) {
	a := assert.New(t)
	table, clients := setupTestTable("Alice")
	c := clients[0]

	// typed before the prompt, so discarded
	c.answer("n")

	go func() {
		msg := <-c.SendChan()
		if msg.Key == "prompt" {
			c.answer("y")
		}
	}()

	answer, err := table.AskYesNo(context.Background(), c.ID, "Draw a card? (y/n)")
	a.NoError(err)
	a.Equal("y", answer)
}

func TestGameTable_AskYesNo_disconnected(t *testing.T) {
	a := assert.New(t)
	table, clients := setupTestTable("Alice")
	c := clients[0]

	go func() {
		<-c.SendChan()
		c.markDone()
	}()

	_, err := table.AskYesNo(context.Background(), c.ID, "Draw a card? (y/n)")
	a.Equal(playable.ErrDisconnected, err)

	_, err = table.AskYesNo(context.Background(), c.ID, "Draw a card? (y/n)")
	a.Equal(playable.ErrDisconnected, err)

	_, err = table.AskYesNo(context.Background(), 12345, "Draw a card? (y/n)")
	a.Equal(playable.ErrDisconnected, err)
}

func TestGameTable_AskYesNo_timeout(t *testing.T) {
	a := assert.New(t)
	table, clients := setupTestTable("Alice")
	c := clients[0]

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*10)
	defer cancel()

	_, err := table.AskYesNo(ctx, c.ID, "Draw a card? (y/n)")
	a.Equal(context.DeadlineExceeded, err)

	a.Equal("prompt", (<-c.SendChan()).Key)
	a.Equal("timeout", (<-c.SendChan()).Key)
}

func TestGameTable_Broadcast(t *testing.T) {
	a := assert.New(t)
	table, clients := setupTestTable("Alice", "Bob")

	table.Broadcast(playable.NewResponse("waiting", nil, "It's Alice's turn..."), clients[0].ID)
	a.Len(clients[0].SendChan(), 0)
	a.Len(clients[1].SendChan(), 1)
	a.Empty(table.dealer.recentLogMessages())

	table.Broadcast(playable.NewResponse("draw", nil, "Alice drew [7]"))
	a.Len(clients[0].SendChan(), 1)
	a.Len(clients[1].SendChan(), 2)

	history := table.dealer.recentLogMessages()
	a.Len(history, 1)
	a.Equal("Alice drew [7]", history[0].Message)

	table.Tell(clients[1].ID, playable.OK())
	a.Len(clients[1].SendChan(), 3)

	a.True(table.IsConnected(clients[0].ID))
	clients[0].markDone()
	a.False(table.IsConnected(clients[0].ID))
	a.False(table.IsConnected(999))
	a.Equal([]playable.Player{clients[0], clients[1]}, table.players())
}
