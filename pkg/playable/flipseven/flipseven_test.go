package flipseven

import (
	"context"
	"fmt"
	"testing"

	"flip7-server/pkg/deck"
	"flip7-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const blockAnswer = "<block>"

type testPlayer struct {
	id   int64
	name string
}

func (t testPlayer) GetPlayerID() int64 {
	return t.id
}

func (t testPlayer) GetName() string {
	return t.name
}

type fakeTable struct {
	answers         map[int64][]string
	defaultAnswer   string
	disconnected    map[int64]bool
	disconnectOnAsk map[int64]bool

	prompts   []int64
	broadcast []*playable.Response
	told      map[int64][]*playable.Response
}

func newFakeTable() *fakeTable {
	return &fakeTable{
		answers:         make(map[int64][]string),
		defaultAnswer:   "n",
		disconnected:    make(map[int64]bool),
		disconnectOnAsk: make(map[int64]bool),
		told:            make(map[int64][]*playable.Response),
	}
}

func (f *fakeTable) AskYesNo(ctx context.Context, playerID int64, prompt string) (string, error) {
	f.prompts = append(f.prompts, playerID)
	if f.disconnectOnAsk[playerID] {
		f.disconnected[playerID] = true
		return "", playable.ErrDisconnected
	}

	answer := f.defaultAnswer
	if q := f.answers[playerID]; len(q) > 0 {
		answer = q[0]
		f.answers[playerID] = q[1:]
	}

	if answer == blockAnswer {
		<-ctx.Done()
		return "", ctx.Err()
	}

	return answer, nil
}

func (f *fakeTable) Tell(playerID int64, msg *playable.Response) {
	f.told[playerID] = append(f.told[playerID], msg)
}

func (f *fakeTable) Broadcast(msg *playable.Response, except ...int64) {
	f.broadcast = append(f.broadcast, msg)
}

func (f *fakeTable) IsConnected(playerID int64) bool {
	return !f.disconnected[playerID]
}

func (f *fakeTable) keys() []string {
	keys := make([]string, len(f.broadcast))
	for i, msg := range f.broadcast {
		keys[i] = msg.Key
	}

	return keys
}

func testPlayers(n int) []playable.Player {
	players := make([]playable.Player, n)
	for i := range players {
		players[i] = testPlayer{id: int64(i + 1), name: fmt.Sprintf("Player %d", i+1)}
	}

	return players
}

// setupTestGame returns a game whose rounds are dealt from the given decks, in order
func setupTestGame(t *testing.T, table *fakeTable, nPlayers int, opts Options, decks ...string) *Game {
	t.Helper()

	g, err := NewGame(logrus.StandardLogger(), table, testPlayers(nPlayers), opts)
	if err != nil {
		t.Fatal(err)
	}

	if len(decks) > 0 {
		g.newDeck = func(round int) *deck.Deck {
			idx := round - 1
			if idx >= len(decks) {
				idx = len(decks) - 1
			}

			return deck.Stack(deck.CardsFromString(decks[idx])...)
		}
	}

	return g
}

// startRound deals the first round without playing it
func startRound(g *Game) {
	g.round++
	g.deck = g.newDeck(g.round)
	g.discard = &deck.Pile{}
	for _, p := range g.participants {
		p.resetRound()
	}
}

func uniqueNumbers(p *Participant) []int {
	values := make([]int, 0, len(p.uniqueNumbers))
	for v := 0; v <= 12; v++ {
		if p.uniqueNumbers[v] {
			values = append(values, v)
		}
	}

	return values
}
