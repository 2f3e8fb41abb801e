package room

import (
	"testing"
	"time"

	"flip7-server/pkg/playable"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const testTimeout = time.Second * 5

func setupTestPitBoss(t *testing.T, opts Options) *PitBoss {
	t.Helper()
	if opts.GameName == "" {
		opts.GameName = "flip7"
	}

	pb := NewPitBoss(NewDealer(logrus.StandardLogger(), opts))
	pb.StartShift()
	t.Cleanup(pb.EndShift)

	return pb
}

// waitForKey reads messages until one with the given key arrives
func waitForKey(t *testing.T, c *Client, key string) *playable.Response {
	t.Helper()
	timeout := time.After(testTimeout)
	for {
		select {
		case msg := <-c.SendChan():
			if msg.Key == key {
				return msg
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", key)
			return nil
		}
	}
}

func waitForLobbySize(t *testing.T, d *Dealer, n int) {
	t.Helper()
	assert.Eventually(t, func() bool {
		return d.LobbySize() == n
	}, testTimeout, time.Millisecond)
}

func TestDealer_lobby(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{})

	c1 := NewClient("Alice")
	c2 := NewClient("Bob")
	pb.ClientConnected(c1)
	pb.ClientConnected(c2)
	waitForLobbySize(t, pb.Dealer(), 2)

	welcome := waitForKey(t, c1, "welcome")
	a.Contains(welcome.Value, "You are the host")
	joined := waitForKey(t, c1, "playerJoined")
	a.Equal("Bob joined the lobby (2 players)", joined.Value)

	welcome = waitForKey(t, c2, "welcome")
	a.Contains(welcome.Value, "Waiting for the host")
	a.Equal([]*Client{c1, c2}, pb.Dealer().Clients())

	// lines other than START are ignored in the lobby
	c1.ReceivedLine("hello")

	// the host leaves and the next client takes over
	pb.ClientDisconnected(c1)
	waitForLobbySize(t, pb.Dealer(), 1)
	left := waitForKey(t, c2, "playerLeft")
	a.Equal("Alice left the lobby (1 players)", left.Value)
	waitForKey(t, c2, "host")
	a.True(c1.IsDone())
}

func TestDealer_onlyHostStarts(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{StartGameDelay: time.Hour})

	c1 := NewClient("Alice")
	c2 := NewClient("Bob")
	pb.ClientConnected(c1)
	pb.ClientConnected(c2)
	waitForLobbySize(t, pb.Dealer(), 2)

	c2.ReceivedLine("start")
	msg := waitForKey(t, c2, "error")
	a.Equal(ErrNotHost.Error(), msg.Value)

	c1.ReceivedLine(" Start ")
	msg = waitForKey(t, c2, "gameStarting")
	a.Equal("Flip 7 (first to 200) starts in 1h0m0s with 2 players", msg.Value)
}

func TestDealer_lobbyFull(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{MaxClients: 1})

	c1 := NewClient("Alice")
	c2 := NewClient("Bob")
	pb.ClientConnected(c1)
	pb.ClientConnected(c2)

	select {
	case reason := <-c2.Close:
		a.Equal(ErrLobbyFull.Error(), reason)
	case <-time.After(testTimeout):
		t.Fatal("expected the second client to be refused")
	}

	a.Equal(1, pb.Dealer().LobbySize())
}

func TestDealer_playGame(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{StartGameDelay: time.Millisecond})

	c1 := NewClient("Alice")
	pb.ClientConnected(c1)
	waitForLobbySize(t, pb.Dealer(), 1)

	c1.ReceivedMessage(&playable.PayloadIn{
		Action: "start",
		AdditionalData: playable.AdditionalData{
			"targetScore": float64(1),
		},
	})

	waitForKey(t, c1, "gameStarting")
	waitForKey(t, c1, "prompt")

	// nobody can join a running game
	late := NewClient("Latecomer")
	pb.ClientConnected(late)
	select {
	case reason := <-late.Close:
		a.Equal(ErrGameInProgress.Error(), reason)
	case <-time.After(testTimeout):
		t.Fatal("expected the late client to be refused")
	}

	// any line during a turn answers the prompt, even a start request
	c1.ReceivedMessage(&playable.PayloadIn{Action: "start"})
	stop := waitForKey(t, c1, "stop")
	a.Equal("Alice stops with 0 points", stop.Value)

	// keep drawing until the game is over
	timeout := time.After(testTimeout)
	var ended *playable.Response
	for ended == nil {
		select {
		case msg := <-c1.SendChan():
			switch msg.Key {
			case "prompt":
				c1.ReceivedMessage(&playable.PayloadIn{Action: "draw"})
			case "gameEnded":
				ended = msg
			}
		case <-timeout:
			t.Fatal("game did not end")
		}
	}

	scores, ok := ended.Data.(map[int64]int)
	a.True(ok)
	a.GreaterOrEqual(scores[c1.ID], 1)
	waitForKey(t, c1, "host")

	// the lobby is open again and new clients get the history of the last game
	c2 := NewClient("Bob")
	pb.ClientConnected(c2)
	waitForKey(t, c2, "welcome")
	history := waitForKey(t, c2, "history")
	messages, ok := history.Data.([]*playable.LogMessage)
	a.True(ok)
	a.NotEmpty(messages)
	a.LessOrEqual(len(messages), logMessageLimit)
	a.Contains(history.Value, "Alice wins the game!")
}

func TestDealer_cancelPendingGame(t *testing.T) {
	pb := setupTestPitBoss(t, Options{StartGameDelay: time.Millisecond * 50})

	c1 := NewClient("Alice")
	pb.ClientConnected(c1)
	waitForLobbySize(t, pb.Dealer(), 1)
	c1.ReceivedLine("START")
	waitForKey(t, c1, "gameStarting")

	pb.ClientDisconnected(c1)
	waitForLobbySize(t, pb.Dealer(), 0)

	// the timer fires into an empty lobby and nothing is dealt
	time.Sleep(time.Millisecond * 100)
	c2 := NewClient("Bob")
	pb.ClientConnected(c2)
	msg := waitForKey(t, c2, "welcome")
	assert.Contains(t, msg.Value, "You are the host")
}

func TestDealer_addLogMessages(t *testing.T) {
	a := assert.New(t)
	d := NewDealer(logrus.StandardLogger(), Options{})
	for i := 0; i < logMessageLimit+5; i++ {
		d.addLogMessages(playable.SimpleLogMessage(0, "message %d", i))
	}

	messages := d.recentLogMessages()
	a.Len(messages, logMessageLimit)
	a.Equal("message 5", messages[0].Message)
	a.Equal("message 29", messages[logMessageLimit-1].Message)
}

func TestDealer_historyReachesNewClients(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{})
	pb.Dealer().addLogMessages(
		playable.SimpleLogMessage(0, "Alice: +42 (total: 180)"),
		playable.SimpleLogMessage(0, "Alice wins the game!"),
	)

	c := NewClient("Bob")
	pb.ClientConnected(c)
	history := waitForKey(t, c, "history")
	a.Equal("--- last game ---\nAlice: +42 (total: 180)\nAlice wins the game!", history.Value)
}

func TestDealer_StartGame_acknowledged(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t, Options{StartGameDelay: time.Hour})

	c1 := NewClient("Alice")
	c2 := NewClient("Bob")
	pb.ClientConnected(c1)
	pb.ClientConnected(c2)
	waitForLobbySize(t, pb.Dealer(), 2)

	c2.ReceivedMessage(&playable.PayloadIn{Action: "start", Context: "bob-1"})
	msg := waitForKey(t, c2, "error")
	a.Equal("bob-1", msg.Context)

	c1.ReceivedMessage(&playable.PayloadIn{Action: "start", Context: "alice-1"})
	msg = waitForKey(t, c1, "status")
	a.Equal("OK", msg.Value)
	a.Equal("alice-1", msg.Context)
}
