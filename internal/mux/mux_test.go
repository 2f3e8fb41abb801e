package mux

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"flip7-server/pkg/playable"
	"flip7-server/pkg/room"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func setupTestPitBoss(t *testing.T) *room.PitBoss {
	t.Helper()
	pb := room.NewPitBoss(room.NewDealer(logrus.StandardLogger(), room.Options{
		GameName:       "flip7",
		StartGameDelay: time.Hour,
	}))
	pb.StartShift()
	t.Cleanup(pb.EndShift)

	return pb
}

func dialWS(t *testing.T, ts *httptest.Server, name string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws?name=" + name
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
	})

	return conn
}

func readKey(t *testing.T, conn *websocket.Conn, key string) *playable.Response {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second * 5))
	for {
		var msg playable.Response
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatal(err)
		}

		if msg.Key == key {
			return &msg
		}
	}
}

func TestMux_ws(t *testing.T) {
	a := assert.New(t)
	pb := setupTestPitBoss(t)
	ts := httptest.NewServer(NewMux("", pb))
	defer ts.Close()

	alice := dialWS(t, ts, "Alice")
	msg := readKey(t, alice, "welcome")
	a.Contains(msg.Value, "Welcome Alice! You are the host.")

	bob := dialWS(t, ts, "Bob")
	readKey(t, bob, "welcome")
	msg = readKey(t, alice, "playerJoined")
	a.Equal("Bob joined the lobby (2 players)", msg.Value)

	var players []lobbyPlayer
	assertGet(t, ts, "/lobby", &players, 200)
	if a.Len(players, 2) {
		a.Equal("Alice", players[0].Name)
		a.True(players[0].IsHost)
		a.Equal("Bob", players[1].Name)
		a.False(players[1].IsHost)
	}

	// unknown actions are answered with an error
	a.NoError(bob.WriteJSON(&playable.PayloadIn{Action: "fold", Context: "abc"}))
	msg = readKey(t, bob, "error")
	a.Equal("unknown action: fold", msg.Value)
	a.Equal("abc", msg.Context)

	a.NoError(bob.WriteJSON(&playable.PayloadIn{Action: "start"}))
	msg = readKey(t, bob, "error")
	a.Equal(room.ErrNotHost.Error(), msg.Value)

	a.NoError(alice.WriteJSON(&playable.PayloadIn{Action: "start"}))
	readKey(t, bob, "gameStarting")

	_ = bob.Close()
	readKey(t, alice, "playerLeft")

	var health healthResponse
	assertGet(t, ts, "/health", &health, 200)
	a.Equal(1, health.LobbySize)
}
