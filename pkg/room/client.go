package room

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"flip7-server/internal/util"
	"flip7-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

var lastClientID int64

// Client is a client connected to the server
// The transport (websocket or raw TCP) owns the connection and pumps SendChan() out to it.
type Client struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// send is a channel for sending messages to the client
	send chan *playable.Response

	// answers holds the latest line received while a game is running
	answers chan string

	// Close is a channel for closing the client
	// The string is the reason sent to the client before the connection is dropped
	Close chan string `json:"-"`

	done      chan struct{}
	closeOnce sync.Once

	dealer *Dealer
}

// NewClient returns a new client object
// If name is empty, a random name is chosen
func NewClient(name string) *Client {
	name = strings.TrimSpace(name)
	if name == "" {
		name = util.GetRandomName()
	}

	return &Client{
		ID:      atomic.AddInt64(&lastClientID, 1),
		Name:    name,
		send:    make(chan *playable.Response, 256),
		answers: make(chan string, 1),
		Close:   make(chan string, 1),
		done:    make(chan struct{}),
	}
}

// GetPlayerID returns the client ID
func (c *Client) GetPlayerID() int64 {
	return c.ID
}

// GetName returns the display name
func (c *Client) GetName() string {
	return c.Name
}

// Send send a message to the client
// Messages are dropped if the client is gone or not keeping up
func (c *Client) Send(msg *playable.Response) bool {
	if c.IsDone() {
		return false
	}

	select {
	case c.send <- msg:
		return true
	default:
		logrus.WithField("client", c.String()).WithField("key", msg.Key).Warn("dropping message")
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan *playable.Response {
	return c.send
}

// Done is closed once the client has disconnected
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// IsDone returns true once the client has disconnected
func (c *Client) IsDone() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// markDone closes the done channel. It is safe to call more than once.
func (c *Client) markDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// kick asks the transport to close the connection with the given reason
func (c *Client) kick(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.ID, c.Name)
}

// ReceivedLine is called when the server receives a line of text from a connected client
func (c *Client) ReceivedLine(line string) {
	if c.dealer == nil {
		logrus.WithField("line", line).Warn("received line, but dealer not found")
		return
	}

	c.dealer.ReceivedLine(c, line)
}

// ReceivedMessage is called when the server receives a structured message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if strings.EqualFold(msg.Action, "start") && c.dealer != nil {
		c.dealer.StartGame(c, msg.AdditionalData, msg.Context)
		return
	}

	line, ok := LineFromPayload(msg)
	if !ok {
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
		return
	}

	c.ReceivedLine(line)
}

// answer stores the line in the response slot, replacing anything not yet read
func (c *Client) answer(line string) {
	for {
		select {
		case c.answers <- line:
			return
		default:
		}

		select {
		case <-c.answers:
		default:
		}
	}
}

// drainAnswers discards anything typed before a prompt was sent
func (c *Client) drainAnswers() {
	for {
		select {
		case <-c.answers:
		default:
			return
		}
	}
}

// LineFromPayload maps a websocket payload onto the line vocabulary used by raw TCP clients
func LineFromPayload(msg *playable.PayloadIn) (string, bool) {
	switch strings.ToLower(msg.Action) {
	case "start":
		return startCommand, true
	case "draw":
		return "y", true
	case "stop":
		return "n", true
	case "say":
		return msg.Subject, true
	}

	return "", false
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
