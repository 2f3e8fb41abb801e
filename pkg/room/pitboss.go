package room

import (
	"github.com/sirupsen/logrus"
)

// PitBoss is responsible for dispatching clients to the dealer
type PitBoss struct {
	dealer     *Dealer
	connect    chan *Client
	disconnect chan *Client
	close      chan bool
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(dealer *Dealer) *PitBoss {
	return &PitBoss{
		dealer:     dealer,
		connect:    make(chan *Client, 256),
		disconnect: make(chan *Client, 256),
		close:      make(chan bool),
	}
}

// Dealer returns the dealer running the lobby
func (p *PitBoss) Dealer() *Dealer {
	return p.dealer
}

// StartShift starts the PitBoss and dealer run loops
func (p *PitBoss) StartShift() {
	p.dealer.StartShift()
	go p.runLoop()
}

// EndShift stops the run loops and cancels any running game
func (p *PitBoss) EndShift() {
	close(p.close)
	p.dealer.EndShift()
}

func (p *PitBoss) runLoop() {
	for {
		select {
		case client := <-p.connect:
			logrus.WithField("client", client.String()).Debug("client connected")
			p.dealer.AddClient(client)
		case client := <-p.disconnect:
			logrus.WithField("client", client.String()).Debug("client disconnected")
			p.dealer.RemoveClient(client)
		case <-p.close:
			return
		}
	}
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) {
	client.dealer = p.dealer
	p.connect <- client
}

// ClientDisconnected is called when a client disconnects from the server
// The client is marked as gone right away so a pending prompt does not wait for the run loop.
func (p *PitBoss) ClientDisconnected(client *Client) {
	client.markDone()
	p.disconnect <- client
}
