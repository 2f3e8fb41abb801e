package room

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"flip7-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const startCommand = "START"

// ErrGameInProgress is sent to clients that connect while a game is running
var ErrGameInProgress = errors.New("sorry, a game is already in progress")

// ErrLobbyFull is sent to clients that connect when the lobby has no seats left
var ErrLobbyFull = errors.New("sorry, the lobby is full")

// ErrNotHost is returned when someone other than the host tries to start the game
var ErrNotHost = errors.New("only the host can start the game")

// Options configures a dealer
type Options struct {
	// GameName is the gamefactory name of the game the lobby plays
	GameName string

	// StartGameDelay is how long to wait between START and dealing
	StartGameDelay time.Duration

	// MaxClients is the size of the lobby, zero for no limit
	MaxClients int
}

// Dealer runs the lobby and the game played by the clients in it
type Dealer struct {
	options Options
	logger  logrus.FieldLogger

	// clients is the lobby in join order; the first client is the host
	clients []*Client
	lock    sync.RWMutex

	// the following must only be touched from the run loop
	game    playable.Playable
	table   *gameTable
	pending *pendingGame

	logMessages []*playable.LogMessage
	logLock     sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer object
func NewDealer(logger logrus.FieldLogger, opts Options) *Dealer {
	ctx, cancel := context.WithCancel(context.Background())

	return &Dealer{
		options:       opts,
		logger:        logger.WithField("component", "dealer"),
		clients:       make([]*Client, 0),
		ctx:           ctx,
		cancel:        cancel,
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients in join order
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, len(d.clients))
	copy(clients, d.clients)
	return clients
}

// LobbySize returns the number of connected clients
func (d *Dealer) LobbySize() int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return len(d.clients)
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
// A running game is cancelled.
func (d *Dealer) EndShift() {
	d.cancel()
	close(d.close)
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec queues fn on the run loop. It is a no-op once the shift has ended.
func (d *Dealer) exec(fn func()) {
	select {
	case d.execInRunLoop <- fn:
	case <-d.close:
	}
}

// AddClient adds a client to the lobby
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.exec(func() {
		d.addClient(client)
	})
}

// RemoveClient removes a client from the lobby
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) {
	d.exec(func() {
		d.removeClient(client)
	})
}

// ReceivedLine is called when a client sends a line of text to the server
func (d *Dealer) ReceivedLine(c *Client, line string) {
	d.exec(func() {
		if d.game != nil {
			d.answer(c, line)
			return
		}

		if !strings.EqualFold(strings.TrimSpace(line), startCommand) {
			return
		}

		d.requestStart(c, nil, "")
	})
}

// StartGame is called when a client asks to start the game with options
// The client gets an OK carrying msgContext once the game is scheduled.
// While a game is running the request is a line like any other.
func (d *Dealer) StartGame(c *Client, additionalData playable.AdditionalData, msgContext string) {
	d.exec(func() {
		if d.game != nil {
			d.answer(c, startCommand)
			return
		}

		if d.requestStart(c, additionalData, msgContext) {
			c.Send(playable.OK(msgContext))
		}
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) answer(c *Client, line string) {
	if _, playing := d.table.clients[c.ID]; playing {
		c.answer(line)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) addClient(client *Client) {
	log := d.logger.WithField("client", client.String())
	if client.IsDone() {
		return
	}

	if d.game != nil {
		log.Info("refusing client, game in progress")
		client.kick(ErrGameInProgress.Error())
		return
	}

	if d.options.MaxClients > 0 && len(d.clients) >= d.options.MaxClients {
		log.Info("refusing client, lobby is full")
		client.kick(ErrLobbyFull.Error())
		return
	}

	d.lock.Lock()
	d.clients = append(d.clients, client)
	isHost := len(d.clients) == 1
	d.lock.Unlock()

	log.WithField("host", isHost).Info("client joined the lobby")

	if isHost {
		client.Send(playable.NewResponse("welcome", client, "Welcome %s! You are the host.\nWait for everyone to arrive, then type START to begin.", client.Name))
	} else {
		client.Send(playable.NewResponse("welcome", client, "Welcome %s! Waiting for the host to start the game...", client.Name))
	}

	if history := d.recentLogMessages(); len(history) > 0 {
		client.Send(historyResponse(history))
	}

	d.broadcastLobby(playable.NewResponse("playerJoined", client, "%s joined the lobby (%d players)", client.Name, len(d.clients)), client)
}

// NOTE: must only be called from the run loop
func (d *Dealer) removeClient(client *Client) {
	idx := -1
	for i, c := range d.clients {
		if c == client {
			idx = i
			break
		}
	}

	if idx == -1 {
		return
	}

	d.lock.Lock()
	d.clients = append(d.clients[:idx:idx], d.clients[idx+1:]...)
	remaining := len(d.clients)
	d.lock.Unlock()

	d.logger.WithField("client", client.String()).Info("client left the lobby")

	if remaining == 0 {
		if d.pending != nil {
			d.logger.Info("lobby is empty, cancelling pending game")
			d.pending.cancel()
			d.pending = nil
		}

		return
	}

	// the game reports its own disconnects
	if d.game != nil {
		return
	}

	d.broadcastLobby(playable.NewResponse("playerLeft", client, "%s left the lobby (%d players)", client.Name, remaining))
	if idx == 0 {
		d.announceHost()
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) requestStart(c *Client, additionalData playable.AdditionalData, msgContext string) bool {
	if len(d.clients) == 0 || d.clients[0] != c {
		c.Send(newErrorResponse(msgContext, ErrNotHost))
		return false
	}

	if d.pending != nil {
		return false
	}

	if additionalData == nil {
		additionalData = playable.AdditionalData{}
	}

	pg, err := newPendingGame(c, d.options.GameName, additionalData, d.options.StartGameDelay)
	if err != nil {
		d.logger.WithError(err).Error("could not create pending game")
		c.Send(newErrorResponse(msgContext, err))
		return false
	}

	d.pending = pg
	pg.timer = time.AfterFunc(d.options.StartGameDelay, func() {
		d.exec(func() {
			d.startPendingGame(pg)
		})
	})

	d.broadcastLobby(playable.NewResponse("gameStarting", pg, "%s starts in %s with %d players", pg.Name, d.options.StartGameDelay, len(d.clients)))
	return true
}

// NOTE: must only be called from the run loop
func (d *Dealer) startPendingGame(pg *pendingGame) {
	if d.pending != pg {
		// cancelled
		return
	}

	d.pending = nil
	if len(d.clients) == 0 {
		return
	}

	clients := make([]*Client, len(d.clients))
	copy(clients, d.clients)

	table := newGameTable(d, clients)
	game, err := pg.factory.CreateGame(d.logger, table, table.players(), pg.additionalData)
	if err != nil {
		d.logger.WithError(err).Error("could not create game")
		d.broadcastLobby(newErrorResponse("", err))
		return
	}

	d.logLock.Lock()
	d.logMessages = nil
	d.logLock.Unlock()

	d.game = game
	d.table = table
	d.logger.WithField("players", len(clients)).Info("game started")

	go d.runGame(game)
}

func (d *Dealer) runGame(game playable.Playable) {
	details, err := game.Run(d.ctx)
	d.exec(func() {
		d.gameEnded(details, err)
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) gameEnded(details *playable.GameOverDetails, err error) {
	d.game = nil
	d.table = nil

	if err != nil {
		d.logger.WithError(err).Error("game ended with an error")
		d.broadcastLobby(playable.NewResponse("gameEnded", nil, "The game was interrupted. Back to the lobby."))
	} else {
		d.logger.WithField("scores", details.Scores).Info("game over")
		d.broadcastLobby(playable.NewResponse("gameEnded", details.Scores, "Back to the lobby."))
	}

	d.announceHost()
}

// NOTE: must only be called from the run loop
func (d *Dealer) announceHost() {
	if len(d.clients) == 0 {
		return
	}

	host := d.clients[0]
	host.Send(playable.NewResponse("host", host, "You are the host. Type START to begin a new game."))
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcastLobby(msg *playable.Response, except ...*Client) {
	for _, c := range d.clients {
		skip := false
		for _, e := range except {
			if c == e {
				skip = true
				break
			}
		}

		if !skip {
			c.Send(msg)
		}
	}
}
