// Package linesrv serves the lobby over raw TCP, one line of text per message
package linesrv

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"flip7-server/pkg/playable"
	"flip7-server/pkg/room"

	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10

// maxLineLength caps a single line from a client
const maxLineLength = 4096

// Server accepts TCP connections and hands them to the pit boss
type Server struct {
	pitBoss *room.PitBoss
	logger  logrus.FieldLogger

	lock     sync.Mutex
	listener net.Listener
	conns    map[net.Conn]bool
}

// NewServer returns a new line server
func NewServer(logger logrus.FieldLogger, pitBoss *room.PitBoss) *Server {
	return &Server{
		pitBoss: pitBoss,
		logger:  logger.WithField("component", "linesrv"),
		conns:   make(map[net.Conn]bool),
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, l)
}

// Serve accepts connections on l until ctx is cancelled
// Open connections are closed when Serve returns.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.lock.Lock()
	s.listener = l
	s.lock.Unlock()

	s.logger.WithField("addr", l.Addr().String()).Info("listening")

	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()

	defer s.closeAll()

	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		go s.handle(conn)
	}
}

// Addr returns the listen address, or nil if the server is not listening
func (s *Server) Addr() net.Addr {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

func (s *Server) track(conn net.Conn, add bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if add {
		s.conns[conn] = true
	} else {
		delete(s.conns, conn)
	}
}

func (s *Server) closeAll() {
	s.lock.Lock()
	defer s.lock.Unlock()

	for conn := range s.conns {
		_ = conn.Close()
	}
}

func (s *Server) handle(conn net.Conn) {
	s.track(conn, true)
	defer s.track(conn, false)

	client := room.NewClient("")
	log := s.logger.WithFields(logrus.Fields{
		"client":     client.String(),
		"remoteAddr": conn.RemoteAddr().String(),
	})
	log.Info("client connected")

	s.pitBoss.ClientConnected(client)

	writerDone := make(chan bool)
	defer func() {
		s.pitBoss.ClientDisconnected(client)
		_ = conn.Close()
		<-writerDone
		log.Info("client disconnected")
	}()

	go writeLoop(conn, client, writerDone)
	readLoop(conn, client, log)
}

func readLoop(conn net.Conn, client *room.Client, log logrus.FieldLogger) {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024), maxLineLength)
	for scanner.Scan() {
		client.ReceivedLine(strings.TrimRight(scanner.Text(), "\r"))
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.WithError(err).Debug("could not read line")
	}
}

func writeLoop(conn net.Conn, client *room.Client, done chan bool) {
	defer close(done)
	defer conn.Close()

	for {
		select {
		case reason := <-client.Close:
			_ = writeResponse(conn, &playable.Response{Value: reason})
			return
		case <-client.Done():
			return
		case msg := <-client.SendChan():
			if err := writeResponse(conn, msg); err != nil {
				return
			}
		}
	}
}

// writeResponse writes the human-readable value of the response followed by a newline
func writeResponse(conn net.Conn, msg *playable.Response) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_, err := fmt.Fprintf(conn, "%s\n", FormatResponse(msg))
	return err
}

// FormatResponse renders a response for a terminal
func FormatResponse(msg *playable.Response) string {
	switch msg.Key {
	case "prompt":
		return "> " + msg.Value
	case "error":
		return "ERROR: " + msg.Value
	default:
		return msg.Value
	}
}
