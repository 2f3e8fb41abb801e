package playable

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Playable is a game that can be played at a table
type Playable interface {
	// Name returns the name of the game
	Name() string

	// Run plays the game to completion
	// It blocks until the game is over or ctx is cancelled
	Run(ctx context.Context) (*GameOverDetails, error)
}

// LogMessage is the format a game should send log messages in
// If PlayerIDs is empty, assume it's a general statement
type LogMessage struct {
	UUID      string    `json:"uuid"`
	PlayerIDs []int64   `json:"playerIds"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}

// Response is an event sent to one or more players
// Value is always a human-readable rendition of the event so line-based clients can simply print it
type Response struct {
	Key     string      `json:"key"`
	Value   string      `json:"value"`
	Data    interface{} `json:"data,omitempty"`
	Context string      `json:"context,omitempty"`
}

// NewResponse returns a response with a formatted value
func NewResponse(key string, data interface{}, format string, a ...interface{}) *Response {
	return &Response{
		Key:   key,
		Value: fmt.Sprintf(format, a...),
		Data:  data,
	}
}

// OK returns a generic success response
func OK(ctx ...string) *Response {
	res := &Response{
		Key:   "status",
		Value: "OK",
	}

	if len(ctx) == 1 {
		res.Context = ctx[0]
	}

	return res
}

// PayloadIn is the format we expect from a websocket client
type PayloadIn struct {
	Action         string         `json:"action"`
	Subject        string         `json:"subject"`
	AdditionalData AdditionalData `json:"additionalData"`
	// Context will be passed back on any outgoing message
	Context string `json:"context"`
}

// GameOverDetails provides details on how the game ended
type GameOverDetails struct {
	Scores map[int64]int
	Log    interface{}
}

// AdditionalData provides additional data in a payload
type AdditionalData map[string]interface{}

// GetString returns a string for the given key
func (a AdditionalData) GetString(key string) (string, bool) {
	s, ok := a[key].(string)
	return s, ok
}

// GetInt returns an integer value for the given key
func (a AdditionalData) GetInt(key string) (int, bool) {
	switch val := a[key].(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	}

	return 0, false
}

// SimpleLogMessage returns a new LogMessage
func SimpleLogMessage(playerID int64, format string, a ...interface{}) *LogMessage {
	var playerIDs []int64
	if playerID > 0 {
		playerIDs = []int64{playerID}
	}

	return &LogMessage{
		UUID:      uuid.New().String(),
		PlayerIDs: playerIDs,
		Message:   fmt.Sprintf(format, a...),
		Time:      time.Now(),
	}
}

// LogMessageFromResponse records a broadcast response as a log message
func LogMessageFromResponse(res *Response) *LogMessage {
	return SimpleLogMessage(0, "%s", res.Value)
}
