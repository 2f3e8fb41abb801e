package room

import (
	"time"

	"flip7-server/pkg/playable"
	"flip7-server/pkg/room/gamefactory"
)

type pendingGame struct {
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	PlayerID int64     `json:"playerId"`

	factory        gamefactory.GameFactory
	additionalData playable.AdditionalData
	timer          *time.Timer
}

func newPendingGame(c *Client, gameName string, additionalData playable.AdditionalData, delay time.Duration) (*pendingGame, error) {
	factory, err := gamefactory.Get(gameName)
	if err != nil {
		return nil, err
	}

	name, err := factory.Details(additionalData)
	if err != nil {
		return nil, err
	}

	return &pendingGame{
		Name:           name,
		Start:          time.Now().Add(delay),
		PlayerID:       c.ID,
		factory:        factory,
		additionalData: additionalData,
	}, nil
}

func (p *pendingGame) cancel() {
	if p.timer != nil {
		p.timer.Stop()
	}
}
