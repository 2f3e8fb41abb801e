package flipseven

import (
	"strings"

	"flip7-server/pkg/deck"
	"flip7-server/pkg/playable"
)

// response keys sent to the table
const (
	keyGameStart     = "gameStart"
	keyRoundStart    = "roundStart"
	keyHUD           = "hud"
	keyWaiting       = "waiting"
	keyStop          = "stop"
	keyForcedDraw    = "forcedDraw"
	keyDraw          = "draw"
	keyFreeze        = "freeze"
	keyFlipThree     = "flipThree"
	keySecondChance  = "secondChance"
	keySaved         = "saved"
	keyBust          = "bust"
	keySpecialWin    = "flip7"
	keyReshuffle     = "reshuffle"
	keyDeckExhausted = "deckExhausted"
	keyDisconnected  = "disconnected"
	keyRoundResult   = "roundResult"
	keyRoundEnd      = "roundEnd"
	keyStandings     = "standings"
	keyGameOver      = "gameOver"
)

// TurnEvent is the data attached to events about a single player
type TurnEvent struct {
	PlayerID    int64      `json:"playerId"`
	Name        string     `json:"name"`
	Card        *deck.Card `json:"card,omitempty"`
	Score       int        `json:"score"`
	ForcedDraws int        `json:"forcedDraws"`
}

func newEvent(key string, p *Participant, card *deck.Card, format string, a ...interface{}) *playable.Response {
	return playable.NewResponse(key, &TurnEvent{
		PlayerID:    p.PlayerID,
		Name:        p.Name,
		Card:        card,
		Score:       p.liveScore(),
		ForcedDraws: p.forcedDraws,
	}, format, a...)
}

func handString(h deck.Hand) string {
	if len(h) == 0 {
		return "(empty)"
	}

	parts := make([]string, len(h))
	for i, c := range h {
		parts[i] = c.String()
	}

	return strings.Join(parts, " ")
}

func (g *Game) broadcast(msg *playable.Response) {
	g.logger.WithField("key", msg.Key).Debug(msg.Value)
	g.table.Broadcast(msg)
}
