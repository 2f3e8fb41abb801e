package flipseven

import (
	"flip7-server/pkg/deck"
)

// Participant is a player in a game of Flip 7
// Round fields are reset at the start of every round; the cumulative score lives for the whole match.
type Participant struct {
	PlayerID int64
	Name     string

	hand               deck.Hand
	uniqueNumbers      map[int]bool
	forcedDraws        int
	hasShield          bool
	eliminated         bool
	doneForRound       bool
	achievedSpecialWin bool

	disconnected    bool
	cumulativeScore int
	roundScore      int
}

// NewParticipant returns a new participant
func NewParticipant(playerID int64, name string) *Participant {
	return &Participant{
		PlayerID:      playerID,
		Name:          name,
		uniqueNumbers: make(map[int]bool),
	}
}

func (p *Participant) resetRound() {
	p.hand = deck.Hand{}
	p.uniqueNumbers = make(map[int]bool)
	p.forcedDraws = 0
	p.hasShield = false
	p.eliminated = false
	p.doneForRound = p.disconnected
	p.achievedSpecialWin = false
	p.roundScore = 0
}

// isActive returns true if the participant still takes turns this round
func (p *Participant) isActive() bool {
	return !p.eliminated && !p.doneForRound && !p.disconnected
}

// state describes where the participant is in the round
func (p *Participant) state() TurnState {
	switch {
	case p.eliminated:
		return Eliminated
	case p.achievedSpecialWin:
		return Won
	case p.doneForRound || p.disconnected:
		return Stopped
	case p.forcedDraws > 0:
		return Drawing
	default:
		return AwaitingDecision
	}
}

// liveScore is what the hand is worth right now, without the special win bonus
func (p *Participant) liveScore() int {
	return p.hand.Score(false)
}

// CumulativeScore returns the points scored so far in the match
func (p *Participant) CumulativeScore() int {
	return p.cumulativeScore
}

// RoundScore returns the points scored in the last finished round
func (p *Participant) RoundScore() int {
	return p.roundScore
}

// Hand returns a copy of the current hand
func (p *Participant) Hand() deck.Hand {
	return p.hand.Clone()
}

// IsDisconnected returns true once the participant has left the match
func (p *Participant) IsDisconnected() bool {
	return p.disconnected
}

// ParticipantState is the public view of a participant
type ParticipantState struct {
	PlayerID        int64     `json:"playerId"`
	Name            string    `json:"name"`
	Hand            deck.Hand `json:"hand"`
	Score           int       `json:"score"`
	CumulativeScore int       `json:"cumulativeScore"`
	UniqueNumbers   int       `json:"uniqueNumbers"`
	ForcedDraws     int       `json:"forcedDraws"`
	HasShield       bool      `json:"hasShield"`
	State           string    `json:"state"`
}

func (p *Participant) publicState() *ParticipantState {
	return &ParticipantState{
		PlayerID:        p.PlayerID,
		Name:            p.Name,
		Hand:            p.hand.Clone(),
		Score:           p.liveScore(),
		CumulativeScore: p.cumulativeScore,
		UniqueNumbers:   len(p.uniqueNumbers),
		ForcedDraws:     p.forcedDraws,
		HasShield:       p.hasShield,
		State:           p.state().String(),
	}
}
