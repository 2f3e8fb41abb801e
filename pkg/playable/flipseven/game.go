package flipseven

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flip7-server/internal/rng"
	"flip7-server/pkg/deck"
	"flip7-server/pkg/playable"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Game is a match of Flip 7
// A Game is not safe for concurrent use. Run owns every participant, the deck and the discard pile.
type Game struct {
	UUID string

	options         Options
	table           playable.Table
	participants    []*Participant
	idToParticipant map[int64]*Participant

	deck    *deck.Deck
	discard *deck.Pile
	rng     rng.Generator
	// newDeck builds the deck for each round; tests replace it with a stacked deck
	newDeck func(round int) *deck.Deck

	round  int
	rounds []*RoundResult
	done   bool

	logger logrus.FieldLogger
}

// NewGame returns a new game of Flip 7
// The order of players is the turn order for the whole match.
func NewGame(logger logrus.FieldLogger, table playable.Table, players []playable.Player, opts Options) (*Game, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	if len(players) < 1 || len(players) > opts.MaxPlayers {
		return nil, PlayerCountError{
			Min: 1,
			Max: opts.MaxPlayers,
			Got: len(players),
		}
	}

	participants := make([]*Participant, len(players))
	idToParticipant := make(map[int64]*Participant, len(players))
	for i, player := range players {
		p := NewParticipant(player.GetPlayerID(), player.GetName())
		participants[i] = p
		idToParticipant[p.PlayerID] = p
	}

	if len(idToParticipant) != len(players) {
		return nil, errors.New("duplicate players detected")
	}

	var gen rng.Generator = rng.Crypto{}
	if opts.Seed != 0 {
		gen = rng.Seeded(opts.Seed)
	}

	id := uuid.New().String()
	g := &Game{
		UUID:            id,
		options:         opts,
		table:           table,
		participants:    participants,
		idToParticipant: idToParticipant,
		discard:         &deck.Pile{},
		rng:             gen,
		logger:          logger.WithField("game", id),
	}

	g.newDeck = g.shuffledDeck
	return g, nil
}

func (g *Game) shuffledDeck(int) *deck.Deck {
	d := deck.New()
	d.SetGenerator(g.rng)
	d.Shuffle()
	return d
}

// Name returns "flip7"
func (g *Game) Name() string {
	return "flip7"
}

// RoundNumber returns the current round, starting at 1. It is 0 before the first round.
func (g *Game) RoundNumber() int {
	return g.round
}

// Participant returns the participant with the given player ID
func (g *Game) Participant(playerID int64) (*Participant, bool) {
	p, ok := g.idToParticipant[playerID]
	return p, ok
}

// Participants returns the participants in turn order
func (g *Game) Participants() []*Participant {
	p := make([]*Participant, len(g.participants))
	copy(p, g.participants)
	return p
}

// Run plays rounds until someone reaches the target score, then returns the final standings.
// A disconnected player never stops the match. The match also ends early if fewer than
// MinActivePlayers players are still connected at the start of a round.
func (g *Game) Run(ctx context.Context) (*playable.GameOverDetails, error) {
	if g.done {
		return nil, ErrGameIsOver
	}

	g.broadcast(playable.NewResponse(keyGameStart, nil, "THE GAME BEGINS! First to %d points wins", g.options.TargetScore))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if connected := g.refreshConnections(); connected < g.options.MinActivePlayers {
			g.logger.WithError(ErrNotEnoughPlayers).WithField("connected", connected).Warn("ending game early")
			break
		}

		result, err := g.playRound(ctx)
		if err != nil {
			return nil, err
		}

		g.rounds = append(g.rounds, result)
		if g.targetReached() {
			break
		}
	}

	g.done = true

	standings := g.Standings()
	g.announceStandings(standings)

	scores := make(map[int64]int, len(g.participants))
	for _, p := range g.participants {
		scores[p.PlayerID] = p.cumulativeScore
	}

	return &playable.GameOverDetails{
		Scores: scores,
		Log: &Result{
			UUID:      g.UUID,
			Rounds:    g.rounds,
			Standings: standings,
		},
	}, nil
}

// playRound deals a fresh deck and runs passes over the turn order until nobody is active
func (g *Game) playRound(ctx context.Context) (*RoundResult, error) {
	g.round++
	g.deck = g.newDeck(g.round)
	g.discard = &deck.Pile{}

	for _, p := range g.participants {
		p.resetRound()
	}

	log := g.logger.WithField("round", g.round)
	log.WithField("deck", g.deck.HashCode()).Debug("round started")
	g.broadcast(playable.NewResponse(keyRoundStart, g.round, "--- ROUND %d ---", g.round))

	for {
		active := 0
		for _, p := range g.participants {
			if !p.isActive() {
				continue
			}

			if !g.table.IsConnected(p.PlayerID) {
				g.markDisconnected(p)
				continue
			}

			active++
			state, err := g.playTurn(ctx, p)
			if err != nil {
				return nil, err
			}

			log.WithFields(logrus.Fields{
				"playerId": p.PlayerID,
				"state":    state.String(),
			}).Debug("turn over")
		}

		if active == 0 {
			break
		}
	}

	return g.scoreRound(), nil
}

// scoreRound adds each hand to the cumulative scores and moves every hand to the discard pile
func (g *Game) scoreRound() *RoundResult {
	g.broadcast(playable.NewResponse(keyRoundEnd, g.round, "--- END OF ROUND %d ---", g.round))

	result := &RoundResult{
		Round:  g.round,
		Scores: make([]*RoundScore, 0, len(g.participants)),
	}

	for _, p := range g.participants {
		points := 0
		if !p.eliminated {
			points = p.hand.Score(p.achievedSpecialWin)
		}

		p.roundScore = points
		p.cumulativeScore += points

		score := &RoundScore{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			Hand:       p.hand.Clone(),
			Points:     points,
			Total:      p.cumulativeScore,
			Eliminated: p.eliminated,
			SpecialWin: p.achievedSpecialWin,
		}
		result.Scores = append(result.Scores, score)

		g.discard.Add(p.hand...)
		p.hand = deck.Hand{}

		g.broadcast(playable.NewResponse(keyRoundResult, score, "%s: +%d (total: %d)", p.Name, points, p.cumulativeScore))
	}

	return result
}

func (g *Game) targetReached() bool {
	for _, p := range g.participants {
		if p.cumulativeScore >= g.options.TargetScore {
			return true
		}
	}

	return false
}

// refreshConnections marks players whose connection is gone and returns how many remain
func (g *Game) refreshConnections() int {
	connected := 0
	for _, p := range g.participants {
		if p.disconnected {
			continue
		}

		if !g.table.IsConnected(p.PlayerID) {
			g.markDisconnected(p)
			continue
		}

		connected++
	}

	return connected
}

func (g *Game) announceStandings(standings []*Standing) {
	lines := make([]string, 0, len(standings)+1)
	lines = append(lines, "*** FINAL STANDINGS ***")
	for _, s := range standings {
		line := fmt.Sprintf("%d. %s: %d points", s.Rank, s.Name, s.Score)
		if s.Disconnected {
			line += " (disconnected)"
		}
		lines = append(lines, line)
	}

	g.broadcast(playable.NewResponse(keyStandings, standings, "%s", strings.Join(lines, "\n")))

	winners := make([]string, 0, 1)
	for _, s := range standings {
		if s.Rank == 1 {
			winners = append(winners, s.Name)
		}
	}

	g.broadcast(playable.NewResponse(keyGameOver, winners, "%s wins the game!", strings.Join(winners, " and ")))
}
