package flipseven

import (
	"context"
	"errors"
	"strings"

	"flip7-server/pkg/deck"
	"flip7-server/pkg/playable"
)

// TurnState is where a participant is within a turn
type TurnState int

// turn states
const (
	AwaitingDecision TurnState = iota
	Drawing
	Stopped
	Eliminated
	Won
)

func (t TurnState) String() string {
	switch t {
	case AwaitingDecision:
		return "awaitingDecision"
	case Drawing:
		return "drawing"
	case Stopped:
		return "stopped"
	case Eliminated:
		return "eliminated"
	case Won:
		return "won"
	default:
		return "unknown"
	}
}

// IsTerminal returns true if the state ends the player's round
func (t TurnState) IsTerminal() bool {
	return t == Stopped || t == Eliminated || t == Won
}

var affirmative = map[string]bool{
	"o":    true,
	"oui":  true,
	"y":    true,
	"yes":  true,
	"d":    true,
	"draw": true,
}

// IsAffirmative returns true if the answer to a draw-or-stop prompt means draw
func IsAffirmative(answer string) bool {
	return affirmative[strings.ToLower(strings.TrimSpace(answer))]
}

// playTurn runs one turn for the participant: a draw-or-stop decision (skipped while forced draws are
// pending) followed by the draw and any forced draws it triggers.
// AwaitingDecision is returned if the participant is still in the round afterwards.
// The only errors returned are an InvalidStateError or the context error; everything else is recovered.
func (g *Game) playTurn(ctx context.Context, p *Participant) (TurnState, error) {
	if !p.isActive() {
		return p.state(), InvalidStateError{PlayerID: p.PlayerID, State: p.state()}
	}

	if p.forcedDraws == 0 {
		draw, err := g.askToDraw(ctx, p)
		if err != nil {
			return p.state(), err
		}

		if !draw {
			p.doneForRound = true
			g.broadcast(newEvent(keyStop, p, nil, "%s stops with %d points", p.Name, p.liveScore()))
			return Stopped, nil
		}
	}

	for {
		if err := g.refillDeck(); err != nil {
			g.logger.WithError(err).WithField("playerId", p.PlayerID).Info("stopping player")
			g.broadcast(newEvent(keyDeckExhausted, p, nil, "No cards remain anywhere! %s stops with %d points", p.Name, p.liveScore()))
			p.doneForRound = true
			return Stopped, nil
		}

		if p.forcedDraws > 0 {
			g.broadcast(newEvent(keyForcedDraw, p, nil, "%s must draw (%d left)", p.Name, p.forcedDraws))
			p.forcedDraws--
		}

		card, err := g.deck.Draw()
		if err != nil {
			// refillDeck guarantees a card
			panic(err)
		}

		p.hand.AddCard(card)
		g.broadcast(newEvent(keyDraw, p, card, "%s drew %s", p.Name, card))

		if state := g.resolveCard(p, card); state.IsTerminal() {
			return state, nil
		}

		if p.forcedDraws == 0 {
			return AwaitingDecision, nil
		}
	}
}

// askToDraw prompts the participant. Timeouts, disconnects and anything but a yes are a stop.
func (g *Game) askToDraw(ctx context.Context, p *Participant) (bool, error) {
	g.table.Tell(p.PlayerID, playable.NewResponse(keyHUD, p.publicState(), "Your hand: %s (%d points, %d total)", handString(p.hand), p.liveScore(), p.cumulativeScore))
	g.table.Broadcast(newEvent(keyWaiting, p, nil, "It's %s's turn...", p.Name), p.PlayerID)

	askCtx := ctx
	if g.options.PromptTimeout > 0 {
		var cancel context.CancelFunc
		askCtx, cancel = context.WithTimeout(ctx, g.options.PromptTimeout)
		defer cancel()
	}

	answer, err := g.table.AskYesNo(askCtx, p.PlayerID, "Draw a card? (y/n)")
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		log := g.logger.WithError(err).WithField("playerId", p.PlayerID)
		if errors.Is(err, playable.ErrDisconnected) {
			log.Info("player disconnected during prompt")
			g.markDisconnected(p)
		} else {
			log.Info("no answer to prompt")
		}

		return false, nil
	}

	return IsAffirmative(answer), nil
}

// refillDeck moves the discard pile into the deck when the deck runs out
func (g *Game) refillDeck() error {
	if g.deck.CanDraw(1) {
		return nil
	}

	if err := g.deck.ShuffleDiscards(g.discard); err != nil {
		return ErrEmptyResources
	}

	g.broadcast(playable.NewResponse(keyReshuffle, nil, "The deck is empty, shuffling the discard pile (%d cards)", g.deck.CardsLeft()))
	return nil
}

// resolveCard applies the card just drawn in a fixed order: freeze, flip three, second chance,
// duplicate check and finally the special win
func (g *Game) resolveCard(p *Participant, card *deck.Card) TurnState {
	switch card.Effect {
	case deck.Freeze:
		p.eliminated = true
		p.roundScore = 0
		g.broadcast(newEvent(keyFreeze, p, card, "FREEZE! %s is frozen and scores nothing this round", p.Name))
		return Eliminated
	case deck.FlipThree:
		p.forcedDraws += g.options.FlipThreeDraws
		g.broadcast(newEvent(keyFlipThree, p, card, "FLIP 3! %s must draw %d more cards", p.Name, p.forcedDraws))
	case deck.SecondChance:
		p.hasShield = true
		g.broadcast(newEvent(keySecondChance, p, card, "%s gets a SECOND CHANCE", p.Name))
	}

	if card.IsNumber() {
		if p.uniqueNumbers[card.Value] {
			if !p.hasShield {
				p.eliminated = true
				p.roundScore = 0
				g.broadcast(newEvent(keyBust, p, card, "BUST! %s drew a second %d", p.Name, card.Value))
				return Eliminated
			}

			duplicate := p.hand.RemoveLast()
			shield := p.hand.RemoveFirstEffect(deck.SecondChance)
			g.discard.Add(duplicate)
			if shield != nil {
				g.discard.Add(shield)
			}

			p.hasShield = false
			g.broadcast(newEvent(keySaved, p, card, "%s's duplicate %d is saved by the second chance", p.Name, card.Value))
		} else {
			p.uniqueNumbers[card.Value] = true
		}
	}

	if len(p.uniqueNumbers) >= g.options.WinThreshold {
		p.doneForRound = true
		p.achievedSpecialWin = true
		g.broadcast(newEvent(keySpecialWin, p, nil, "FLIP %d! %s collects the %d point bonus", g.options.WinThreshold, p.Name, deck.SpecialWinBonus))
		return Won
	}

	return Drawing
}

func (g *Game) markDisconnected(p *Participant) {
	if p.disconnected {
		return
	}

	p.disconnected = true
	p.doneForRound = true
	g.broadcast(newEvent(keyDisconnected, p, nil, "%s disconnected", p.Name))
}
