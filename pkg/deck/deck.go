package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"flip7-server/internal/rng"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// ErrNoCardsRemain is returned when the deck needs a refill but the discard pile is empty too
var ErrNoCardsRemain = errors.New("no cards remain in the deck or the discard pile")

// Size is the number of cards in a full deck
const Size = 94

// Deck represents a Flip 7 drawing pile
type Deck struct {
	Cards []*Card `json:"cards"`
	rng   rng.Generator
	dirty bool
}

// New returns a new deck of cards.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Crypto{},
	}

	d.buildDeck()
	return d
}

// Stack returns a deck with the cards in exactly the given order, the first card being drawn first
// Stack is mostly useful for scripting a game in tests
func Stack(cards ...*Card) *Deck {
	c := make([]*Card, len(cards))
	copy(c, cards)

	return &Deck{
		Cards: c,
		rng:   rng.Crypto{},
		dirty: true,
	}
}

// SetSeed will make shuffling deterministic
// This should only be used by tests
func (d *Deck) SetSeed(seed int64) {
	d.rng = rng.Seeded(seed)
}

// SetGenerator replaces the random source used for shuffling
func (d *Deck) SetGenerator(gen rng.Generator) {
	d.rng = gen
}

// buildDeck lays out the fixed composition: one 0, one 1 and N copies of every N in 2..12,
// the five modifiers, one x2 and three of each action
func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	cards = append(cards, NewNumber(0), NewNumber(1))
	for value := 2; value <= 12; value++ {
		for i := 0; i < value; i++ {
			cards = append(cards, NewNumber(value))
		}
	}

	for _, bonus := range []int{2, 4, 6, 8, 10} {
		cards = append(cards, NewModifier(bonus))
	}

	cards = append(cards, NewMultiplier(2))

	for _, effect := range []Effect{Freeze, FlipThree, SecondChance} {
		for i := 0; i < 3; i++ {
			cards = append(cards, NewAction(effect))
		}
	}

	d.Cards = cards
	d.dirty = false
}

// Shuffle will shuffle a full deck of cards
func (d *Deck) Shuffle() {
	// we always want to shuffle from an unshuffled deck.
	if d.dirty || len(d.Cards) != Size {
		d.buildDeck()
	}

	d.permute(d.Cards)
	d.dirty = true
}

// ShuffleDiscards takes every card from the discard pile, shuffles them and makes them the new deck.
// The pile is left empty. ErrNoCardsRemain is returned if the pile had nothing in it.
func (d *Deck) ShuffleDiscards(pile *Pile) error {
	if pile.Len() == 0 {
		return ErrNoCardsRemain
	}

	cards := pile.Take()
	d.permute(cards)
	d.Cards = cards
	d.dirty = true

	return nil
}

func (d *Deck) permute(cards []*Card) {
	rng.Permute(d.rng, len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// HashCode returns a SHA1 hash code of the deck order.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(CardToString(card) + ","))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw will draw the next card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	if len(d.Cards) <= 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	d.dirty = true

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
