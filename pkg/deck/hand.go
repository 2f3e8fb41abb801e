package deck

// SpecialWinBonus is added to the score of a hand holding seven distinct numbers
const SpecialWinBonus = 15

// Hand represents the cards a player holds during a round
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// LastCard returns the last card in the hand or nil if the cards are empty
func (h Hand) LastCard() *Card {
	n := len(h)
	if n == 0 {
		return nil
	}

	return h[n-1]
}

// RemoveLast removes and returns the most recently added card
func (h *Hand) RemoveLast() *Card {
	n := len(*h)
	if n == 0 {
		return nil
	}

	card := (*h)[n-1]
	*h = (*h)[:n-1]
	return card
}

// RemoveFirstEffect removes the first action card with the given effect
// The removed card is returned, or nil if the hand has no such card
func (h *Hand) RemoveFirstEffect(effect Effect) *Card {
	for i, c := range *h {
		if c.Kind == Action && c.Effect == effect {
			*h = append((*h)[:i:i], (*h)[i+1:]...)
			return c
		}
	}

	return nil
}

// CountEffect returns how many action cards with the effect are held
func (h Hand) CountEffect(effect Effect) int {
	count := 0
	for _, c := range h {
		if c.Kind == Action && c.Effect == effect {
			count++
		}
	}

	return count
}

// Score returns the points the hand is worth.
// Number cards are summed and doubled if any multiplier is held, then modifiers are added.
// The special win bonus applies on top of everything.
func (h Hand) Score(achievedSpecialWin bool) int {
	numberSum := 0
	modifierSum := 0
	hasMultiplier := false

	for _, c := range h {
		switch c.Kind {
		case Number:
			numberSum += c.Value
		case Modifier:
			modifierSum += c.Value
		case Multiplier:
			hasMultiplier = true
		}
	}

	if hasMultiplier {
		numberSum *= 2
	}

	score := numberSum + modifierSum
	if achievedSpecialWin {
		score += SpecialWinBonus
	}

	return score
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
