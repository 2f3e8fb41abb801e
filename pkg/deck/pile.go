package deck

// Pile is the discard pile. Order is not significant.
type Pile struct {
	cards []*Card
}

// Add puts cards on the pile
func (p *Pile) Add(cards ...*Card) {
	p.cards = append(p.cards, cards...)
}

// Len returns the number of cards on the pile
func (p *Pile) Len() int {
	return len(p.cards)
}

// Take removes and returns every card on the pile
func (p *Pile) Take() []*Card {
	cards := p.cards
	p.cards = nil
	return cards
}
