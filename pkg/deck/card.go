package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind is the family a card belongs to
type Kind string

// kind constants
const (
	Number     Kind = "number"
	Modifier   Kind = "modifier"
	Multiplier Kind = "multiplier"
	Action     Kind = "action"
)

// Effect is the special effect of an action card
type Effect string

// effect constants
const (
	None         Effect = ""
	Freeze       Effect = "freeze"
	FlipThree    Effect = "flip3"
	SecondChance Effect = "secondChance"
)

// Card is an individual Flip 7 card
// Value is the face value of a Number card, the bonus of a Modifier and the factor of a Multiplier.
// It is unused for Action cards.
type Card struct {
	Kind   Kind   `json:"kind"`
	Value  int    `json:"value"`
	Effect Effect `json:"effect,omitempty"`
	Label  string `json:"label"`
}

// NewNumber returns a number card
func NewNumber(value int) *Card {
	return &Card{Kind: Number, Value: value, Label: strconv.Itoa(value)}
}

// NewModifier returns a +N modifier card
func NewModifier(value int) *Card {
	return &Card{Kind: Modifier, Value: value, Label: fmt.Sprintf("+%d", value)}
}

// NewMultiplier returns an xN multiplier card
func NewMultiplier(factor int) *Card {
	return &Card{Kind: Multiplier, Value: factor, Label: fmt.Sprintf("x%d", factor)}
}

// NewAction returns an action card with the given effect
func NewAction(effect Effect) *Card {
	var label string
	switch effect {
	case Freeze:
		label = "FREEZE"
	case FlipThree:
		label = "FLIP 3"
	case SecondChance:
		label = "SECOND CHANCE"
	default:
		panic(fmt.Sprintf("unknown effect: %q", effect))
	}

	return &Card{Kind: Action, Effect: effect, Label: label}
}

func (c *Card) String() string {
	return fmt.Sprintf("[%s]", c.Label)
}

// Equal returns true if both cards have the same kind, value and effect
func (c *Card) Equal(card *Card) bool {
	return c.Kind == card.Kind && c.Value == card.Value && c.Effect == card.Effect
}

// IsNumber returns true for number cards
func (c *Card) IsNumber() bool {
	return c.Kind == Number
}

var cardRx = regexp.MustCompile(`(?i)^(?:(\d{1,2})|\+(\d{1,2})|x(\d)|(freeze|flip3|second))\z`)

// CardFromString returns a Card from the string.
// Accepted forms: "7" (number), "+4" (modifier), "x2" (multiplier), "freeze", "flip3" and "second" (actions)
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	match := cardRx.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		panic(fmt.Sprintf("could not parse card: %s", s))
	}

	switch {
	case match[1] != "":
		return NewNumber(atoi(match[1]))
	case match[2] != "":
		return NewModifier(atoi(match[2]))
	case match[3] != "":
		return NewMultiplier(atoi(match[3]))
	}

	switch strings.ToLower(match[4]) {
	case "freeze":
		return NewAction(Freeze)
	case "flip3":
		return NewAction(FlipThree)
	default:
		return NewAction(SecondChance)
	}
}

func atoi(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		// should never be hit due to the regexp
		panic(err)
	}

	return v
}

// CardsFromString will return a slice of cards from a comma separated list
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]*Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(card)
	}

	return cards
}

// CardToString is the inverse of CardFromString
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	switch card.Kind {
	case Number:
		return strconv.Itoa(card.Value)
	case Modifier:
		return fmt.Sprintf("+%d", card.Value)
	case Multiplier:
		return fmt.Sprintf("x%d", card.Value)
	}

	switch card.Effect {
	case Freeze:
		return "freeze"
	case FlipThree:
		return "flip3"
	default:
		return "second"
	}
}

// CardsToString will convert a slice of cards to a string in the format of 5,+4,x2,freeze,...
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
