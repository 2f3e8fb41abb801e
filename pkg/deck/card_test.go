package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	a.Equal(&Card{Kind: Number, Value: 7, Label: "7"}, CardFromString("7"))
	a.Equal(&Card{Kind: Number, Value: 12, Label: "12"}, CardFromString("12"))
	a.Equal(&Card{Kind: Modifier, Value: 10, Label: "+10"}, CardFromString("+10"))
	a.Equal(&Card{Kind: Multiplier, Value: 2, Label: "x2"}, CardFromString("x2"))
	a.Equal(Freeze, CardFromString("FREEZE").Effect)
	a.Equal(FlipThree, CardFromString("flip3").Effect)
	a.Equal(SecondChance, CardFromString("second").Effect)
	a.Nil(CardFromString(""))

	a.PanicsWithValue("could not parse card: bogus", func() {
		CardFromString("bogus")
	})
}

func TestCardsToString(t *testing.T) {
	const s = "0,5,+4,x2,freeze,flip3,second"
	assert.Equal(t, s, CardsToString(CardsFromString(s)))
	assert.Empty(t, CardsFromString(""))
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("[5]", NewNumber(5).String())
	a.Equal("[+8]", NewModifier(8).String())
	a.Equal("[x2]", NewMultiplier(2).String())
	a.Equal("[FLIP 3]", NewAction(FlipThree).String())
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(NewNumber(5).Equal(NewNumber(5)))
	a.False(NewNumber(5).Equal(NewModifier(5)))
	a.False(NewAction(Freeze).Equal(NewAction(FlipThree)))
}
