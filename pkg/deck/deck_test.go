package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	a := assert.New(t)

	d := New()
	a.Len(d.Cards, 52)
	a.Equal(&Card{Rank: 2, Suit: Hearts}, d.Cards[0])

	seen := make(map[string]bool)
	for _, card := range d.Cards {
		seen[CardToString(card)] = true
	}
	a.Len(seen, 52)
}

func TestDeck_Shuffle(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.Shuffle(42)
	a.EqualValues(42, d.GetSeed())

	d2 := New()
	d2.Shuffle(42)
	a.Equal(CardsToString(d.Cards), CardsToString(d2.Cards))

	d3 := New()
	d3.Shuffle(43)
	a.NotEqual(CardsToString(d.Cards), CardsToString(d3.Cards))

	// a zero seed draws one from the crypto source
	d4 := New()
	d4.Shuffle(0)
	a.Greater(d4.GetSeed(), int64(0))
}

func TestDeck_Draw(t *testing.T) {
	a := assert.New(t)

	d := New()
	d.Shuffle(1)

	a.True(d.CanDraw(52))
	a.False(d.CanDraw(53))

	first := d.Cards[0]
	card, err := d.Draw()
	a.NoError(err)
	a.Same(first, card)
	a.Equal(51, d.CardsLeft())

	for d.CanDraw(1) {
		_, err := d.Draw()
		a.NoError(err)
	}

	card, err = d.Draw()
	a.Nil(card)
	a.Equal(ErrEndOfDeck, err)
}

func TestHand(t *testing.T) {
	a := assert.New(t)

	h := Hand{}
	h.AddCard(CardFromString("14s"))
	h.AddCard(CardFromString("2c"))

	a.True(h.HasCard(CardFromString("14s")))
	a.False(h.HasCard(CardFromString("3d")))
	a.Equal(CardFromString("14s"), h.FirstCard())
	a.Equal(CardFromString("2c"), h.LastCard())

	clone := h.Clone()
	clone.AddCard(CardFromString("3d"))
	a.Len(h, 2)
	a.Len(clone, 3)
}
