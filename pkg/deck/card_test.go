package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("14s")
	a.Equal(14, card.Rank)
	a.Equal(Spades, card.Suit)

	a.Equal(&Card{Rank: 2, Suit: Clubs}, CardFromString("2c"))
	a.Nil(CardFromString("15s"))
	a.Nil(CardFromString("1d"))
	a.Nil(CardFromString("bogus"))
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,10d,14h")
	a.Len(cards, 3)
	a.Equal(10, cards[1].Rank)
	a.Equal(Diamonds, cards[1].Suit)

	a.Empty(CardsFromString(""))
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,10d,14h")
	a.Equal("2c,10d,14h", CardsToString(cards))
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)

	a.True(CardFromString("5d").Equal(CardFromString("5d")))
	a.False(CardFromString("5d").Equal(CardFromString("5h")))
	a.False(CardFromString("5d").Equal(CardFromString("6d")))
}

func TestCard_AceLowRank(t *testing.T) {
	a := assert.New(t)

	a.Equal(1, CardFromString("14s").AceLowRank())
	a.Equal(7, CardFromString("7s").AceLowRank())
}

func TestCard_MarshalJSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(CardFromString("14s"))
	a.NoError(err)
	a.JSONEq(`{"rank":14,"suit":"spades","name":"A♠"}`, string(b))
}
