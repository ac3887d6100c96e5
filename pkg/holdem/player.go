package holdem

import "holdem-server/pkg/deck"

// Player is a person at the table. A player may be a spectator or be
// seated; only seated players are dealt into a hand.
type Player struct {
	id   int64
	name string

	balance      int
	amountInPlay int
	cards        deck.Hand

	connected bool
	leaving   bool
}

// NewPlayer returns a new player with the provided buy-in
func NewPlayer(id int64, name string, buyIn int) *Player {
	return &Player{
		id:        id,
		name:      name,
		balance:   buyIn,
		connected: true,
	}
}

// ID returns the player's unique identifier
func (p *Player) ID() int64 {
	return p.id
}

// Name returns the player's display name
func (p *Player) Name() string {
	return p.name
}

// Balance returns the player's chip stack
func (p *Player) Balance() int {
	return p.balance
}

// AdjustBalance adds the amount, which may be negative, to the stack
func (p *Player) AdjustBalance(amount int) {
	p.balance += amount
}

// SetAmountInPlay records how much the player has wagered this betting round
func (p *Player) SetAmountInPlay(amount int) {
	p.amountInPlay = amount
}

// AmountInPlay returns the player's wager in the current betting round
func (p *Player) AmountInPlay() int {
	return p.amountInPlay
}

// playerState is the public view of a player
type playerState struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Seat      int    `json:"seat,omitempty"`
	Balance   int    `json:"balance"`
	Bet       int    `json:"bet"`
	InHand    bool   `json:"inHand"`
	Folded    bool   `json:"folded"`
	AllIn     bool   `json:"allIn"`
	Connected bool   `json:"connected"`

	// Cards is set only on the viewer's own entry
	Cards deck.Hand `json:"cards,omitempty"`
}
