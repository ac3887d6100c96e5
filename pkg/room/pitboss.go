package room

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/rng"
	"holdem-server/pkg/account"
	"holdem-server/pkg/holdem"
)

// maxCreateAttempts bounds the search for an unused room code
const maxCreateAttempts = 100

// PitBoss is responsible for dispatching players to rooms
type PitBoss struct {
	accounts account.Store
	rand     rng.Generator
	defaults holdem.Options

	mu      sync.Mutex
	dealers map[string]*Dealer
}

// RoomSummary describes a room for discovery
type RoomSummary struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Players    int    `json:"players"`
	Seated     int    `json:"seated"`
	MaxSeats   int    `json:"maxSeats"`
	InProgress bool   `json:"inProgress"`
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(accounts account.Store) *PitBoss {
	return &PitBoss{
		accounts: accounts,
		rand:     rng.Crypto{},
		defaults: holdem.DefaultOptions(),
		dealers:  make(map[string]*Dealer),
	}
}

// SetDefaultOptions overrides the baseline options new rooms start from
func (p *PitBoss) SetDefaultOptions(opts holdem.Options) {
	p.mu.Lock()
	p.defaults = opts
	p.mu.Unlock()
}

// ReceivedMessage handles the room-level messages from a client
func (p *PitBoss) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case actionCreateRoom:
		code, err := p.createRoom(c, msg.AdditionalData)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(&Response{Key: "roomCreated", Context: msg.Context, Value: code})
	case actionJoinRoom:
		code, _ := stringInData(msg.AdditionalData, "code")
		if err := p.joinRoom(c, code); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
		}
	case actionDiscoverRooms:
		c.Send(&Response{Key: "rooms", Context: msg.Context, Data: p.ListRooms()})
	}
}

// createRoom creates a new room and joins the client to it
func (p *PitBoss) createRoom(c *Client, data map[string]interface{}) (string, error) {
	if c.currentDealer() != nil {
		return "", holdem.UserError("you are already in a room")
	}

	p.mu.Lock()
	opts := p.defaults
	p.mu.Unlock()
	if name, ok := stringInData(data, "name"); ok {
		opts.Name = name
	}
	if sb, ok := intInData(data, "smallBlind"); ok {
		opts.SmallBlind = sb
	}
	if bb, ok := intInData(data, "bigBlind"); ok {
		opts.BigBlind = bb
	}
	if stack, ok := intInData(data, "startingStack"); ok {
		opts.StartingStack = stack
	}
	if seats, ok := intInData(data, "maxSeats"); ok {
		opts.MaxSeats = seats
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	code, err := p.unusedCode()
	if err != nil {
		return "", err
	}

	dealer, err := NewDealer(p, code, opts)
	if err != nil {
		return "", err
	}

	dealer.StartShift()
	p.dealers[code] = dealer

	logrus.WithFields(logrus.Fields{
		"code":   code,
		"player": c.String(),
	}).Info("room created")

	dealer.AddClient(c)
	return code, nil
}

// joinRoom connects the client to an existing room
func (p *PitBoss) joinRoom(c *Client, code string) error {
	if c.currentDealer() != nil {
		return holdem.UserError("you are already in a room")
	}

	p.mu.Lock()
	dealer, ok := p.dealers[code]
	p.mu.Unlock()

	if !ok {
		return holdem.UserError("that room does not exist")
	}

	dealer.AddClient(c)
	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(c *Client) {
	dealer := c.currentDealer()
	if dealer == nil {
		return
	}

	if dealer.RemoveClient(c) {
		p.removeDealer(dealer)
	}
}

// ClientLeftRoom is called when a client leaves a room on purpose
func (p *PitBoss) ClientLeftRoom(c *Client, dealer *Dealer) {
	if dealer.RemoveClient(c) {
		p.removeDealer(dealer)
	}
}

func (p *PitBoss) removeDealer(dealer *Dealer) {
	p.mu.Lock()
	delete(p.dealers, dealer.Code)
	p.mu.Unlock()

	dealer.EndShift()
	logrus.WithField("code", dealer.Code).Info("room closed")
}

// ListRooms returns a summary of every open room, sorted by code
func (p *PitBoss) ListRooms() []RoomSummary {
	p.mu.Lock()
	defer p.mu.Unlock()

	rooms := make([]RoomSummary, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		rooms = append(rooms, dealer.Summary())
	}

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].Code < rooms[j].Code
	})

	return rooms
}

// unusedCode generates a six-digit room code not currently in use.
// The caller must hold the lock.
func (p *PitBoss) unusedCode() (string, error) {
	for i := 0; i < maxCreateAttempts; i++ {
		code := roomCode(p.rand)
		if _, ok := p.dealers[code]; !ok {
			return code, nil
		}
	}

	return "", holdem.UserError("could not find an available room code")
}

func roomCode(r rng.Generator) string {
	const digits = "0123456789"

	code := make([]byte, 6)
	for i := range code {
		code[i] = digits[r.Intn(len(digits))]
	}

	return string(code)
}
