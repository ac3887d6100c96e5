package room

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/account"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem"
)

// tickInterval is how often the dealer checks the table for due transitions
const tickInterval = 100 * time.Millisecond

// Dealer runs a single room. All table access happens on its run loop.
type Dealer struct {
	// Code is the room's six-digit join code
	Code string

	pitBoss *PitBoss
	table   *holdem.Table
	logger  logrus.FieldLogger

	lock    sync.RWMutex
	clients map[*Client]bool
	summary RoomSummary

	execInRunLoop chan func()
	close         chan bool
}

// NewDealer creates a new dealer for the room.
// This is called from a blocking state, so it needs to return quickly.
func NewDealer(pitBoss *PitBoss, code string, opts holdem.Options) (*Dealer, error) {
	logger := logrus.WithField("room", code)
	table, err := holdem.NewTable(logger, opts)
	if err != nil {
		return nil, err
	}

	return &Dealer{
		Code:          code,
		pitBoss:       pitBoss,
		table:         table,
		logger:        logger,
		clients:       make(map[*Client]bool),
		summary:       RoomSummary{Code: code, Name: opts.Name, MaxSeats: opts.MaxSeats},
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}, nil
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
			d.flushEvents()
		case <-ticker.C:
			if d.table.Tick() {
				d.flushEvents()
			}
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			d.settleRemaining()
			return
		}
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// AddClient joins a client to the room, buying them in from their account.
// This method must return quickly.
func (d *Dealer) AddClient(client *Client) {
	client.setDealer(d)

	d.lock.Lock()
	d.clients[client] = true
	d.lock.Unlock()

	d.execInRunLoop <- func() {
		if _, err := d.table.Player(client.PlayerID); err == nil {
			// reconnecting to a room they are already in
			d.table.MarkConnected(client.PlayerID)
			client.Send(&Response{Key: "joinedRoom", Value: d.Code, Data: d.table.State(client.PlayerID)})
			return
		}

		buyIn := d.table.Options().StartingStack
		if err := d.pitBoss.accounts.Withdraw(client.PlayerID, buyIn); err != nil {
			client.Send(newErrorResponse("", err))
			return
		}

		if err := d.table.Join(client.PlayerID, client.Name, buyIn); err != nil {
			_ = d.pitBoss.accounts.Deposit(client.PlayerID, buyIn)
			client.Send(newErrorResponse("", err))
			return
		}

		client.Send(&Response{Key: "joinedRoom", Value: d.Code, Data: d.table.State(client.PlayerID)})
	}
}

// RemoveClient detaches a dropped client.
// The return value is true if this was the last client in the room.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.execInRunLoop <- func() {
			d.table.MarkDisconnected(client.PlayerID)
		}
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// Summary returns the discovery summary for the room
func (d *Dealer) Summary() RoomSummary {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.summary
}

// ReceivedMessage is called when a client sends a message to the room
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	d.execInRunLoop <- func() {
		if err := d.handleMessage(c, msg); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(OK(msg.Context))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) handleMessage(c *Client, msg *PayloadIn) error {
	switch msg.Action {
	case actionSelectSeat:
		seat, ok := intInData(msg.AdditionalData, "seat")
		if !ok {
			return holdem.UserError("a seat number is required")
		}

		return d.table.Sit(c.PlayerID, seat)
	case actionLeaveSeat:
		return d.table.Stand(c.PlayerID)
	case actionGameAction:
		name, ok := stringInData(msg.AdditionalData, "name")
		if !ok {
			return holdem.UserError("an action name is required")
		}

		action, err := holdem.ActionFromString(name)
		if err != nil {
			return err
		}

		amount, _ := intInData(msg.AdditionalData, "amount")
		return d.table.Act(c.PlayerID, action, amount)
	case actionGetState:
		c.Send(&Response{Key: "gameState", Context: msg.Context, Data: d.table.State(c.PlayerID)})
		return nil
	case actionLeaveRoom:
		if _, err := d.table.Leave(c.PlayerID); err != nil {
			return err
		}

		c.setDealer(nil)
		go d.pitBoss.ClientLeftRoom(c, d)
		return nil
	}

	d.logger.WithField("action", msg.Action).Warn("unknown message")
	return holdem.UserError("unknown action")
}

// flushEvents delivers everything the table produced since the last call.
// NOTE: must only be called from the run loop
func (d *Dealer) flushEvents() {
	events := d.table.DrainEvents()
	if len(events) == 0 {
		d.updateSummary()
		return
	}

	clients := d.Clients()
	for _, ev := range events {
		switch ev.Key {
		case holdem.EventPlayerLeft:
			// chips come back to the account when a player's seat settles
			data := ev.Data.(holdem.PlayerEventData)
			if data.Balance > 0 {
				if err := d.pitBoss.accounts.Deposit(data.PlayerID, data.Balance); err != nil {
					d.logger.WithError(err).WithField("player", data.PlayerID).Error("could not return chips")
				}
			}
		case holdem.EventHandFinished:
			data := ev.Data.(holdem.HandFinishedData)
			record := account.HandRecord{
				RoomCode: d.Code,
				HandID:   data.HandID,
				Board:    deck.CardsToString(data.Board),
				Payouts:  data.Payouts,
			}

			if err := d.pitBoss.accounts.RecordHand(record); err != nil {
				d.logger.WithError(err).Error("could not record hand")
			}
		}

		for _, client := range clients {
			if ev.To != 0 && ev.To != client.PlayerID {
				continue
			}

			client.Send(ev)
		}
	}

	d.updateSummary()
}

// NOTE: must only be called from the run loop
func (d *Dealer) updateSummary() {
	d.lock.Lock()
	d.summary.Players = d.table.PlayerCount()
	d.summary.Seated = d.table.SeatedCount()
	d.summary.InProgress = d.table.Phase() != holdem.PhaseWaiting
	d.lock.Unlock()
}

// settleRemaining returns outstanding chips to player accounts when the room
// closes with players still at the table.
// NOTE: must only be called from the run loop, on shutdown
func (d *Dealer) settleRemaining() {
	for _, p := range d.table.Close() {
		if p.Balance() == 0 {
			continue
		}

		if err := d.pitBoss.accounts.Deposit(p.ID(), p.Balance()); err != nil {
			d.logger.WithError(err).WithField("player", p.ID()).Error("could not return chips")
		}
	}
}
