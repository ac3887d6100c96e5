package room

import (
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem"
)

// Client is a player connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// PlayerID uniquely identifies the authenticated player
	PlayerID int64

	// Name is the player's display name
	Name string

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	send    chan interface{}
	pitBoss *PitBoss

	// dealer is written from the run loop and read from the websocket
	// read pump, so access goes through currentDealer/setDealer
	mu     sync.Mutex
	dealer *Dealer
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, pitBoss *PitBoss, playerID int64, name string) *Client {
	return &Client{
		Conn:     conn,
		PlayerID: playerID,
		Name:     name,
		Close:    make(chan string),
		send:     make(chan interface{}, 256),
		pitBoss:  pitBoss,
	}
}

// Send queues a message for the web client. It returns false if the client's
// buffer is full, in which case the message is dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of outbound messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	return fmt.Sprintf("%d:%s", c.PlayerID, c.Name)
}

// ReceivedMessage is called when the server receives a message from the client
func (c *Client) ReceivedMessage(msg *PayloadIn) {
	switch msg.Action {
	case actionCreateRoom, actionJoinRoom, actionDiscoverRooms:
		c.pitBoss.ReceivedMessage(c, msg)
	default:
		dealer := c.currentDealer()
		if dealer == nil {
			logrus.WithField("msg", msg.Action).Warn("received message, but client is not in a room")
			c.Send(newErrorResponse(msg.Context, holdem.UserError("you are not in a room")))
			return
		}

		dealer.ReceivedMessage(c, msg)
	}
}

func (c *Client) currentDealer() *Dealer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dealer
}

func (c *Client) setDealer(d *Dealer) {
	c.mu.Lock()
	c.dealer = d
	c.mu.Unlock()
}

// Disconnected is called when the websocket connection drops
func (c *Client) Disconnected() {
	c.pitBoss.ClientDisconnected(c)
}
