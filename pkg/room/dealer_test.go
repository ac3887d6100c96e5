package room

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holdem-server/internal/rng"
	"holdem-server/pkg/account"
	"holdem-server/pkg/holdem"
)

func testRoomOptions() holdem.Options {
	opts := holdem.DefaultOptions()
	opts.Name = "test room"
	opts.StartDelay = 0
	opts.BetweenRounds = 0
	opts.ShowdownDelay = 0
	opts.NextHandDelay = 0
	return opts
}

// waitForKey reads from the client's send channel until a message with the
// given key arrives
func waitForKey(t *testing.T, c *Client, key string) interface{} {
	t.Helper()

	for i := 0; i < 100; i++ {
		select {
		case msg := <-c.SendChan():
			switch m := msg.(type) {
			case *Response:
				if m.Key == key {
					return m
				}
			case *holdem.Event:
				if m.Key == key {
					return m
				}
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", key)
		}
	}

	t.Fatalf("never received %q", key)
	return nil
}

func TestRoomCode(t *testing.T) {
	a := assert.New(t)

	code := roomCode(rng.Crypto{})
	a.Len(code, 6)
	for _, r := range code {
		a.True(r >= '0' && r <= '9')
	}
}

func TestPitBoss_createJoinAndDiscover(t *testing.T) {
	a := assert.New(t)

	accounts := account.NewMemory(10000)
	pb := NewPitBoss(accounts)

	c1 := NewClient(nil, pb, 1, "alpha")
	c1.ReceivedMessage(&PayloadIn{Action: "createRoom", Context: "c-1", AdditionalData: map[string]interface{}{
		"name": "friday night",
	}})

	created := waitForKey(t, c1, "roomCreated").(*Response)
	code := created.Value
	a.Len(code, 6)
	waitForKey(t, c1, "joinedRoom")

	// creating buys the host in
	balance, _ := accounts.Balance(1)
	a.Equal(9000, balance)

	c2 := NewClient(nil, pb, 2, "bravo")
	c2.ReceivedMessage(&PayloadIn{Action: "joinRoom", Context: "j-1", AdditionalData: map[string]interface{}{
		"code": code,
	}})
	waitForKey(t, c2, "joinedRoom")

	c2.ReceivedMessage(&PayloadIn{Action: "discoverRooms", Context: "d-1"})
	rooms := waitForKey(t, c2, "rooms").(*Response).Data.([]RoomSummary)
	a.Len(rooms, 1)
	a.Equal(code, rooms[0].Code)
	a.Equal("friday night", rooms[0].Name)

	// a bogus room is rejected
	c3 := NewClient(nil, pb, 3, "charlie")
	c3.ReceivedMessage(&PayloadIn{Action: "joinRoom", Context: "j-2", AdditionalData: map[string]interface{}{
		"code": "000000",
	}})
	errResp := waitForKey(t, c3, "error").(*Response)
	a.Equal("that room does not exist", errResp.Value)
}

func TestDealer_playsAHand(t *testing.T) {
	a := assert.New(t)

	accounts := account.NewMemory(10000)
	pb := NewPitBoss(accounts)

	dealer, err := NewDealer(pb, "123456", testRoomOptions())
	a.NoError(err)
	dealer.StartShift()
	defer dealer.EndShift()
	pb.dealers["123456"] = dealer

	c1 := NewClient(nil, pb, 1, "alpha")
	c2 := NewClient(nil, pb, 2, "bravo")
	dealer.AddClient(c1)
	dealer.AddClient(c2)
	waitForKey(t, c1, "joinedRoom")
	waitForKey(t, c2, "joinedRoom")

	dealer.ReceivedMessage(c1, &PayloadIn{Action: "selectSeat", Context: "s-1", AdditionalData: map[string]interface{}{
		"seat": float64(1),
	}})
	dealer.ReceivedMessage(c2, &PayloadIn{Action: "selectSeat", Context: "s-2", AdditionalData: map[string]interface{}{
		"seat": float64(2),
	}})

	// the ticker deals once both players are down
	waitForKey(t, c1, holdem.EventHandStarted)
	holeCards := waitForKey(t, c1, holdem.EventHoleCards).(*holdem.Event)
	a.EqualValues(1, holeCards.To)

	// heads-up: the dealer acts first and folds
	dealer.ReceivedMessage(c1, &PayloadIn{Action: "action", Context: "a-1", AdditionalData: map[string]interface{}{
		"name": "fold",
	}})

	finished := waitForKey(t, c1, holdem.EventHandFinished).(*holdem.Event)
	data := finished.Data.(holdem.HandFinishedData)
	a.Equal(30, data.Payouts[2])

	// the fold is recorded against the room
	a.Eventually(func() bool {
		hands := accounts.Hands()
		return len(hands) == 1 && hands[0].RoomCode == "123456"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDealer_leaveRoomReturnsChips(t *testing.T) {
	a := assert.New(t)

	accounts := account.NewMemory(10000)
	pb := NewPitBoss(accounts)

	c1 := NewClient(nil, pb, 1, "alpha")
	c1.ReceivedMessage(&PayloadIn{Action: "createRoom", Context: "c-1"})
	waitForKey(t, c1, "joinedRoom")

	balance, _ := accounts.Balance(1)
	a.Equal(9000, balance)

	c1.ReceivedMessage(&PayloadIn{Action: "leaveRoom", Context: "l-1"})

	a.Eventually(func() bool {
		balance, _ := accounts.Balance(1)
		return balance == 10000
	}, 2*time.Second, 10*time.Millisecond)

	// the empty room shuts down
	a.Eventually(func() bool {
		return len(pb.ListRooms()) == 0
	}, 2*time.Second, 10*time.Millisecond)
}
