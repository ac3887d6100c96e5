package mux

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"holdem-server/internal/jwt"
	"holdem-server/pkg/account"
	"holdem-server/pkg/room"
)

func TestMux_postPlayer(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("", account.NewMemory(5000)))
	defer ts.Close()

	var created postPlayerResponse
	assertPost(t, ts, "/player", postPlayerRequest{Name: "Alice"}, &created, 201)
	a.Equal("Alice", created.Name)
	a.Equal(5000, created.Balance)
	a.Greater(created.PlayerID, int64(0))
	a.NotEmpty(created.JWT)

	id, err := jwt.ValidPlayerID(created.JWT)
	a.NoError(err)
	a.Equal(created.PlayerID, id)

	var errObj errorResponse
	assertPost(t, ts, "/player", postPlayerRequest{}, &errObj, 400)
	a.Equal("name is required", errObj.Message)

	// second create from the same address must wait
	assertPost(t, ts, "/player", postPlayerRequest{Name: "Bob"}, &errObj, 400)
	a.Equal("please wait before creating another player", errObj.Message)
}

func TestMux_getPlayerBalance(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("", account.NewMemory(2500)))
	defer ts.Close()

	token, err := jwt.Sign(77)
	a.NoError(err)

	var balance playerBalanceResponse
	assertGet(t, ts, "/player/balance", &balance, 200, token)
	a.Equal(int64(77), balance.PlayerID)
	a.Equal(2500, balance.Balance)
}

func TestMux_getRooms(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	ts := httptest.NewServer(NewMux("", account.NewMemory(2500)))
	defer ts.Close()

	var rooms []room.RoomSummary
	assertGet(t, ts, "/rooms", &rooms, 200)
	a.Len(rooms, 0)
}

func TestMux_getRoomHands(t *testing.T) {
	setupJWT()
	a := assert.New(t)

	accounts := account.NewMemory(2500)
	a.NoError(accounts.RecordHand(account.HandRecord{
		RoomCode: "123456",
		HandID:   1,
		Board:    "2c,7d,8h,9s,3c",
		Payouts:  map[int64]int{42: 60},
	}))

	ts := httptest.NewServer(NewMux("", accounts))
	defer ts.Close()

	token, err := jwt.Sign(42)
	a.NoError(err)

	var hands []account.HandRecord
	assertGet(t, ts, "/rooms/123456/hands", &hands, 200, token)
	a.Len(hands, 1)
	a.Equal(int64(1), hands[0].HandID)
	a.Equal(60, hands[0].Payouts[42])

	assertGet(t, ts, "/rooms/999999/hands", &hands, 200, token)
	a.Len(hands, 0)
}
