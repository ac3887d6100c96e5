package holdem

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"holdem-server/pkg/deck"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Name = "test table"
	opts.StartDelay = 0
	opts.BetweenRounds = 0
	opts.ShowdownDelay = 0
	opts.NextHandDelay = 0
	return opts
}

// testTable seats one player per stack, in seat order, and deals the first
// hand. Player IDs count up from 1.
func testTable(t *testing.T, stacks ...int) *Table {
	t.Helper()

	tbl, err := NewTable(logrus.StandardLogger(), testOptions())
	assert.NoError(t, err)

	for i, stack := range stacks {
		id := int64(i + 1)
		assert.NoError(t, tbl.Join(id, fmt.Sprintf("player-%d", id), stack))
		assert.NoError(t, tbl.Sit(id, i+1))
	}

	assert.True(t, tbl.Tick())
	assert.Equal(t, PhasePreFlop, tbl.Phase())
	return tbl
}

// rigCards replaces the dealt hole cards and the remainder of the deck
func rigCards(t *testing.T, tbl *Table, board string, holes ...string) {
	t.Helper()

	for i, hole := range holes {
		tbl.players[int64(i+1)].cards = deck.CardsFromString(hole)
	}

	tbl.deck.Cards = deck.CardsFromString(board)
}

func act(t *testing.T, tbl *Table, id int64, action Action, amount int) {
	t.Helper()
	assert.NoError(t, tbl.Act(id, action, amount))
}

func findEvent(events []*Event, key string) *Event {
	for _, ev := range events {
		if ev.Key == key {
			return ev
		}
	}

	return nil
}

func TestTable_threeHandedHand(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)
	rigCards(t, tbl, "2c,7d,8h,9s,3c", "9c,9d", "13c,12d", "12h,11d")

	a.Equal(1, tbl.roles.DealerSeat)
	a.Equal(2, tbl.roles.SmallBlindSeat)
	a.Equal(3, tbl.roles.BigBlindSeat)
	a.EqualValues(1, tbl.turn)

	// blinds are already posted
	a.Equal(990, tbl.players[2].Balance())
	a.Equal(980, tbl.players[3].Balance())

	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionCall, 0)
	act(t, tbl, 3, ActionCheck, 0)

	a.True(tbl.Tick())
	a.Equal(PhaseFlop, tbl.Phase())
	a.Len(tbl.community, 3)
	a.EqualValues(2, tbl.turn)

	for _, id := range []int64{2, 3, 1} {
		act(t, tbl, id, ActionCheck, 0)
	}

	a.True(tbl.Tick())
	a.Equal(PhaseTurn, tbl.Phase())
	a.Len(tbl.community, 4)

	for _, id := range []int64{2, 3, 1} {
		act(t, tbl, id, ActionCheck, 0)
	}

	a.True(tbl.Tick())
	a.Equal(PhaseRiver, tbl.Phase())
	a.Len(tbl.community, 5)

	for _, id := range []int64{2, 3, 1} {
		act(t, tbl, id, ActionCheck, 0)
	}

	// trip nines take the 60-chip pot
	a.True(tbl.Tick())
	a.Equal(PhaseFinished, tbl.Phase())
	a.Equal(1040, tbl.players[1].Balance())
	a.Equal(980, tbl.players[2].Balance())
	a.Equal(980, tbl.players[3].Balance())

	finished := findEvent(tbl.DrainEvents(), EventHandFinished)
	a.NotNil(finished)
	data := finished.Data.(HandFinishedData)
	a.Equal(60, data.Payouts[1])
	a.Equal("Three of a kind", data.Hands[0].Hand)

	// the button moves and the next hand deals automatically
	a.True(tbl.Tick())
	a.Equal(PhasePreFlop, tbl.Phase())
	a.EqualValues(2, tbl.handID)
	a.Equal(2, tbl.roles.DealerSeat)
}

func TestTable_headsUpOrder(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000)

	// the dealer posts the small blind and opens pre-flop
	a.Equal(1, tbl.roles.DealerSeat)
	a.Equal(1, tbl.roles.SmallBlindSeat)
	a.Equal(2, tbl.roles.BigBlindSeat)
	a.EqualValues(1, tbl.turn)

	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionCheck, 0)

	// post-flop the big blind acts first
	a.True(tbl.Tick())
	a.Equal(PhaseFlop, tbl.Phase())
	a.EqualValues(2, tbl.turn)
}

func TestTable_foldToOne(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)

	act(t, tbl, 1, ActionFold, 0)
	act(t, tbl, 2, ActionFold, 0)

	// the big blind collects the blinds without a showdown
	a.Equal(PhaseFinished, tbl.Phase())
	a.Equal(1010, tbl.players[3].Balance())
	a.Equal(990, tbl.players[2].Balance())

	finished := findEvent(tbl.DrainEvents(), EventHandFinished)
	a.NotNil(finished)
	a.Empty(finished.Data.(HandFinishedData).Hands)
}

func TestTable_bigBlindOption(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)

	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionCall, 0)

	// the big blind may raise instead of checking their option
	a.Equal(PhasePreFlop, tbl.Phase())
	act(t, tbl, 3, ActionRaise, 40)
	a.Equal(60, tbl.potman.CurrentBet())

	// the raise reopens the action
	a.EqualValues(1, tbl.turn)
	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionFold, 0)

	a.True(tbl.Tick())
	a.Equal(PhaseFlop, tbl.Phase())
}

func TestTable_raiseRules(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 30)

	a.Equal(ErrNotYourTurn, tbl.Act(2, ActionCall, 0))

	// a raise below the minimum is brought up to it
	act(t, tbl, 1, ActionRaise, 1)
	a.Equal(40, tbl.potman.CurrentBet())

	act(t, tbl, 2, ActionCall, 0)

	// the short stack cannot cover a minimum re-raise, but may shove
	a.Equal(UserError("a raise requires at least ${40}"), tbl.Act(3, ActionRaise, 40))
	act(t, tbl, 3, ActionAllIn, 0)

	a.True(tbl.Tick())
	a.Equal(PhaseFlop, tbl.Phase())
	a.Equal(ErrCannotAct, tbl.Act(3, ActionCheck, 0))
}

func TestTable_allInFastForward(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 100, 1000)
	rigCards(t, tbl, "3c,8d,10h,5s,6c", "14s,14d", "2c,7h")

	act(t, tbl, 1, ActionAllIn, 0)
	act(t, tbl, 2, ActionCall, 0)

	// with no actors left the board runs out immediately
	a.Equal(PhaseRiver, tbl.Phase())
	a.Len(tbl.community, 5)
	a.NotNil(findEvent(tbl.DrainEvents(), EventAllInFastForward))

	a.True(tbl.Tick())
	a.Equal(PhaseFinished, tbl.Phase())
	a.Equal(200, tbl.players[1].Balance())
	a.Equal(900, tbl.players[2].Balance())
}

func TestTable_elimination(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 100, 1000)
	rigCards(t, tbl, "3c,8d,10h,5s,6c", "2c,7h", "14s,14d")

	act(t, tbl, 1, ActionAllIn, 0)
	act(t, tbl, 2, ActionCall, 0)
	a.True(tbl.Tick())

	// the busted player loses their seat but stays in the room
	a.Equal(0, tbl.players[1].Balance())
	a.Equal(1, tbl.SeatedCount())
	a.Equal(2, tbl.PlayerCount())
	a.Equal(PhaseWaiting, tbl.Phase())
	a.NotNil(findEvent(tbl.DrainEvents(), EventPlayerEliminated))
}

func TestTable_leaveMidHand(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)

	chips, err := tbl.Leave(1)
	a.NoError(err)
	a.Equal(0, chips)

	// the leaver is folded and the hand plays on
	a.Equal(PhasePreFlop, tbl.Phase())
	a.EqualValues(2, tbl.turn)

	act(t, tbl, 2, ActionFold, 0)
	a.Equal(PhaseFinished, tbl.Phase())

	// the seat and chips release once the hand resolves
	_, err = tbl.Player(1)
	a.Equal(ErrNotAtTable, err)
	a.Equal(2, tbl.SeatedCount())

	left := findEvent(tbl.DrainEvents(), EventPlayerLeft)
	a.NotNil(left)
	a.Equal(1000, left.Data.(PlayerEventData).Balance)

	// the host role transfers to the next player in join order
	a.EqualValues(2, tbl.Host())
}

func TestTable_leaveDuringAllInShowdown(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 100, 1000)

	act(t, tbl, 1, ActionAllIn, 0)
	act(t, tbl, 2, ActionCall, 0)

	// the board ran out; the showdown reveal is scheduled
	a.Equal(PhaseRiver, tbl.Phase())
	a.NotNil(tbl.pending)

	// the all-in player leaves before the reveal fires
	chips, err := tbl.Leave(1)
	a.NoError(err)
	a.Equal(0, chips)

	// the hand settled uncontested and the scheduled reveal died with it
	a.Equal(PhaseWaiting, tbl.Phase())
	a.Nil(tbl.pending)
	a.False(tbl.Frozen())
	a.Equal(1100, tbl.players[2].Balance())

	finished := 0
	for _, ev := range tbl.DrainEvents() {
		if ev.Key == EventHandFinished {
			finished++
		}
	}
	a.Equal(1, finished)

	a.False(tbl.Tick())
	a.False(tbl.Frozen())
}

func TestTable_disconnectMidHand(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)

	tbl.MarkDisconnected(1)

	// the disconnect folds them but their seat survives the hand
	a.Equal(PhasePreFlop, tbl.Phase())
	a.EqualValues(2, tbl.turn)
	a.Equal(3, tbl.SeatedCount())

	act(t, tbl, 2, ActionFold, 0)
	a.Equal(PhaseFinished, tbl.Phase())

	// the seat frees at the hand boundary, membership stays
	a.Equal(2, tbl.SeatedCount())
	_, err := tbl.Player(1)
	a.NoError(err)

	// the next hand deals without them
	a.True(tbl.Tick())
	a.Equal(PhasePreFlop, tbl.Phase())
	a.Len(tbl.handOrder, 2)
	a.NotContains(tbl.handOrder, int64(1))
}

func TestTable_disconnectBetweenHands(t *testing.T) {
	a := assert.New(t)

	tbl, err := NewTable(logrus.StandardLogger(), testOptions())
	a.NoError(err)

	for id := int64(1); id <= 3; id++ {
		a.NoError(tbl.Join(id, fmt.Sprintf("player-%d", id), 1000))
		a.NoError(tbl.Sit(id, int(id)))
	}

	a.Equal(PhaseWaiting, tbl.Phase())
	a.NotNil(tbl.pending)

	// no hand running, so the seat frees immediately
	tbl.MarkDisconnected(3)
	a.Equal(2, tbl.SeatedCount())
	a.NotNil(tbl.pending)

	// dropping below two players cancels the scheduled deal
	tbl.MarkDisconnected(2)
	a.Equal(1, tbl.SeatedCount())
	a.Nil(tbl.pending)
	a.False(tbl.Tick())
}

func TestTable_standMidHand(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000)

	a.NoError(tbl.Stand(1))
	act(t, tbl, 2, ActionFold, 0)

	a.Equal(PhaseFinished, tbl.Phase())
	a.Equal(2, tbl.SeatedCount())
	a.Equal(3, tbl.PlayerCount())
}

func TestTable_seatManagement(t *testing.T) {
	a := assert.New(t)

	tbl, err := NewTable(logrus.StandardLogger(), testOptions())
	a.NoError(err)

	a.NoError(tbl.Join(1, "alpha", 1000))
	a.EqualValues(1, tbl.Host())
	a.Equal(UserError("you are already at this table"), tbl.Join(1, "alpha", 1000))
	a.NoError(tbl.Join(2, "bravo", 1000))

	a.Equal(ErrNotAtTable, tbl.Sit(99, 1))
	a.Equal(ErrInvalidSeat, tbl.Sit(1, 0))
	a.Equal(ErrInvalidSeat, tbl.Sit(1, 9))

	a.NoError(tbl.Sit(1, 1))
	a.Equal(ErrAlreadySeated, tbl.Sit(1, 2))
	a.Equal(ErrSeatTaken, tbl.Sit(2, 1))

	a.Equal(ErrNotSeated, tbl.Stand(2))
	a.Equal(ErrNoBettingRound, tbl.Act(1, ActionCheck, 0))

	// one seated player is not enough to start
	a.False(tbl.Tick())
	a.Equal(PhaseWaiting, tbl.Phase())
}

func TestTable_conservationFreeze(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000)

	// simulate corrupted accounting
	tbl.players[1].balance += 5

	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionCheck, 0)

	a.True(tbl.Frozen())
	a.Equal(ErrTableFrozen, tbl.Act(1, ActionCheck, 0))
	a.Equal(ErrTableFrozen, tbl.Sit(1, 5))
	a.NotNil(findEvent(tbl.DrainEvents(), EventTableFrozen))
}
