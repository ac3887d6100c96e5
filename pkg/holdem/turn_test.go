package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_assignRoles(t *testing.T) {
	a := assert.New(t)

	a.Equal(roles{DealerSeat: 1, SmallBlindSeat: 2, BigBlindSeat: 3}, assignRoles([]int{1, 2, 3, 4}, 0))
	a.Equal(roles{DealerSeat: 4, SmallBlindSeat: 1, BigBlindSeat: 2}, assignRoles([]int{1, 2, 3, 4}, 3))

	// gaps between occupied seats are skipped
	a.Equal(roles{DealerSeat: 5, SmallBlindSeat: 8, BigBlindSeat: 2}, assignRoles([]int{2, 5, 8}, 2))

	// heads-up the dealer posts the small blind
	a.Equal(roles{DealerSeat: 5, SmallBlindSeat: 5, BigBlindSeat: 2}, assignRoles([]int{2, 5}, 2))
	a.Equal(roles{DealerSeat: 2, SmallBlindSeat: 2, BigBlindSeat: 5}, assignRoles([]int{2, 5}, 5))
}

func TestTable_firstToAct(t *testing.T) {
	a := assert.New(t)

	tbl := testTable(t, 1000, 1000, 1000, 1000)

	a.Equal(1, tbl.roles.DealerSeat)
	a.Equal(2, tbl.roles.SmallBlindSeat)
	a.Equal(3, tbl.roles.BigBlindSeat)

	// pre-flop opens left of the big blind
	a.EqualValues(4, tbl.firstToAct())

	act(t, tbl, 4, ActionCall, 0)
	act(t, tbl, 1, ActionCall, 0)
	act(t, tbl, 2, ActionCall, 0)
	act(t, tbl, 3, ActionCheck, 0)
	a.True(tbl.Tick())
	a.Equal(PhaseFlop, tbl.Phase())

	// post-flop opens left of the dealer
	a.EqualValues(2, tbl.firstToAct())

	// a folded small blind is skipped
	act(t, tbl, 2, ActionFold, 0)
	a.EqualValues(3, tbl.firstToAct())
}
