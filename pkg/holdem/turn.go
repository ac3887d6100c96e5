package holdem

// roles identify the button and blind seats for a hand
type roles struct {
	DealerSeat     int `json:"dealerSeat"`
	SmallBlindSeat int `json:"smallBlindSeat"`
	BigBlindSeat   int `json:"bigBlindSeat"`
}

// assignRoles rotates the button to the next occupied seat after the previous
// dealer. Heads-up, the dealer posts the small blind and the other player the
// big blind. occupied must be sorted ascending and hold at least two seats.
func assignRoles(occupied []int, prevDealer int) roles {
	dealer := nextSeatAfter(occupied, prevDealer)

	if len(occupied) == 2 {
		return roles{
			DealerSeat:     dealer,
			SmallBlindSeat: dealer,
			BigBlindSeat:   nextSeatAfter(occupied, dealer),
		}
	}

	sb := nextSeatAfter(occupied, dealer)
	return roles{
		DealerSeat:     dealer,
		SmallBlindSeat: sb,
		BigBlindSeat:   nextSeatAfter(occupied, sb),
	}
}

// nextSeatAfter returns the smallest occupied seat greater than seat,
// wrapping around to the smallest occupied seat
func nextSeatAfter(occupied []int, seat int) int {
	for _, s := range occupied {
		if s > seat {
			return s
		}
	}

	return occupied[0]
}

// firstToAct determines who opens the betting round. Pre-flop action starts
// left of the big blind (heads-up: the dealer, who posted the small blind);
// on later streets it starts left of the dealer. Players who cannot act are
// skipped. Returns 0 if nobody can act.
func (t *Table) firstToAct() int64 {
	fromSeat := t.roles.DealerSeat
	if t.phase == PhasePreFlop {
		// the scan starts one past fromSeat, so this opens left of the big
		// blind, or with the dealer heads-up
		fromSeat = t.roles.BigBlindSeat
		if len(t.handOrder) == 2 {
			fromSeat = t.prevHandSeat(t.roles.SmallBlindSeat)
		}
	}

	return t.nextEligibleAfterSeat(fromSeat)
}

// nextToAct returns the next player clockwise from the current turn who can
// still act, or 0 if no such player exists
func (t *Table) nextToAct() int64 {
	seat, ok := t.playerSeat[t.turn]
	if !ok {
		return 0
	}

	return t.nextEligibleAfterSeat(seat)
}

// nextEligibleAfterSeat scans clockwise from the seat and returns the first
// participant who can still act
func (t *Table) nextEligibleAfterSeat(seat int) int64 {
	for i := 0; i < len(t.handOrder); i++ {
		seat = t.nextHandSeat(seat)
		id := t.seats[seat]
		if pip, err := t.potman.Get(id); err == nil && !pip.IsFolded() && !pip.IsAllIn() {
			return id
		}
	}

	return 0
}

// nextHandSeat returns the next hand-participant seat clockwise from seat
func (t *Table) nextHandSeat(seat int) int {
	best, wrap := -1, -1
	for _, id := range t.handOrder {
		s := t.playerSeat[id]
		if s > seat && (best == -1 || s < best) {
			best = s
		}
		if wrap == -1 || s < wrap {
			wrap = s
		}
	}

	if best >= 0 {
		return best
	}

	return wrap
}

// prevHandSeat returns the previous hand-participant seat clockwise from seat
func (t *Table) prevHandSeat(seat int) int {
	best, wrap := -1, -1
	for _, id := range t.handOrder {
		s := t.playerSeat[id]
		if s < seat && s > best {
			best = s
		}
		if s > wrap {
			wrap = s
		}
	}

	if best >= 0 {
		return best
	}

	return wrap
}
