package poker

import "holdem-server/pkg/deck"

// straightTracker keeps track of the streak of consecutive ranks seen so far.
// Cards must be fed in descending rank order.
type straightTracker struct {
	streak deck.Hand
}

func (s *straightTracker) resetWithCard(card *deck.Card) {
	s.streak = deck.Hand{card}
}

// checkStraight will check for a straight
// If one has been found, then the highest card in the straight will be assigned to "val"
func (h *HandAnalyzer) checkStraight(card *deck.Card, st *straightTracker, aceValue int, val *int) {
	cardRank := card.Rank
	if cardRank == deck.Ace && aceValue == deck.LowAce {
		cardRank = deck.LowAce
	}

	// currently no streak, so we start from scratch
	if len(st.streak) == 0 {
		st.resetWithCard(card)
		return
	}

	diffInRank := st.streak.LastCard().Rank - cardRank
	if diffInRank == 0 {
		// same rank, the streak is unchanged
		return
	}

	if diffInRank != 1 {
		st.resetWithCard(card)
		return
	}

	st.streak.AddCard(card)

	if len(st.streak) >= h.size {
		// the first card in the streak is the highest since cards arrive in
		// descending order; for the wheel that card is the 5
		*val = st.streak.FirstCard().Rank
	}
}
