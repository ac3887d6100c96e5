package potmanager

import (
	"errors"
	"fmt"
	"sort"
)

// ErrParticipantNotFound is an error when a participant with a provided ID cannot be found
var ErrParticipantNotFound = errors.New("participant not found")

// PotManager keeps track of bets, cumulative hand investments, and pots.
// It owns chip movement only; turn order and action legality beyond chip
// arithmetic are the responsibility of the caller.
type PotManager struct {
	participants map[int64]*ParticipantInPot
	tableOrder   []*ParticipantInPot
	// actionAmount is the current bet level for the active betting round
	actionAmount int
}

// New instantiates a new PotManager
func New() *PotManager {
	return &PotManager{
		participants: make(map[int64]*ParticipantInPot),
		tableOrder:   make([]*ParticipantInPot, 0),
	}
}

// SeatParticipant adds a participant to the hand
// This method must be called in seat order
func (p *PotManager) SeatParticipant(pt Participant) error {
	if pt.Balance() <= 0 {
		return errors.New("cannot seat participant without a balance")
	}

	pip := &ParticipantInPot{
		Participant: pt,
		tableIndex:  len(p.tableOrder),
	}
	p.participants[pt.ID()] = pip
	p.tableOrder = append(p.tableOrder, pip)

	return nil
}

// Get returns the tracked state for a participant
func (p *PotManager) Get(id int64) (*ParticipantInPot, error) {
	pip, ok := p.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}

	return pip, nil
}

// CurrentBet returns the bet level for the active betting round
func (p *PotManager) CurrentBet() int {
	return p.actionAmount
}

// Total returns every chip committed to the hand so far, folded players included
func (p *PotManager) Total() int {
	total := 0
	for _, pip := range p.tableOrder {
		total += pip.TotalInvested()
	}

	return total
}

// PostBlind commits a forced bet. A participant who cannot cover the blind
// posts their entire stack and is all-in, but the bet to match stays at the
// nominal blind amount.
func (p *PotManager) PostBlind(pt Participant, amount int) int {
	pip := p.participants[pt.ID()]
	moved := p.adjustParticipant(pip, amount)

	if amount > p.actionAmount {
		p.actionAmount = amount
	}

	return moved
}

// Check verifies the participant may check
func (p *PotManager) Check(pt Participant) error {
	pip := p.participants[pt.ID()]
	if pip.amountInPlay != p.actionAmount {
		return fmt.Errorf("cannot check with ${%d} owed", p.actionAmount-pip.amountInPlay)
	}

	return nil
}

// Call matches the current bet. The participant must owe a positive amount
// and be able to cover it in full; a short stack must go all-in instead.
func (p *PotManager) Call(pt Participant) (int, error) {
	pip := p.participants[pt.ID()]

	owed := p.actionAmount - pip.amountInPlay
	if owed <= 0 {
		return 0, errors.New("cannot call without an active bet")
	}

	if owed > pip.Balance() {
		return 0, errors.New("insufficient chips to call")
	}

	return p.adjustParticipant(pip, p.actionAmount), nil
}

// Raise raises the bet level to newBetOrRaise for the participant.
// The caller is responsible for enforcing the table's minimum raise.
func (p *PotManager) Raise(pt Participant, newBetOrRaise int) (int, error) {
	pip := p.participants[pt.ID()]

	if newBetOrRaise <= p.actionAmount {
		return 0, fmt.Errorf("raise of ${%d} must be greater than the current bet of ${%d}", newBetOrRaise, p.actionAmount)
	}

	if newBetOrRaise > pip.amountInPlay+pip.Balance() {
		newBetOrRaise = pip.amountInPlay + pip.Balance()
	}

	moved := p.adjustParticipant(pip, newBetOrRaise)
	p.actionAmount = pip.amountInPlay

	return moved, nil
}

// AllIn commits the participant's entire remaining stack.
// The second return value is true if the all-in raised the current bet.
func (p *PotManager) AllIn(pt Participant) (int, bool) {
	pip := p.participants[pt.ID()]
	moved := p.adjustParticipant(pip, pip.amountInPlay+pip.Balance())

	isRaise := pip.amountInPlay > p.actionAmount
	if isRaise {
		p.actionAmount = pip.amountInPlay
	}

	return moved, isRaise
}

// Fold marks the participant as folded. Their prior contributions stay in the pot.
func (p *PotManager) Fold(pt Participant) {
	p.participants[pt.ID()].isFolded = true
}

// adjustParticipant moves chips so the participant's amount in play reaches
// the target, clamped at their stack. Returns the amount moved.
func (p *PotManager) adjustParticipant(pip *ParticipantInPot, target int) int {
	adjustment := target - pip.amountInPlay
	if adjustment >= pip.Balance() {
		adjustment = pip.Balance()
		pip.isAllIn = true
	}

	pip.adjustAmountInPlay(adjustment)
	pip.Participant.AdjustBalance(-1 * adjustment)

	return adjustment
}

// NextRound rolls the current round's bets into each participant's
// cumulative investment and resets the bet level
func (p *PotManager) NextRound() {
	for _, pip := range p.tableOrder {
		pip.newRound()
	}

	p.actionAmount = 0
}

// CanActCount returns the number of participants who didn't fold or go all-in
func (p *PotManager) CanActCount() int {
	count := 0
	for _, pip := range p.tableOrder {
		if pip.canAct() {
			count++
		}
	}

	return count
}

// InHandCount returns the number of participants who didn't fold
func (p *PotManager) InHandCount() int {
	count := 0
	for _, pip := range p.tableOrder {
		if !pip.isFolded {
			count++
		}
	}

	return count
}

// BuildPots partitions the hand's total investment into a main pot and side
// pots. Distinct cumulative investments of the non-folded participants define
// the tiers; every participant's contribution counts toward the amounts, but
// only non-folded participants who covered a tier are eligible to win it.
func (p *PotManager) BuildPots() Pots {
	tierSet := make(map[int]bool)
	for _, pip := range p.tableOrder {
		if !pip.isFolded && pip.TotalInvested() > 0 {
			tierSet[pip.TotalInvested()] = true
		}
	}

	tiers := make([]int, 0, len(tierSet))
	for tier := range tierSet {
		tiers = append(tiers, tier)
	}
	sort.Ints(tiers)

	pots := make(Pots, 0, len(tiers))
	prev := 0
	for _, tier := range tiers {
		amount := 0
		for _, pip := range p.tableOrder {
			inv := pip.TotalInvested()
			if inv > tier {
				inv = tier
			}

			if inv > prev {
				amount += inv - prev
			}
		}

		eligible := make([]Participant, 0, len(p.tableOrder))
		for _, pip := range p.tableOrder {
			if !pip.isFolded && pip.TotalInvested() >= tier {
				eligible = append(eligible, pip.Participant)
			}
		}

		pots = append(pots, &Pot{
			Amount:   amount,
			Eligible: eligible,
		})
		prev = tier
	}

	// a folded player may have invested beyond the highest non-folded tier;
	// those chips still belong to the final pot
	if len(pots) > 0 {
		if leftover := p.Total() - pots.Total(); leftover > 0 {
			pots[len(pots)-1].Amount += leftover
		}
	}

	return pots
}

// PayWinners splits each pot among the best-ranked eligible participants.
// Tiers must be ordered from the strongest hand down (see WinManager). Pots
// that divide unevenly pay the odd chips to the earliest seats in table order.
// The final payouts are returned keyed by participant ID.
func (p *PotManager) PayWinners(tiers [][]Participant) map[int64]int {
	payouts := make(map[int64]int)

	for _, pot := range p.BuildPots() {
		winners := p.potWinners(pot, tiers)
		if len(winners) == 0 {
			// cannot happen: every pot has at least one eligible participant
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		for i, winner := range winners {
			amount := share
			if i < remainder {
				amount++
			}

			winner.AdjustBalance(amount)
			payouts[winner.ID()] += amount
		}
	}

	return payouts
}

// potWinners returns the eligible participants from the strongest tier that
// has at least one claim on the pot, sorted by table index
func (p *PotManager) potWinners(pot *Pot, tiers [][]Participant) []*ParticipantInPot {
	eligible := make(map[int64]bool, len(pot.Eligible))
	for _, pt := range pot.Eligible {
		eligible[pt.ID()] = true
	}

	for _, tier := range tiers {
		winners := make([]*ParticipantInPot, 0, len(tier))
		for _, pt := range tier {
			if eligible[pt.ID()] {
				winners = append(winners, p.participants[pt.ID()])
			}
		}

		if len(winners) > 0 {
			sort.Sort(sortByTableIndex(winners))
			return winners
		}
	}

	return nil
}

// Refund returns every committed chip to its owner and is used when a hand
// must be aborted. The payouts are returned keyed by participant ID.
func (p *PotManager) Refund() map[int64]int {
	refunds := make(map[int64]int)
	for _, pip := range p.tableOrder {
		total := pip.TotalInvested()
		if total == 0 {
			continue
		}

		pip.invested = 0
		pip.amountInPlay = 0
		pip.SetAmountInPlay(0)
		pip.Participant.AdjustBalance(total)
		refunds[pip.ID()] = total
	}

	p.actionAmount = 0
	return refunds
}
