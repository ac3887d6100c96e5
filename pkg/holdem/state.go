package holdem

import (
	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem/potmanager"
)

// tableState is a snapshot of the table suitable for sending to clients
type tableState struct {
	Name       string          `json:"name"`
	Phase      Phase           `json:"phase"`
	Frozen     bool            `json:"frozen,omitempty"`
	HandID     int64           `json:"handId,omitempty"`
	Board      deck.Hand       `json:"board,omitempty"`
	Pots       potmanager.Pots `json:"pots,omitempty"`
	PotTotal   int             `json:"potTotal"`
	CurrentBet int             `json:"currentBet"`
	Turn       int64           `json:"turn,omitempty"`
	Roles      *roles          `json:"roles,omitempty"`
	HostID     int64           `json:"hostId,omitempty"`
	LastAction *lastAction     `json:"lastAction,omitempty"`
	Players    []*playerState  `json:"players"`
}

// State builds a snapshot of the table for the given viewer. Hole cards are
// included only on the viewer's own entry. A viewer of 0 sees no hole cards.
func (t *Table) State(viewer int64) interface{} {
	state := &tableState{
		Name:   t.opts.Name,
		Phase:  t.phase,
		Frozen: t.frozen,
		HostID: t.hostID,
	}

	if t.phase != PhaseWaiting {
		state.HandID = t.handID
		state.Board = t.community
		state.Turn = t.turn
		state.LastAction = t.lastAction
		r := t.roles
		state.Roles = &r

		if t.potman != nil {
			state.Pots = t.potman.BuildPots()
			state.PotTotal = t.potman.Total()
			state.CurrentBet = t.potman.CurrentBet()
		}
	}

	state.Players = make([]*playerState, 0, len(t.players))
	for _, id := range t.joinOrder {
		p, ok := t.players[id]
		if !ok {
			continue
		}

		ps := &playerState{
			ID:        p.ID(),
			Name:      p.Name(),
			Seat:      t.playerSeat[id],
			Balance:   p.Balance(),
			Connected: p.connected,
		}

		if t.potman != nil && t.inLiveHand(id) {
			if pip, err := t.potman.Get(id); err == nil {
				ps.InHand = true
				ps.Bet = pip.AmountInPlay()
				ps.Folded = pip.IsFolded()
				ps.AllIn = pip.IsAllIn()
			}
		}

		if id == viewer && ps.InHand && !ps.Folded {
			ps.Cards = p.cards
		}

		state.Players = append(state.Players, ps)
	}

	return state
}

func (t *Table) emitState() {
	t.emit(EventStateUpdate, t.State(0))
}
