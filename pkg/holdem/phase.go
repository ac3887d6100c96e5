package holdem

import (
	"encoding/json"
	"time"
)

// Phase represents where a table is in the hand lifecycle
type Phase int

// Phase constants
const (
	PhaseWaiting Phase = iota
	PhasePreFlop
	PhaseFlop
	PhaseTurn
	PhaseRiver
	PhaseShowdown
	PhaseFinished
)

// String implements the fmt.Stringer interface
func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhasePreFlop:
		return "pre-flop"
	case PhaseFlop:
		return "flop"
	case PhaseTurn:
		return "turn"
	case PhaseRiver:
		return "river"
	case PhaseShowdown:
		return "showdown"
	case PhaseFinished:
		return "finished"
	}

	panic("unknown phase")
}

// MarshalJSON implements the json.Marshaler interface
func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(p),
		Name: p.String(),
	})
}

// isBettingRound returns true if players may act during the phase
func (p Phase) isBettingRound() bool {
	switch p {
	case PhasePreFlop, PhaseFlop, PhaseTurn, PhaseRiver:
		return true
	}

	return false
}

// pendingPhase is a deferred phase transition processed by Tick()
type pendingPhase struct {
	Phase Phase
	After time.Time
}
