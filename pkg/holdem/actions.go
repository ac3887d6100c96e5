package holdem

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/holdem/potmanager"
)

// Action is something a player can do on their turn
type Action int

// Action constants
const (
	ActionFold Action = iota
	ActionCheck
	ActionCall
	ActionRaise
	ActionAllIn
)

// String implements the fmt.Stringer interface
func (a Action) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionRaise:
		return "raise"
	case ActionAllIn:
		return "allIn"
	}

	panic("unknown action")
}

// ActionFromString parses a wire-format action name
func ActionFromString(name string) (Action, error) {
	switch name {
	case "fold":
		return ActionFold, nil
	case "check":
		return ActionCheck, nil
	case "call":
		return ActionCall, nil
	case "raise":
		return ActionRaise, nil
	case "allIn":
		return ActionAllIn, nil
	}

	return 0, UserError(fmt.Sprintf("unknown action: %s", name))
}

// lastAction records the most recent action for state updates
type lastAction struct {
	PlayerID int64  `json:"playerId"`
	Action   Action `json:"action"`
	Amount   int    `json:"amount,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface
func (a Action) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", a.String())), nil
}

// Act performs an action for the player whose turn it is. For a raise, the
// amount is the chips added on top of the player's current-round bet; other
// actions ignore it.
func (t *Table) Act(id int64, action Action, amount int) error {
	if t.frozen {
		return ErrTableFrozen
	}

	if !t.phase.isBettingRound() {
		return ErrNoBettingRound
	}

	p, ok := t.players[id]
	if !ok {
		return ErrNotAtTable
	}

	pip, err := t.potman.Get(id)
	if err != nil {
		return ErrNotInHand
	}

	if pip.IsFolded() || pip.IsAllIn() {
		return ErrCannotAct
	}

	if t.turn != id {
		return ErrNotYourTurn
	}

	raised := false
	moved := 0

	switch action {
	case ActionFold:
		t.potman.Fold(p)
	case ActionCheck:
		if err := t.potman.Check(p); err != nil {
			return UserError(err.Error())
		}
	case ActionCall:
		moved, err = t.potman.Call(p)
		if err != nil {
			return UserError(err.Error())
		}
	case ActionRaise:
		moved, err = t.raise(p, pip, amount)
		if err != nil {
			return err
		}
		raised = true
	case ActionAllIn:
		moved, raised = t.potman.AllIn(p)
	default:
		return UserError("unknown action")
	}

	t.logger.WithFields(logrus.Fields{
		"player": id,
		"action": action.String(),
		"amount": moved,
	}).Debug("player acted")

	t.acted[id] = true
	t.lastAction = &lastAction{PlayerID: id, Action: action, Amount: moved}
	t.afterAction(id, raised)
	return nil
}

// raise validates the table minimum and moves the chips. The raise must at
// least match the current bet plus one big blind; a larger amount is clamped
// to the player's stack.
func (t *Table) raise(p *Player, pip *potmanager.ParticipantInPot, amount int) (int, error) {
	owed := t.potman.CurrentBet() - pip.AmountInPlay()
	minRaise := owed + t.opts.BigBlind

	if p.Balance() < minRaise {
		return 0, UserError(fmt.Sprintf("a raise requires at least ${%d}", minRaise))
	}

	if amount < minRaise {
		amount = minRaise
	}

	if amount > p.Balance() {
		amount = p.Balance()
	}

	moved, err := t.potman.Raise(p, pip.AmountInPlay()+amount)
	if err != nil {
		return 0, UserError(err.Error())
	}

	return moved, nil
}
