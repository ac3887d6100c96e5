package holdem

// UserError is an error that is safe to display to the end user
type UserError string

// Error implements the error interface
func (u UserError) Error() string {
	return string(u)
}

// errors that are the user's fault
const (
	// ErrNotYourTurn happens when a player acts out of turn
	ErrNotYourTurn = UserError("it is not your turn")

	// ErrNotInHand happens when a non-participant tries to act
	ErrNotInHand = UserError("you are not in the current hand")

	// ErrCannotAct happens when a folded or all-in player tries to act
	ErrCannotAct = UserError("you cannot act in this hand")

	// ErrNoBettingRound happens when an action arrives outside a betting round
	ErrNoBettingRound = UserError("there is no betting round in progress")

	// ErrSeatTaken happens when a player selects an occupied seat
	ErrSeatTaken = UserError("that seat is already taken")

	// ErrInvalidSeat happens when a seat number is out of range
	ErrInvalidSeat = UserError("that seat does not exist")

	// ErrAlreadySeated happens when a seated player selects another seat
	ErrAlreadySeated = UserError("you are already seated")

	// ErrNotSeated happens when an unseated player tries to stand
	ErrNotSeated = UserError("you are not seated")

	// ErrNotAtTable happens when an unknown player performs a table operation
	ErrNotAtTable = UserError("you are not at this table")

	// ErrTableFrozen happens after an unrecoverable accounting failure
	ErrTableFrozen = UserError("this table has been frozen")
)
