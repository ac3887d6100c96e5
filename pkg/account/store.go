// Package account tracks player bankrolls outside of any single room and
// keeps a record of finished hands.
package account

import "errors"

// ErrInsufficientFunds is returned when a withdrawal exceeds the balance
var ErrInsufficientFunds = errors.New("insufficient funds")

// HandRecord captures the outcome of a single hand
type HandRecord struct {
	RoomCode string        `json:"roomCode"`
	HandID   int64         `json:"handId"`
	Board    string        `json:"board"`
	Payouts  map[int64]int `json:"payouts"`
}

// Store manages player bankrolls. Implementations must be safe for
// concurrent use; every room dealer calls into the same store.
type Store interface {
	// Balance returns the player's bankroll, creating it with the store's
	// starting amount if the player is new
	Balance(playerID int64) (int, error)

	// Deposit adds chips to the player's bankroll
	Deposit(playerID int64, amount int) error

	// Withdraw removes chips from the player's bankroll. It returns
	// ErrInsufficientFunds if the balance cannot cover the amount.
	Withdraw(playerID int64, amount int) error

	// RecordHand persists the outcome of a finished hand
	RecordHand(record HandRecord) error

	// RecentHands returns up to count hands played in the room, newest first
	RecentHands(roomCode string, count int) ([]HandRecord, error)
}
