package account

import (
	"encoding/json"
	"fmt"

	"holdem-server/pkg/db"
)

// Postgres is a Store backed by the shared database instance
type Postgres struct {
	starting int
}

// NewPostgres returns a database-backed store. New players start with the
// given bankroll.
func NewPostgres(starting int) *Postgres {
	return &Postgres{starting: starting}
}

// Balance implements Store
func (p *Postgres) Balance(playerID int64) (int, error) {
	if err := p.ensure(playerID); err != nil {
		return 0, err
	}

	const query = `
SELECT balance
FROM bankrolls
WHERE player_id = $1`

	var balance int
	if err := db.Instance().QueryRow(query, playerID).Scan(&balance); err != nil {
		return 0, err
	}

	return balance, nil
}

// Deposit implements Store
func (p *Postgres) Deposit(playerID int64, amount int) error {
	if err := p.ensure(playerID); err != nil {
		return err
	}

	const query = `
UPDATE bankrolls
SET balance = balance + $2, updated = (NOW())
WHERE player_id = $1`

	if _, err := db.Instance().Exec(query, playerID, amount); err != nil {
		return fmt.Errorf("could not deposit: %w", err)
	}

	return nil
}

// Withdraw implements Store
func (p *Postgres) Withdraw(playerID int64, amount int) error {
	if err := p.ensure(playerID); err != nil {
		return err
	}

	const query = `
UPDATE bankrolls
SET balance = balance - $2, updated = (NOW())
WHERE player_id = $1
  AND balance >= $2`

	res, err := db.Instance().Exec(query, playerID, amount)
	if err != nil {
		return fmt.Errorf("could not withdraw: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrInsufficientFunds
	}

	return nil
}

// RecordHand implements Store
func (p *Postgres) RecordHand(record HandRecord) error {
	const query = `
INSERT INTO hands (room_code, hand_id, board, payouts)
VALUES ($1, $2, $3, $4)`

	payouts, err := json.Marshal(record.Payouts)
	if err != nil {
		return err
	}

	if _, err := db.Instance().Exec(query, record.RoomCode, record.HandID, record.Board, payouts); err != nil {
		return fmt.Errorf("could not record hand: %w", err)
	}

	return nil
}

// RecentHands implements Store
func (p *Postgres) RecentHands(roomCode string, count int) ([]HandRecord, error) {
	const query = `
SELECT room_code, hand_id, board, payouts
FROM hands
WHERE room_code = $1
ORDER BY id DESC
LIMIT $2`

	rows, err := db.Instance().Query(query, roomCode, count)
	if err != nil {
		return nil, fmt.Errorf("could not query hands: %w", err)
	}
	defer rows.Close()

	hands := make([]HandRecord, 0, count)
	for rows.Next() {
		record, err := scanHand(rows)
		if err != nil {
			return nil, err
		}

		hands = append(hands, record)
	}

	return hands, rows.Err()
}

func scanHand(sc db.Scanner) (HandRecord, error) {
	var record HandRecord
	var payouts []byte
	if err := sc.Scan(&record.RoomCode, &record.HandID, &record.Board, &payouts); err != nil {
		return HandRecord{}, err
	}

	if err := json.Unmarshal(payouts, &record.Payouts); err != nil {
		return HandRecord{}, err
	}

	return record, nil
}

// ensure creates the player's bankroll row if it does not exist yet
func (p *Postgres) ensure(playerID int64) error {
	const query = `
INSERT INTO bankrolls (player_id, balance)
VALUES ($1, $2)
ON CONFLICT (player_id) DO NOTHING`

	if _, err := db.Instance().Exec(query, playerID, p.starting); err != nil {
		return fmt.Errorf("could not create bankroll: %w", err)
	}

	return nil
}
