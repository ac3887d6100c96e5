package account

import "sync"

// Memory is an in-process Store used when no database is configured.
// Bankrolls do not survive a restart.
type Memory struct {
	starting int

	mu       sync.Mutex
	balances map[int64]int
	hands    []HandRecord
}

// NewMemory returns an in-memory store. New players start with the given
// bankroll.
func NewMemory(starting int) *Memory {
	return &Memory{
		starting: starting,
		balances: make(map[int64]int),
	}
}

// Balance implements Store
func (m *Memory) Balance(playerID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balance(playerID), nil
}

// Deposit implements Store
func (m *Memory) Deposit(playerID int64, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.balances[playerID] = m.balance(playerID) + amount
	return nil
}

// Withdraw implements Store
func (m *Memory) Withdraw(playerID int64, amount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	balance := m.balance(playerID)
	if balance < amount {
		return ErrInsufficientFunds
	}

	m.balances[playerID] = balance - amount
	return nil
}

// RecordHand implements Store
func (m *Memory) RecordHand(record HandRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hands = append(m.hands, record)
	return nil
}

// RecentHands implements Store
func (m *Memory) RecentHands(roomCode string, count int) ([]HandRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hands := make([]HandRecord, 0, count)
	for i := len(m.hands) - 1; i >= 0 && len(hands) < count; i-- {
		if m.hands[i].RoomCode == roomCode {
			hands = append(hands, m.hands[i])
		}
	}

	return hands, nil
}

// Hands returns a copy of every recorded hand
func (m *Memory) Hands() []HandRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	hands := make([]HandRecord, len(m.hands))
	copy(hands, m.hands)
	return hands
}

// caller must hold the lock
func (m *Memory) balance(playerID int64) int {
	if balance, ok := m.balances[playerID]; ok {
		return balance
	}

	m.balances[playerID] = m.starting
	return m.starting
}
