package holdem

import (
	"errors"
	"time"
)

// Options configures a No-Limit Hold'em table
type Options struct {
	Name          string
	SmallBlind    int
	BigBlind      int
	StartingStack int
	MaxSeats      int

	// presentation pacing; a zero value keeps transitions immediate in tests
	StartDelay    time.Duration
	BetweenRounds time.Duration
	ShowdownDelay time.Duration
	NextHandDelay time.Duration
}

// DefaultOptions returns the default options for a table
func DefaultOptions() Options {
	return Options{
		SmallBlind:    10,
		BigBlind:      20,
		StartingStack: 1000,
		MaxSeats:      8,
		StartDelay:    time.Second,
		BetweenRounds: time.Second,
		ShowdownDelay: time.Second,
		NextHandDelay: time.Second * 3,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind <= opts.SmallBlind {
		return errors.New("big blind must be greater than the small blind")
	}

	if opts.StartingStack < opts.BigBlind {
		return errors.New("starting stack must cover at least the big blind")
	}

	if opts.MaxSeats < 2 || opts.MaxSeats > MaxSeats {
		return errors.New("table must have between 2 and 8 seats")
	}

	return nil
}
