package potmanager

import "encoding/json"

// Pot is an amount of chips plus the set of participants eligible to win it
type Pot struct {
	Amount   int
	Eligible []Participant
}

type potJSON struct {
	Amount   int     `json:"amount"`
	Eligible []int64 `json:"eligible"`
}

// MarshalJSON provides custom marshalling
func (p Pot) MarshalJSON() ([]byte, error) {
	ids := make([]int64, len(p.Eligible))
	for i, pt := range p.Eligible {
		ids[i] = pt.ID()
	}

	return json.Marshal(potJSON{
		Amount:   p.Amount,
		Eligible: ids,
	})
}

// Pots is an ordered collection of pots; the first pot is the main pot
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
