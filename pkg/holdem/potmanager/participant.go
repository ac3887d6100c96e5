package potmanager

// Participant provides an interface for retrieving and adjusting a participant's chip stack
type Participant interface {
	ID() int64
	Balance() int
	AdjustBalance(amount int)
	SetAmountInPlay(amount int)
}

// ParticipantInPot tracks a participant's contributions over the course of a hand
type ParticipantInPot struct {
	Participant
	// tableIndex is where the player is seated at the table
	tableIndex int
	// amountInPlay keeps track of how much the player is risking on the current betting round
	amountInPlay int
	// invested is the amount committed in completed betting rounds
	invested int
	isAllIn  bool
	isFolded bool
}

// TotalInvested returns everything the participant has committed to the hand so far
func (p *ParticipantInPot) TotalInvested() int {
	return p.invested + p.amountInPlay
}

// AmountInPlay returns the participant's bet for the current round
func (p *ParticipantInPot) AmountInPlay() int {
	return p.amountInPlay
}

// IsAllIn returns true if the participant has committed their entire stack
func (p *ParticipantInPot) IsAllIn() bool {
	return p.isAllIn
}

// IsFolded returns true if the participant folded
func (p *ParticipantInPot) IsFolded() bool {
	return p.isFolded
}

// newRound is called when the betting round is complete
func (p *ParticipantInPot) newRound() {
	p.invested += p.amountInPlay
	p.amountInPlay = 0
	p.SetAmountInPlay(0)
}

func (p *ParticipantInPot) adjustAmountInPlay(amount int) {
	p.amountInPlay += amount
	p.Participant.SetAmountInPlay(p.amountInPlay)
}

// canAct returns true if the participant can check, call, bet, raise, fold
func (p *ParticipantInPot) canAct() bool {
	return !p.isFolded && !p.isAllIn
}

type sortByTableIndex []*ParticipantInPot

func (s sortByTableIndex) Len() int {
	return len(s)
}

func (s sortByTableIndex) Less(i, j int) bool {
	return s[i].tableIndex < s[j].tableIndex
}

func (s sortByTableIndex) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
