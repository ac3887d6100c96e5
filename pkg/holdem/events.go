package holdem

import "holdem-server/pkg/deck"

// Event keys
const (
	EventPlayerJoined     = "playerJoined"
	EventPlayerLeft       = "playerLeft"
	EventSeatTaken        = "seatTaken"
	EventSeatLeft         = "seatLeft"
	EventHostChanged      = "hostChanged"
	EventHandStarted      = "handStarted"
	EventHoleCards        = "holeCards"
	EventStateUpdate      = "stateUpdate"
	EventCommunityCards   = "communityCardsRevealed"
	EventAllInFastForward = "allInShowdown"
	EventHandFinished     = "handFinished"
	EventPlayerEliminated = "playerEliminated"
	EventHandAborted      = "handAborted"
	EventTableFrozen      = "tableFrozen"
)

// Event is an outbound message produced by the table. To identifies a single
// recipient; zero means broadcast to the whole room.
type Event struct {
	Key  string      `json:"key"`
	To   int64       `json:"-"`
	Data interface{} `json:"data,omitempty"`
}

// PlayerEventData names a player in a membership event. A playerLeft event
// carries the player's released chips in Balance.
type PlayerEventData struct {
	PlayerID int64  `json:"playerId"`
	Name     string `json:"name"`
	Balance  int    `json:"balance,omitempty"`
}

// seatEventData records a seat change
type seatEventData struct {
	PlayerID int64 `json:"playerId"`
	Seat     int   `json:"seat"`
}

// handStartedData announces a new hand
type handStartedData struct {
	HandID int64 `json:"handId"`
	Roles  roles `json:"roles"`
}

// holeCardsData is sent privately to each participant
type holeCardsData struct {
	HandID int64     `json:"handId"`
	Cards  deck.Hand `json:"cards"`
}

// communityCardsData announces newly revealed board cards
type communityCardsData struct {
	Phase Phase     `json:"phase"`
	Cards deck.Hand `json:"cards"`
	Board deck.Hand `json:"board"`
}

// showdownHand is one participant's revealed holding at showdown
type showdownHand struct {
	PlayerID int64     `json:"playerId"`
	Cards    deck.Hand `json:"cards,omitempty"`
	Hand     string    `json:"hand,omitempty"`
	Folded   bool      `json:"folded,omitempty"`
}

// HandFinishedData reports the settlement of a hand
type HandFinishedData struct {
	HandID  int64          `json:"handId"`
	Board   deck.Hand      `json:"board"`
	Hands   []showdownHand `json:"hands"`
	Payouts map[int64]int  `json:"payouts"`
}

// handAbortedData explains why a hand could not finish
type handAbortedData struct {
	HandID int64  `json:"handId"`
	Reason string `json:"reason"`
}

func (t *Table) emit(key string, data interface{}) {
	t.events = append(t.events, &Event{Key: key, Data: data})
}

func (t *Table) emitTo(to int64, key string, data interface{}) {
	t.events = append(t.events, &Event{Key: key, To: to, Data: data})
}

// DrainEvents returns the events produced since the last call. The caller is
// responsible for delivering them.
func (t *Table) DrainEvents() []*Event {
	events := t.events
	t.events = nil
	return events
}
