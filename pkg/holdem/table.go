package holdem

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"holdem-server/pkg/deck"
	"holdem-server/pkg/holdem/potmanager"
	"holdem-server/pkg/poker"
)

// MaxSeats is the hard cap on seats at a table
const MaxSeats = 8

// handSize is the number of hole cards dealt to each participant
const handSize = 2

// Table runs No-Limit Hold'em for a single room. It is not safe for
// concurrent use; the room dealer serializes all calls onto it.
type Table struct {
	logger logrus.FieldLogger
	opts   Options

	players   map[int64]*Player
	joinOrder []int64
	hostID    int64

	seats      map[int]int64
	playerSeat map[int64]int

	phase   Phase
	pending *pendingPhase
	frozen  bool

	deck      *deck.Deck
	community deck.Hand

	handID         int64
	handOrder      []int64
	standing       map[int64]bool
	lastAction     *lastAction
	potman         *potmanager.PotManager
	acted          map[int64]bool
	turn           int64
	roles          roles
	prevDealerSeat int
	handStartTotal int

	events []*Event
}

// NewTable returns a new table with no players
func NewTable(logger logrus.FieldLogger, opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Table{
		logger:     logger,
		opts:       opts,
		players:    make(map[int64]*Player),
		seats:      make(map[int]int64),
		playerSeat: make(map[int64]int),
		phase:      PhaseWaiting,
	}, nil
}

// Options returns a copy of the table's options
func (t *Table) Options() Options {
	return t.opts
}

// Phase returns the table's current phase
func (t *Table) Phase() Phase {
	return t.phase
}

// Frozen returns true if the table halted after an accounting failure
func (t *Table) Frozen() bool {
	return t.frozen
}

// Host returns the player ID of the current host, or 0 for an empty table
func (t *Table) Host() int64 {
	return t.hostID
}

// PlayerCount returns how many players, seated or spectating, are at the table
func (t *Table) PlayerCount() int {
	return len(t.players)
}

// SeatedCount returns how many seats are occupied
func (t *Table) SeatedCount() int {
	return len(t.seats)
}

// Player returns the player with the given ID
func (t *Table) Player(id int64) (*Player, error) {
	p, ok := t.players[id]
	if !ok {
		return nil, ErrNotAtTable
	}

	return p, nil
}

// Players returns every player at the table in join order
func (t *Table) Players() []*Player {
	players := make([]*Player, 0, len(t.players))
	for _, id := range t.joinOrder {
		if p, ok := t.players[id]; ok {
			players = append(players, p)
		}
	}

	return players
}

// Close aborts any hand in progress, refunding committed chips, and returns
// the players so the caller can release their stacks
func (t *Table) Close() []*Player {
	if t.phase.isBettingRound() || t.phase == PhaseShowdown {
		if t.potman != nil {
			t.potman.Refund()
		}
	}

	t.pending = nil
	t.turn = 0
	t.phase = PhaseWaiting

	return t.Players()
}

// Join adds a player to the table as a spectator. The first player to join
// becomes the host.
func (t *Table) Join(id int64, name string, buyIn int) error {
	if _, ok := t.players[id]; ok {
		return UserError("you are already at this table")
	}

	if buyIn <= 0 {
		return UserError("buy-in must be greater than zero")
	}

	t.players[id] = NewPlayer(id, name, buyIn)
	t.joinOrder = append(t.joinOrder, id)

	if t.hostID == 0 {
		t.hostID = id
		t.emit(EventHostChanged, PlayerEventData{PlayerID: id, Name: name})
	}

	t.emit(EventPlayerJoined, PlayerEventData{PlayerID: id, Name: name, Balance: buyIn})
	return nil
}

// Leave removes a player from the table and returns their remaining chips.
// A player leaving mid-hand is folded and keeps their seat until the hand
// resolves; their chips are released in the playerLeft event at that point.
func (t *Table) Leave(id int64) (int, error) {
	p, ok := t.players[id]
	if !ok {
		return 0, ErrNotAtTable
	}

	if t.inLiveHand(id) {
		p.leaving = true
		p.connected = false
		t.foldInternal(id)
		return 0, nil
	}

	return t.removePlayer(id), nil
}

// MarkDisconnected records a dropped connection. A disconnected participant
// is folded and their seat is released once the hand resolves; a disconnect
// outside a hand frees the seat right away. The player stays at the table
// either way so a reconnect can seat them again.
func (t *Table) MarkDisconnected(id int64) {
	p, ok := t.players[id]
	if !ok {
		return
	}

	p.connected = false
	if t.inLiveHand(id) {
		t.foldInternal(id)
		return
	}

	t.unseat(id)
	if t.phase == PhaseWaiting && len(t.seats) < 2 {
		t.pending = nil
	}
}

// MarkConnected records a reconnect
func (t *Table) MarkConnected(id int64) {
	if p, ok := t.players[id]; ok {
		p.connected = true
	}
}

// Sit seats a player. Sitting mid-hand is allowed; the player is dealt into
// the next hand.
func (t *Table) Sit(id int64, seat int) error {
	if t.frozen {
		return ErrTableFrozen
	}

	p, ok := t.players[id]
	if !ok {
		return ErrNotAtTable
	}

	if seat < 1 || seat > t.opts.MaxSeats {
		return ErrInvalidSeat
	}

	if _, ok := t.playerSeat[id]; ok {
		return ErrAlreadySeated
	}

	if _, ok := t.seats[seat]; ok {
		return ErrSeatTaken
	}

	if p.Balance() <= 0 {
		return UserError("you have no chips to play with")
	}

	t.seats[seat] = id
	t.playerSeat[id] = seat
	t.emit(EventSeatTaken, seatEventData{PlayerID: id, Seat: seat})

	t.maybeScheduleStart()
	return nil
}

// Stand vacates a player's seat. Standing mid-hand folds the player; the
// seat is released when the hand resolves.
func (t *Table) Stand(id int64) error {
	if _, ok := t.players[id]; !ok {
		return ErrNotAtTable
	}

	seat, ok := t.playerSeat[id]
	if !ok {
		return ErrNotSeated
	}

	if t.inLiveHand(id) {
		if t.standing == nil {
			t.standing = make(map[int64]bool)
		}
		t.standing[id] = true
		t.foldInternal(id)
		return nil
	}

	delete(t.seats, seat)
	delete(t.playerSeat, id)
	t.emit(EventSeatLeft, seatEventData{PlayerID: id, Seat: seat})

	if t.phase == PhaseWaiting && len(t.seats) < 2 {
		t.pending = nil
	}

	return nil
}

// Tick processes a due phase transition. It returns true if the table
// changed state.
func (t *Table) Tick() bool {
	if t.frozen || t.pending == nil || time.Now().Before(t.pending.After) {
		return false
	}

	next := t.pending.Phase
	t.pending = nil
	t.enterPhase(next)
	return true
}

// --- hand lifecycle ---

func (t *Table) setPending(phase Phase, delay time.Duration) {
	t.pending = &pendingPhase{Phase: phase, After: time.Now().Add(delay)}
}

func (t *Table) maybeScheduleStart() {
	if t.phase == PhaseWaiting && !t.frozen && t.pending == nil && len(t.seats) >= 2 {
		t.setPending(PhasePreFlop, t.opts.StartDelay)
	}
}

func (t *Table) enterPhase(phase Phase) {
	switch phase {
	case PhasePreFlop:
		t.startHand()
	case PhaseFlop, PhaseTurn, PhaseRiver:
		t.dealStreet(phase)
	case PhaseShowdown:
		t.showdown()
	case PhaseFinished:
		t.finishHand()
	case PhaseWaiting:
		t.phase = PhaseWaiting
	}
}

// startHand deals a new hand to every seated player
func (t *Table) startHand() {
	occupied := t.occupiedSeats()
	if len(occupied) < 2 {
		t.phase = PhaseWaiting
		return
	}

	t.handID++
	t.phase = PhasePreFlop
	t.community = nil
	t.acted = make(map[int64]bool)
	t.lastAction = nil
	t.deck = deck.New()
	t.deck.Shuffle(0)

	t.roles = assignRoles(occupied, t.prevDealerSeat)
	t.prevDealerSeat = t.roles.DealerSeat

	t.potman = potmanager.New()
	t.handOrder = make([]int64, 0, len(occupied))
	t.handStartTotal = 0
	for _, seat := range occupied {
		p := t.players[t.seats[seat]]
		p.cards = nil
		t.handOrder = append(t.handOrder, p.ID())
		t.handStartTotal += p.Balance()
		if err := t.potman.SeatParticipant(p); err != nil {
			t.logger.WithError(err).WithField("player", p.ID()).Error("could not seat participant")
			t.abortHand("internal error seating players")
			return
		}
	}

	t.potman.PostBlind(t.players[t.seats[t.roles.SmallBlindSeat]], t.opts.SmallBlind)
	t.potman.PostBlind(t.players[t.seats[t.roles.BigBlindSeat]], t.opts.BigBlind)

	// deal one card at a time starting left of the dealer
	for i := 0; i < handSize; i++ {
		seat := t.roles.DealerSeat
		for range t.handOrder {
			seat = t.nextHandSeat(seat)
			card, err := t.deck.Draw()
			if err != nil {
				t.abortHand("the deck ran out of cards")
				return
			}

			t.players[t.seats[seat]].cards.AddCard(card)
		}
	}

	t.turn = t.firstToAct()

	t.emit(EventHandStarted, handStartedData{HandID: t.handID, Roles: t.roles})
	for _, id := range t.handOrder {
		t.emitTo(id, EventHoleCards, holeCardsData{HandID: t.handID, Cards: t.players[id].cards})
	}
	t.emitState()

	t.logger.WithFields(logrus.Fields{
		"hand":    t.handID,
		"players": len(t.handOrder),
		"dealer":  t.roles.DealerSeat,
	}).Info("hand started")

	// everyone may already be all-in from the blinds
	if t.turn == 0 {
		t.endBettingRound()
	}
}

// dealStreet reveals the flop, turn, or river and opens the betting round
func (t *Table) dealStreet(phase Phase) {
	count := 1
	if phase == PhaseFlop {
		count = 3
	}

	cards, err := t.drawCommunity(count)
	if err != nil {
		t.abortHand("the deck ran out of cards")
		return
	}

	t.phase = phase
	t.acted = make(map[int64]bool)
	t.turn = t.firstToAct()

	t.emit(EventCommunityCards, communityCardsData{Phase: phase, Cards: cards, Board: t.community})
	t.emitState()

	if t.turn == 0 {
		t.endBettingRound()
	}
}

func (t *Table) drawCommunity(count int) (deck.Hand, error) {
	cards := make(deck.Hand, 0, count)
	for i := 0; i < count; i++ {
		card, err := t.deck.Draw()
		if err != nil {
			return nil, err
		}

		cards = append(cards, card)
		t.community = append(t.community, card)
	}

	return cards, nil
}

// endBettingRound rolls bets into the pot and advances the hand
func (t *Table) endBettingRound() {
	t.potman.NextRound()
	t.acted = make(map[int64]bool)
	t.turn = 0

	if !t.checkConservation() {
		return
	}

	if t.potman.CanActCount() <= 1 && t.potman.InHandCount() >= 2 && t.phase != PhaseRiver {
		t.fastForward()
		return
	}

	if t.phase == PhaseRiver {
		t.setPending(PhaseShowdown, t.opts.ShowdownDelay)
		return
	}

	t.setPending(t.phase+1, t.opts.BetweenRounds)
}

// fastForward reveals the remaining board when no further betting is
// possible, then heads to showdown
func (t *Table) fastForward() {
	for t.phase < PhaseRiver {
		count := 1
		if t.phase == PhasePreFlop {
			count = 3
		}

		if _, err := t.drawCommunity(count); err != nil {
			t.abortHand("the deck ran out of cards")
			return
		}

		t.phase++
	}

	t.emit(EventAllInFastForward, communityCardsData{Phase: t.phase, Board: t.community})
	t.emitState()
	t.setPending(PhaseShowdown, t.opts.ShowdownDelay)
}

// showdown evaluates every live hand and pays the pots
func (t *Table) showdown() {
	t.phase = PhaseShowdown

	wm := potmanager.NewWinManager()
	hands := make([]showdownHand, 0, len(t.handOrder))
	for _, id := range t.handOrder {
		p := t.players[id]
		pip, err := t.potman.Get(id)
		if err != nil {
			continue
		}

		if pip.IsFolded() {
			hands = append(hands, showdownHand{PlayerID: id, Folded: true})
			continue
		}

		analyzer := poker.New(5, append(t.community.Clone(), p.cards...))
		wm.AddParticipant(p, analyzer.GetStrength())
		hands = append(hands, showdownHand{
			PlayerID: id,
			Cards:    p.cards,
			Hand:     analyzer.GetHand().String(),
		})
	}

	payouts := t.potman.PayWinners(wm.GetSortedTiers())
	t.emit(EventHandFinished, HandFinishedData{
		HandID:  t.handID,
		Board:   t.community,
		Hands:   hands,
		Payouts: payouts,
	})

	t.logger.WithFields(logrus.Fields{
		"hand":    t.handID,
		"payouts": payouts,
	}).Info("hand finished")

	if !t.checkSettlement() {
		return
	}

	t.enterPhase(PhaseFinished)
}

// settleUncontested ends the hand early when only one player remains. The
// winner's cards are not revealed.
func (t *Table) settleUncontested() {
	var winner *Player
	for _, id := range t.handOrder {
		if pip, err := t.potman.Get(id); err == nil && !pip.IsFolded() {
			winner = t.players[id]
			break
		}
	}

	if winner == nil {
		t.freeze("no claimant for the pot")
		return
	}

	payouts := t.potman.PayWinners([][]potmanager.Participant{{winner}})
	t.emit(EventHandFinished, HandFinishedData{
		HandID:  t.handID,
		Board:   t.community,
		Payouts: payouts,
	})

	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"winner": winner.ID(),
	}).Info("hand won uncontested")

	if !t.checkSettlement() {
		return
	}

	t.phase = PhaseShowdown
	t.enterPhase(PhaseFinished)
}

// finishHand releases seats and schedules the next hand
func (t *Table) finishHand() {
	t.phase = PhaseFinished

	// an early settlement can arrive with a street or showdown still
	// scheduled; that transition must not survive the hand
	t.pending = nil

	for _, id := range t.handOrder {
		p, ok := t.players[id]
		if !ok {
			continue
		}

		switch {
		case p.leaving:
			t.removePlayer(id)
		case p.Balance() == 0:
			t.unseat(id)
			t.emit(EventPlayerEliminated, PlayerEventData{PlayerID: id, Name: p.Name()})
		case t.standing[id], !p.connected:
			t.unseat(id)
		}
	}

	t.handOrder = nil
	t.standing = nil

	if len(t.seats) >= 2 {
		t.setPending(PhasePreFlop, t.opts.NextHandDelay)
		return
	}

	t.phase = PhaseWaiting
	t.emitState()
}

// abortHand refunds all contributions and returns the table to waiting
func (t *Table) abortHand(reason string) {
	if t.potman != nil {
		t.potman.Refund()
	}

	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"reason": reason,
	}).Warn("hand aborted")

	t.emit(EventHandAborted, handAbortedData{HandID: t.handID, Reason: reason})

	t.handOrder = nil
	t.standing = nil
	t.turn = 0
	t.pending = nil
	t.phase = PhaseWaiting
	t.emitState()
	t.maybeScheduleStart()
}

// freeze halts the table permanently after an accounting failure. Committed
// chips are refunded only if the hand never reached settlement.
func (t *Table) freeze(reason string) {
	if t.potman != nil && t.phase.isBettingRound() {
		t.potman.Refund()
	}

	t.frozen = true
	t.pending = nil
	t.turn = 0
	t.phase = PhaseWaiting

	t.logger.WithField("reason", reason).Error("table frozen")
	t.emit(EventTableFrozen, struct {
		Reason string `json:"reason"`
	}{Reason: reason})
}

// checkConservation verifies no chips appeared or vanished mid-hand
func (t *Table) checkConservation() bool {
	total := t.potman.Total()
	for _, id := range t.handOrder {
		if p, ok := t.players[id]; ok {
			total += p.Balance()
		}
	}

	if total != t.handStartTotal {
		t.freeze(fmt.Sprintf("chip conservation failure: have %d, want %d", total, t.handStartTotal))
		return false
	}

	return true
}

// checkSettlement verifies every committed chip was paid back out
func (t *Table) checkSettlement() bool {
	total := 0
	for _, id := range t.handOrder {
		if p, ok := t.players[id]; ok {
			total += p.Balance()
		}
	}

	if total != t.handStartTotal {
		t.freeze(fmt.Sprintf("settlement failure: paid out %d of %d", total, t.handStartTotal))
		return false
	}

	return true
}

// --- helpers ---

// inLiveHand returns true if the player is dealt into a hand that has not
// yet resolved
func (t *Table) inLiveHand(id int64) bool {
	if t.phase == PhaseWaiting || t.phase == PhaseFinished {
		return false
	}

	for _, pid := range t.handOrder {
		if pid == id {
			return true
		}
	}

	return false
}

// foldInternal folds a participant outside their turn, re-evaluating the
// round afterwards
func (t *Table) foldInternal(id int64) {
	pip, err := t.potman.Get(id)
	if err != nil || pip.IsFolded() {
		return
	}

	t.potman.Fold(t.players[id])
	delete(t.acted, id)
	t.afterAction(id, false)
}

// afterAction advances the hand following any fold, call, check, or raise
func (t *Table) afterAction(actor int64, raised bool) {
	if raised {
		t.acted = map[int64]bool{actor: true}
	}

	if t.potman.InHandCount() == 1 {
		t.settleUncontested()
		return
	}

	if t.turn == actor {
		t.turn = t.nextToAct()
	}

	if t.roundComplete() {
		t.endBettingRound()
		return
	}

	t.emitState()
}

// roundComplete returns true once every player who can still act has acted
// since the last raise and matched the current bet
func (t *Table) roundComplete() bool {
	bet := t.potman.CurrentBet()
	for _, id := range t.handOrder {
		pip, err := t.potman.Get(id)
		if err != nil || pip.IsFolded() || pip.IsAllIn() {
			continue
		}

		if !t.acted[id] || pip.AmountInPlay() != bet {
			return false
		}
	}

	return true
}

func (t *Table) removePlayer(id int64) int {
	p := t.players[id]
	chips := p.Balance()

	t.unseat(id)
	delete(t.players, id)
	for i, pid := range t.joinOrder {
		if pid == id {
			t.joinOrder = append(t.joinOrder[:i], t.joinOrder[i+1:]...)
			break
		}
	}

	t.emit(EventPlayerLeft, PlayerEventData{PlayerID: id, Name: p.Name(), Balance: chips})

	if t.hostID == id {
		t.hostID = 0
		if len(t.joinOrder) > 0 {
			t.hostID = t.joinOrder[0]
			host := t.players[t.hostID]
			t.emit(EventHostChanged, PlayerEventData{PlayerID: host.ID(), Name: host.Name()})
		}
	}

	if t.phase == PhaseWaiting && len(t.seats) < 2 {
		t.pending = nil
	}

	return chips
}

func (t *Table) unseat(id int64) {
	if seat, ok := t.playerSeat[id]; ok {
		delete(t.seats, seat)
		delete(t.playerSeat, id)
		t.emit(EventSeatLeft, seatEventData{PlayerID: id, Seat: seat})
	}
}

func (t *Table) occupiedSeats() []int {
	occupied := make([]int, 0, len(t.seats))
	for seat := range t.seats {
		occupied = append(occupied, seat)
	}

	sort.Ints(occupied)
	return occupied
}
