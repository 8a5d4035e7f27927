package handengine

import (
	"fmt"

	"github.com/ThomasDillard1/realtime-poker/internal/deck"
)

// StartHand builds a fresh HandState for one hand, per spec §4.D.1.
// seatsInOrder is the room's full seating order; only seats with
// chips > 0 are dealt in. dealerSeatID must be one of the eligible
// seats (the Room Controller is responsible for rotating it).
// smallBlind and bigBlind are taken as configured, with no enforced
// relation between them (spec §3).
func StartHand(seatsInOrder []*Seat, dealerSeatID string, smallBlind, bigBlind int) (*HandState, error) {
	eligible := make([]*Seat, 0, len(seatsInOrder))
	seatMap := make(map[string]*Seat, len(seatsInOrder))
	for _, s := range seatsInOrder {
		s.resetForHand()
		seatMap[s.ID] = s
		if s.Chips > 0 {
			eligible = append(eligible, s)
			s.Status = Active
		}
	}
	if len(eligible) < 2 {
		return nil, ErrNotEnoughSeats
	}

	dealerPos := -1
	for i, s := range eligible {
		if s.ID == dealerSeatID {
			dealerPos = i
			break
		}
	}
	if dealerPos < 0 {
		return nil, fmt.Errorf("handengine: dealer seat %q not eligible: %w", dealerSeatID, ErrUnknownSeat)
	}

	playerOrder := make([]string, len(eligible))
	for i := range eligible {
		playerOrder[i] = eligible[(dealerPos+i)%len(eligible)].ID
	}
	eligible[dealerPos].IsDealer = true

	var sbSeat, bbSeat *Seat
	var firstActorIdx int
	if len(eligible) == 2 {
		// heads-up: dealer is also small blind and acts first pre-flop.
		sbSeat = eligible[dealerPos]
		bbSeat = eligible[(dealerPos+1)%2]
		firstActorIdx = 0 // playerOrder[0] == dealer/SB
	} else {
		sbIdx := 1
		bbIdx := 2
		sbSeat = seatMap[playerOrder[sbIdx]]
		bbSeat = seatMap[playerOrder[bbIdx]]
		firstActorIdx = 3 % len(eligible)
	}
	sbSeat.IsSmallBlind = true
	bbSeat.IsBigBlind = true

	d := deck.New()
	if err := d.Shuffle(); err != nil {
		return nil, fmt.Errorf("handengine: start hand: %w", err)
	}

	hs := &HandState{
		Seats:          seatMap,
		Phase:          Preflop,
		Deck:           d,
		CommunityCards: nil,
		RoundBets:      make(map[string]int, len(eligible)),
		Contributions:  make(map[string]int, len(eligible)),
		ActedThisRound: make(map[string]bool, len(eligible)),
		PlayerOrder:    playerOrder,
		DealerSeatID:   dealerSeatID,
		BigBlind:       bigBlind,
	}

	for _, seatID := range playerOrder {
		seatMap[seatID].HoleCards = d.Draw(2)
	}

	postBlind(hs, sbSeat, smallBlind)
	postBlind(hs, bbSeat, bigBlind)

	hs.CurrentBet = bigBlind
	hs.MinRaise = bigBlind
	hs.LastRaiserID = bbSeat.ID
	hs.CurrentIndex = firstActorIdx

	Logger.Debug("hand started", "dealer", dealerSeatID, "players", len(eligible), "pot", hs.Pot)
	return hs, nil
}

// postBlind commits a forced bet capped by the seat's remaining chips;
// a short stack posts all-in for less than the nominal blind.
func postBlind(hs *HandState, seat *Seat, amount int) {
	add := amount
	if add > seat.Chips {
		add = seat.Chips
	}
	seat.Chips -= add
	hs.RoundBets[seat.ID] += add
	hs.Contributions[seat.ID] += add
	hs.Pot += add
	if seat.Chips == 0 {
		seat.Status = AllIn
	}
}
