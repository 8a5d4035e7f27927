package handengine

import "fmt"

// LegalActions derives the set of actions a seat may currently take,
// per spec §4.D.2. A seat whose status is not Active has none.
func LegalActions(hs *HandState, seatID string) []ActionType {
	seat, ok := hs.Seats[seatID]
	if !ok || seat.Status != Active {
		return nil
	}

	owed := hs.CurrentBet - hs.RoundBets[seatID]
	actions := []ActionType{Fold}

	if owed == 0 {
		actions = append(actions, Check)
	}
	if owed > 0 && seat.Chips > 0 {
		actions = append(actions, Call)
	}
	if hs.CurrentBet == 0 && seat.Chips > 0 && !hs.CappedRaise {
		actions = append(actions, Bet)
	}
	if hs.CurrentBet > 0 && seat.Chips > owed && !hs.CappedRaise {
		actions = append(actions, Raise)
	}
	if seat.Chips > 0 {
		actions = append(actions, AllInAction)
	}
	return actions
}

func isLegal(hs *HandState, seatID string, want ActionType) bool {
	for _, a := range LegalActions(hs, seatID) {
		if a == want {
			return true
		}
	}
	return false
}

// ApplyAction validates and applies one seat's action, per spec §4.D.3,
// then advances the hand (§4.D.4). It returns a *Result once the hand
// resolves; callers should treat a non-nil Result as "hand complete".
func ApplyAction(hs *HandState, seatID string, action Action) (*Result, error) {
	if hs.Phase == Complete {
		return nil, ErrHandComplete
	}
	seat, ok := hs.Seats[seatID]
	if !ok {
		return nil, ErrUnknownSeat
	}
	if hs.CurrentSeatID() != seatID {
		return nil, fmt.Errorf("handengine: seat %q acted out of turn: %w", seatID, ErrNotYourTurn)
	}
	if !isLegal(hs, seatID, action.Type) {
		return nil, fmt.Errorf("handengine: seat %q attempted illegal %s: %w", seatID, action.Type, ErrIllegalAction)
	}

	switch action.Type {
	case Fold:
		seat.Status = Folded

	case Check:
		// no chip movement

	case Call:
		owed := hs.CurrentBet - hs.RoundBets[seatID]
		add := owed
		if add > seat.Chips {
			add = seat.Chips
		}
		commit(hs, seat, add)

	case Bet:
		if err := applyBetOrRaise(hs, seat, action.Amount, true); err != nil {
			return nil, err
		}

	case Raise:
		if err := applyBetOrRaise(hs, seat, action.Amount, false); err != nil {
			return nil, err
		}

	case AllInAction:
		add := seat.Chips
		newTotal := hs.RoundBets[seatID] + add
		commit(hs, seat, add)
		if newTotal > hs.CurrentBet {
			raiseSize := newTotal - hs.CurrentBet
			hs.CurrentBet = newTotal
			hs.LastRaiserID = seatID
			if raiseSize >= hs.MinRaise {
				hs.MinRaise = raiseSize
				hs.ActedThisRound = map[string]bool{seatID: true}
				hs.CappedRaise = false
			} else {
				// under-sized all-in raise: does not reopen action
				// (spec §4.D.3, §8 scenario 5).
				hs.ActedThisRound[seatID] = true
				hs.CappedRaise = true
			}
		}
	}

	if action.Type != AllInAction {
		hs.ActedThisRound[seatID] = true
	}
	if seat.Chips == 0 && seat.Status == Active {
		seat.Status = AllIn
	}
	Logger.Debug("action applied", "seat", seatID, "action", action.Type, "pot", hs.Pot)

	return advanceTurn(hs)
}

// applyBetOrRaise handles Bet and Raise. amount is the caller-supplied
// total target for roundBets[self] after the action (spec §4.D.3).
func applyBetOrRaise(hs *HandState, seat *Seat, amount int, isBet bool) error {
	minTarget := hs.BigBlind
	if !isBet {
		minTarget = hs.CurrentBet + hs.MinRaise
	}

	allInTarget := hs.RoundBets[seat.ID] + seat.Chips
	if amount < minTarget && amount != allInTarget {
		return fmt.Errorf("handengine: %s amount %d below minimum %d: %w", boolToLabel(isBet), amount, minTarget, ErrIllegalAction)
	}
	if amount > allInTarget {
		return fmt.Errorf("handengine: %s amount %d exceeds available chips: %w", boolToLabel(isBet), amount, ErrIllegalAction)
	}

	increment := amount - hs.RoundBets[seat.ID]
	previousCurrentBet := hs.CurrentBet
	commit(hs, seat, increment)

	raiseSize := amount - previousCurrentBet
	fullRaise := isBet || raiseSize >= hs.MinRaise
	hs.CurrentBet = amount
	hs.LastRaiserID = seat.ID
	if fullRaise {
		hs.MinRaise = raiseSize
		hs.ActedThisRound = map[string]bool{seat.ID: true}
		hs.CappedRaise = false
	} else {
		// under-sized all-in raise: does not reopen action for seats
		// that already matched the higher price (spec §4.D.3, §8.5).
		hs.ActedThisRound[seat.ID] = true
		hs.CappedRaise = true
	}
	return nil
}

func boolToLabel(isBet bool) string {
	if isBet {
		return "bet"
	}
	return "raise"
}

// commit transfers add chips from seat into roundBets/contributions/pot.
func commit(hs *HandState, seat *Seat, add int) {
	seat.Chips -= add
	hs.RoundBets[seat.ID] += add
	hs.Contributions[seat.ID] += add
	hs.Pot += add
}

// advanceTurn implements spec §4.D.4.
func advanceTurn(hs *HandState) (*Result, error) {
	remaining := 0
	for _, seatID := range hs.PlayerOrder {
		st := hs.Seats[seatID].Status
		if st == Active || st == AllIn {
			remaining++
		}
	}
	if remaining <= 1 {
		hs.Phase = Complete
		return Resolve(hs)
	}

	if roundComplete(hs) {
		return phaseAdvance(hs)
	}

	next := hs.CurrentIndex
	for i := 0; i < len(hs.PlayerOrder); i++ {
		next = (next + 1) % len(hs.PlayerOrder)
		if hs.Seats[hs.PlayerOrder[next]].Status == Active {
			hs.CurrentIndex = next
			return nil, nil
		}
	}
	// no active seat left to act: treat as round complete run-out.
	return phaseAdvance(hs)
}

func roundComplete(hs *HandState) bool {
	for _, seatID := range hs.PlayerOrder {
		seat := hs.Seats[seatID]
		if seat.Status != Active {
			continue
		}
		if !hs.ActedThisRound[seatID] {
			return false
		}
		if hs.RoundBets[seatID] != hs.CurrentBet {
			return false
		}
	}
	return true
}

// phaseAdvance implements spec §4.D.5, recursing through run-out streets
// when fewer than two seats can still act.
func phaseAdvance(hs *HandState) (*Result, error) {
	hs.RoundBets = make(map[string]int, len(hs.PlayerOrder))
	hs.ActedThisRound = make(map[string]bool, len(hs.PlayerOrder))
	hs.CurrentBet = 0
	hs.MinRaise = hs.BigBlind
	hs.LastRaiserID = ""
	hs.CappedRaise = false

	switch hs.Phase {
	case Preflop:
		hs.CommunityCards = append(hs.CommunityCards, hs.Deck.Draw(3)...)
		hs.Phase = Flop
	case Flop:
		hs.CommunityCards = append(hs.CommunityCards, hs.Deck.Draw(1)...)
		hs.Phase = Turn
	case Turn:
		hs.CommunityCards = append(hs.CommunityCards, hs.Deck.Draw(1)...)
		hs.Phase = River
	case River:
		hs.Phase = Complete
		return Resolve(hs)
	}
	Logger.Debug("street advanced", "phase", hs.Phase, "board", hs.CommunityCards)

	canAct := 0
	for _, seatID := range hs.PlayerOrder {
		if hs.Seats[seatID].Status == Active {
			canAct++
		}
	}
	if canAct < 2 {
		return phaseAdvance(hs)
	}

	hs.CurrentIndex = firstActiveFromDealer(hs)
	return nil, nil
}

// firstActiveFromDealer finds the first Active seat in playerOrder
// starting just after the dealer's position.
func firstActiveFromDealer(hs *HandState) int {
	dealerPos := 0
	for i, seatID := range hs.PlayerOrder {
		if seatID == hs.DealerSeatID {
			dealerPos = i
			break
		}
	}
	for i := 1; i <= len(hs.PlayerOrder); i++ {
		idx := (dealerPos + i) % len(hs.PlayerOrder)
		if hs.Seats[hs.PlayerOrder[idx]].Status == Active {
			return idx
		}
	}
	return dealerPos
}
