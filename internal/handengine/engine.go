package handengine

import (
	"fmt"

	"github.com/ThomasDillard1/realtime-poker/internal/cardutil"
	"github.com/ThomasDillard1/realtime-poker/internal/evaluator"
	"github.com/ThomasDillard1/realtime-poker/internal/potcalc"
)

// Resolve implements spec §4.D.6. If exactly one seat remains in the
// hand it is awarded the whole pot without a showdown; otherwise side
// pots are computed and each is awarded to its eligible seats' best
// hand, ties splitting evenly with any odd chip going to the seat
// closest to the dealer's left.
func Resolve(hs *HandState) (*Result, error) {
	hs.Phase = Complete

	var remaining []string
	for _, seatID := range hs.PlayerOrder {
		if hs.Seats[seatID].Status == Active || hs.Seats[seatID].Status == AllIn {
			remaining = append(remaining, seatID)
		}
	}

	if len(remaining) == 1 {
		winner := remaining[0]
		award := hs.Pot
		hs.Seats[winner].Chips += award
		if err := validateConservation(hs); err != nil {
			return nil, err
		}
		return &Result{
			Winners:    []WinnerShare{{SeatID: winner, Amount: award}},
			IsShowdown: false,
		}, nil
	}

	contributions := make([]potcalc.Contribution, 0, len(hs.PlayerOrder))
	for _, seatID := range hs.PlayerOrder {
		contributions = append(contributions, potcalc.Contribution{
			SeatID: seatID,
			Amount: hs.Contributions[seatID],
			Folded: hs.Seats[seatID].Status == Folded,
		})
	}
	pots := potcalc.Compute(contributions)

	revealed := make(map[string]evaluator.HandRank, len(remaining))
	for _, seatID := range remaining {
		hand := append(append([]cardutil.Card{}, hs.Seats[seatID].HoleCards...), hs.CommunityCards...)
		rank, err := evaluator.Evaluate(hand)
		if err != nil {
			return nil, fmt.Errorf("handengine: evaluating seat %q: %w", seatID, err)
		}
		revealed[seatID] = rank
	}

	shares := map[string]int{}
	for _, pot := range pots {
		if len(pot.EligibleSeats) == 0 {
			continue
		}
		if len(pot.EligibleSeats) == 1 {
			shares[pot.EligibleSeats[0]] += pot.Amount
			continue
		}
		awardPot(hs, pot, revealed, shares)
	}

	var winners []WinnerShare
	for _, seatID := range hs.PlayerOrder {
		if amount, ok := shares[seatID]; ok && amount > 0 {
			hs.Seats[seatID].Chips += amount
			winners = append(winners, WinnerShare{SeatID: seatID, Amount: amount})
		}
	}

	if err := validateConservation(hs); err != nil {
		return nil, err
	}

	return &Result{
		Winners:    winners,
		IsShowdown: true,
		Revealed:   revealed,
	}, nil
}

// awardPot splits one pot among its eligible seats' best hand(s),
// giving any odd remainder chip to the tied seat closest to the
// dealer's left (spec §4.D.6.3).
func awardPot(hs *HandState, pot potcalc.Pot, revealed map[string]evaluator.HandRank, shares map[string]int) {
	var best []string
	var bestScore int64 = -1
	for _, seatID := range pot.EligibleSeats {
		rank, ok := revealed[seatID]
		if !ok {
			continue
		}
		switch {
		case rank.Score > bestScore:
			bestScore = rank.Score
			best = []string{seatID}
		case rank.Score == bestScore:
			best = append(best, seatID)
		}
	}
	if len(best) == 0 {
		return
	}

	ordered := orderByDealerClockwise(hs, best)
	share := pot.Amount / len(ordered)
	remainder := pot.Amount % len(ordered)
	for i, seatID := range ordered {
		amount := share
		if i < remainder {
			amount++
		}
		shares[seatID] += amount
	}
}

// orderByDealerClockwise sorts seatIDs starting from the seat
// immediately clockwise of the dealer, using hand-start playerOrder as
// the clockwise reference.
func orderByDealerClockwise(hs *HandState, seatIDs []string) []string {
	pos := make(map[string]int, len(hs.PlayerOrder))
	for i, id := range hs.PlayerOrder {
		pos[id] = i
	}
	dealerPos := pos[hs.DealerSeatID]

	out := make([]string, len(seatIDs))
	copy(out, seatIDs)
	for i := 1; i < len(out); i++ {
		v := out[i]
		vRank := clockwiseDistance(dealerPos, pos[v], len(hs.PlayerOrder))
		j := i - 1
		for j >= 0 && clockwiseDistance(dealerPos, pos[out[j]], len(hs.PlayerOrder)) > vRank {
			out[j+1] = out[j]
			j--
		}
		out[j+1] = v
	}
	return out
}

func clockwiseDistance(from, to, n int) int {
	d := to - from
	if d <= 0 {
		d += n
	}
	return d
}

// validateConservation enforces the fatal-invariant check of spec §7d:
// pot must equal the sum of contributions. Resolve calls this
// immediately after distribution. It does not compare seat chip totals
// against the hand's starting total, so chips lost or created while
// paying out the pots are not detected here.
func validateConservation(hs *HandState) error {
	total := 0
	for _, seatID := range hs.PlayerOrder {
		total += hs.Seats[seatID].Chips
	}
	distributed := 0
	for _, seatID := range hs.PlayerOrder {
		distributed += hs.Contributions[seatID]
	}
	if distributed != hs.Pot {
		return fmt.Errorf("handengine: pot %d != contributions sum %d: %w", hs.Pot, distributed, ErrInvariant)
	}
	return nil
}
