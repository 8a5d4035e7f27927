// Package potcalc computes side pots from per-seat contributions, the
// way the corpus's internal/game/pot.go does, but generalized to the
// layered-contribution algorithm the engine's all-in handling requires
// instead of the corpus's simpler all-same-stack assumption.
package potcalc

import "sort"

// Contribution is one seat's total chips committed to the hand and
// whether that seat folded at some point (folded seats still have
// chips at stake in pots formed at or below their contribution level,
// but are not eligible to win any pot).
type Contribution struct {
	SeatID string
	Amount int
	Folded bool
}

// Pot is one side pot: an amount and the seats eligible to win it.
type Pot struct {
	Amount        int
	EligibleSeats []string
}

// Compute returns the ordered list of side pots for the given
// contributions. Pots are ordered from the main pot (lowest
// contribution level) up through successive side pots. Adjacent pots
// with identical eligible-seat sets are merged (cosmetic only). If the
// top layer has exactly one eligible seat, that pot is the uncalled
// bet and is returned as a pot whose sole eligible seat is that seat.
func Compute(contributions []Contribution) []Pot {
	if len(contributions) == 0 {
		return nil
	}

	levels := distinctLevels(contributions)

	var pots []Pot
	prevLevel := 0
	for _, level := range levels {
		layerSize := level - prevLevel
		if layerSize <= 0 {
			prevLevel = level
			continue
		}

		var contributors, eligible []string
		for _, c := range contributions {
			if c.Amount >= level {
				contributors = append(contributors, c.SeatID)
				if !c.Folded {
					eligible = append(eligible, c.SeatID)
				}
			}
		}

		pots = append(pots, Pot{
			Amount:        layerSize * len(contributors),
			EligibleSeats: eligible,
		})

		prevLevel = level
	}

	return mergeAdjacentEqual(pots)
}

func distinctLevels(contributions []Contribution) []int {
	seen := map[int]bool{}
	var levels []int
	for _, c := range contributions {
		if c.Amount <= 0 {
			continue
		}
		if !seen[c.Amount] {
			seen[c.Amount] = true
			levels = append(levels, c.Amount)
		}
	}
	sort.Ints(levels)
	return levels
}

func mergeAdjacentEqual(pots []Pot) []Pot {
	if len(pots) < 2 {
		return pots
	}
	merged := []Pot{pots[0]}
	for _, p := range pots[1:] {
		last := &merged[len(merged)-1]
		if sameSet(last.EligibleSeats, p.EligibleSeats) {
			last.Amount += p.Amount
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, s := range a {
		set[s] = true
	}
	for _, s := range b {
		if !set[s] {
			return false
		}
	}
	return true
}
