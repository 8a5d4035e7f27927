package potcalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_SidePotSplit(t *testing.T) {
	// spec §8 scenario 4: A=200, B=500, C=500, none folded.
	pots := Compute([]Contribution{
		{SeatID: "A", Amount: 200},
		{SeatID: "B", Amount: 500},
		{SeatID: "C", Amount: 500},
	})

	require.Len(t, pots, 2)
	assert.Equal(t, 600, pots[0].Amount)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, pots[0].EligibleSeats)
	assert.Equal(t, 600, pots[1].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[1].EligibleSeats)
}

func TestCompute_UncalledBetReturnedWithoutEvaluation(t *testing.T) {
	pots := Compute([]Contribution{
		{SeatID: "A", Amount: 100},
		{SeatID: "B", Amount: 300},
	})
	require.Len(t, pots, 2)
	assert.Equal(t, 200, pots[0].Amount)
	assert.ElementsMatch(t, []string{"A", "B"}, pots[0].EligibleSeats)
	assert.Equal(t, 200, pots[1].Amount)
	assert.Equal(t, []string{"B"}, pots[1].EligibleSeats)
}

func TestCompute_FoldedSeatIneligibleButChipsCounted(t *testing.T) {
	pots := Compute([]Contribution{
		{SeatID: "A", Amount: 100, Folded: true},
		{SeatID: "B", Amount: 100},
		{SeatID: "C", Amount: 100},
	})
	require.Len(t, pots, 1)
	assert.Equal(t, 300, pots[0].Amount)
	assert.ElementsMatch(t, []string{"B", "C"}, pots[0].EligibleSeats)
}

func TestCompute_SumConserved(t *testing.T) {
	contributions := []Contribution{
		{SeatID: "A", Amount: 40},
		{SeatID: "B", Amount: 130},
		{SeatID: "C", Amount: 130, Folded: true},
		{SeatID: "D", Amount: 500},
	}
	pots := Compute(contributions)

	total := 0
	for _, c := range contributions {
		total += c.Amount
	}
	sum := 0
	for _, p := range pots {
		sum += p.Amount
	}
	assert.Equal(t, total, sum)
}
