package handengine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
)

func seats(names ...string) []*handengine.Seat {
	out := make([]*handengine.Seat, len(names))
	for i, n := range names {
		out[i] = &handengine.Seat{ID: n, DisplayName: n, Chips: 1000}
	}
	return out
}

// spec §8 scenario 1: heads-up, fold to BB.
func TestHeadsUpFoldToBB(t *testing.T) {
	ss := seats("A", "B")
	hs, err := handengine.StartHand(ss, "A", 10, 20)
	require.NoError(t, err)

	assert.Equal(t, "A", hs.CurrentSeatID(), "heads-up dealer/SB acts first preflop")
	assert.Equal(t, 30, hs.Pot)

	result, err := handengine.ApplyAction(hs, "A", handengine.Action{Type: handengine.Fold})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsShowdown)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, "B", result.Winners[0].SeatID)
	assert.Equal(t, 30, result.Winners[0].Amount)

	assert.Equal(t, 990, hs.Seats["A"].Chips)
	assert.Equal(t, 1010, hs.Seats["B"].Chips)
}

// spec §8 scenario 3: pre-flop limp-around, BB retains the option to
// check and must not be offered call with nothing owed.
func TestBigBlindOption(t *testing.T) {
	ss := seats("A", "B", "C")
	hs, err := handengine.StartHand(ss, "A", 10, 20)
	require.NoError(t, err)

	require.Equal(t, "A", hs.CurrentSeatID())
	_, err = handengine.ApplyAction(hs, "A", handengine.Action{Type: handengine.Call})
	require.NoError(t, err)

	require.Equal(t, "B", hs.CurrentSeatID())
	_, err = handengine.ApplyAction(hs, "B", handengine.Action{Type: handengine.Call})
	require.NoError(t, err)

	require.Equal(t, "C", hs.CurrentSeatID())
	legal := handengine.LegalActions(hs, "C")
	assert.Contains(t, legal, handengine.Check)
	assert.NotContains(t, legal, handengine.Call)
}

// spec §8 scenario 2: three equal stacks check through to showdown.
func TestCheckThroughToShowdown(t *testing.T) {
	ss := seats("A", "B", "C")
	hs, err := handengine.StartHand(ss, "A", 10, 20)
	require.NoError(t, err)

	// preflop: A calls, B calls, C checks (BB option)
	_, err = handengine.ApplyAction(hs, "A", handengine.Action{Type: handengine.Call})
	require.NoError(t, err)
	_, err = handengine.ApplyAction(hs, "B", handengine.Action{Type: handengine.Call})
	require.NoError(t, err)
	result, err := handengine.ApplyAction(hs, "C", handengine.Action{Type: handengine.Check})
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, handengine.Flop, hs.Phase)
	assert.Len(t, hs.CommunityCards, 3)

	for _, phase := range []handengine.Phase{handengine.Flop, handengine.Turn, handengine.River} {
		assert.Equal(t, phase, hs.Phase)
		seatID := hs.CurrentSeatID()
		result, err = handengine.ApplyAction(hs, seatID, handengine.Action{Type: handengine.Check})
		require.NoError(t, err)
		seatID = hs.CurrentSeatID()
		result, err = handengine.ApplyAction(hs, seatID, handengine.Action{Type: handengine.Check})
		require.NoError(t, err)
		seatID = hs.CurrentSeatID()
		result, err = handengine.ApplyAction(hs, seatID, handengine.Action{Type: handengine.Check})
		require.NoError(t, err)
	}

	require.NotNil(t, result)
	assert.True(t, result.IsShowdown)
	total := 0
	for _, w := range result.Winners {
		total += w.Amount
	}
	assert.Equal(t, 60, total)
}

// spec §8 scenario 5: an all-in under the minimum raise updates
// currentBet but does not reopen action for seats that already matched
// the higher price.
func TestAllInUnderMinRaiseDoesNotReopenAction(t *testing.T) {
	hs := &handengine.HandState{
		Seats: map[string]*handengine.Seat{
			"A": {ID: "A", Chips: 900, Status: handengine.Active},
			"B": {ID: "B", Chips: 90, Status: handengine.Active},
		},
		Phase:          handengine.Flop,
		BigBlind:       20,
		CurrentBet:     100,
		MinRaise:       100,
		PlayerOrder:    []string{"A", "B"},
		CurrentIndex:   1,
		RoundBets:      map[string]int{"A": 100, "B": 40},
		Contributions:  map[string]int{"A": 100, "B": 40},
		ActedThisRound: map[string]bool{"A": true},
		DealerSeatID:   "A",
	}

	result, err := handengine.ApplyAction(hs, "B", handengine.Action{Type: handengine.AllInAction})
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.Equal(t, 130, hs.CurrentBet)
	assert.Equal(t, 100, hs.MinRaise, "under-sized raise must not update minRaise")
	assert.Equal(t, 0, hs.Seats["B"].Chips)
	assert.Equal(t, handengine.AllIn, hs.Seats["B"].Status)

	// A already matched 100 before the under-raise; it may only call,
	// not re-raise, based on this under-sized bump.
	legal := handengine.LegalActions(hs, "A")
	assert.Contains(t, legal, handengine.Call)
	assert.NotContains(t, legal, handengine.Raise)
}
