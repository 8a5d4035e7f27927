package evaluator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThomasDillard1/realtime-poker/internal/cardutil"
)

func c(rank cardutil.Rank, suit cardutil.Suit) cardutil.Card {
	return cardutil.New(rank, suit)
}

func TestEvaluate_RejectsFewerThanFive(t *testing.T) {
	_, err := Evaluate([]cardutil.Card{c(cardutil.Ace, cardutil.Spades)})
	assert.Error(t, err)
}

func TestEvaluate_WheelStraightRanksAsFiveHigh(t *testing.T) {
	wheel := []cardutil.Card{
		c(cardutil.Ace, cardutil.Spades),
		c(cardutil.Two, cardutil.Hearts),
		c(cardutil.Three, cardutil.Clubs),
		c(cardutil.Four, cardutil.Diamonds),
		c(cardutil.Five, cardutil.Spades),
	}
	sixHigh := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades),
		c(cardutil.Three, cardutil.Hearts),
		c(cardutil.Four, cardutil.Clubs),
		c(cardutil.Five, cardutil.Diamonds),
		c(cardutil.Six, cardutil.Spades),
	}

	wheelRank, err := Evaluate(wheel)
	require.NoError(t, err)
	sixHighRank, err := Evaluate(sixHigh)
	require.NoError(t, err)

	assert.Equal(t, Straight, wheelRank.Category)
	assert.Equal(t, Straight, sixHighRank.Category)
	assert.Less(t, wheelRank.Score, sixHighRank.Score, "wheel must lose to 6-high straight")
}

func TestEvaluate_CategoryOrdering(t *testing.T) {
	pair := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades), c(cardutil.Two, cardutil.Hearts),
		c(cardutil.Nine, cardutil.Clubs), c(cardutil.Jack, cardutil.Diamonds), c(cardutil.King, cardutil.Spades),
	}
	twoPair := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades), c(cardutil.Two, cardutil.Hearts),
		c(cardutil.Nine, cardutil.Clubs), c(cardutil.Nine, cardutil.Diamonds), c(cardutil.King, cardutil.Spades),
	}
	trips := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades), c(cardutil.Two, cardutil.Hearts), c(cardutil.Two, cardutil.Diamonds),
		c(cardutil.Nine, cardutil.Clubs), c(cardutil.King, cardutil.Spades),
	}
	full := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades), c(cardutil.Two, cardutil.Hearts), c(cardutil.Two, cardutil.Diamonds),
		c(cardutil.Nine, cardutil.Clubs), c(cardutil.Nine, cardutil.Diamonds),
	}
	quads := []cardutil.Card{
		c(cardutil.Two, cardutil.Spades), c(cardutil.Two, cardutil.Hearts),
		c(cardutil.Two, cardutil.Diamonds), c(cardutil.Two, cardutil.Clubs), c(cardutil.King, cardutil.Spades),
	}

	hands := [][]cardutil.Card{pair, twoPair, trips, full, quads}
	var scores []int64
	for _, h := range hands {
		r, err := Evaluate(h)
		require.NoError(t, err)
		scores = append(scores, r.Score)
	}
	for i := 1; i < len(scores); i++ {
		assert.Greater(t, scores[i], scores[i-1], "category %d should outrank category %d", i, i-1)
	}
}

func TestEvaluate_SevenCardStableUnderPermutation(t *testing.T) {
	hand := []cardutil.Card{
		c(cardutil.Ace, cardutil.Spades), c(cardutil.King, cardutil.Spades),
		c(cardutil.Queen, cardutil.Spades), c(cardutil.Jack, cardutil.Spades),
		c(cardutil.Ten, cardutil.Spades), c(cardutil.Two, cardutil.Hearts), c(cardutil.Three, cardutil.Clubs),
	}
	base, err := Evaluate(hand)
	require.NoError(t, err)
	assert.Equal(t, RoyalFlush, base.Category)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]cardutil.Card{}, hand...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		r, err := Evaluate(shuffled)
		require.NoError(t, err)
		assert.Equal(t, base.Score, r.Score)
	}
}
