// Package deck builds and shuffles the 52-card universe used by one hand.
//
// Shuffle fairness is a correctness requirement of the system it serves
// (spec §7): a predictable or weak shuffle source lets a client infer
// future cards. The package therefore seeds every shuffle from
// crypto/rand rather than a math/rand PRNG, even though that costs a
// little throughput versus the corpus's time-seeded math/rand deck.
package deck

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/ThomasDillard1/realtime-poker/internal/cardutil"
)

// Deck is a mutable sequence of cards not yet dealt. The zero value is
// not usable; construct with New.
type Deck struct {
	cards []cardutil.Card
}

// New builds a fresh, unshuffled 52-card deck.
func New() *Deck {
	d := &Deck{cards: make([]cardutil.Card, 0, 52)}
	d.reset()
	return d
}

func (d *Deck) reset() {
	d.cards = d.cards[:0]
	for suit := cardutil.Clubs; suit <= cardutil.Spades; suit++ {
		for rank := cardutil.Two; rank <= cardutil.Ace; rank++ {
			d.cards = append(d.cards, cardutil.New(rank, suit))
		}
	}
}

// Shuffle performs an in-place, cryptographically-seeded Fisher-Yates
// shuffle. Every permutation of the 52 cards is equally reachable.
func (d *Deck) Shuffle() error {
	for i := len(d.cards) - 1; i > 0; i-- {
		j, err := cryptoIntn(i + 1)
		if err != nil {
			return fmt.Errorf("deck: shuffle: %w", err)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
	return nil
}

// cryptoIntn returns a uniform random int in [0, n) using crypto/rand.
func cryptoIntn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("deck: invalid bound %d", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}

// Reset restores the deck to a full, unshuffled 52 cards. Callers that
// need a fresh hand should call Reset then Shuffle.
func (d *Deck) Reset() {
	d.reset()
}

// Draw removes and returns the first n cards from the head of the deck.
// It panics if fewer than n cards remain — a caller asking for more
// cards than exist in a 52-card deck mid-hand is an engine bug, not a
// recoverable runtime condition.
func (d *Deck) Draw(n int) []cardutil.Card {
	if n > len(d.cards) {
		panic(fmt.Sprintf("deck: draw(%d) exceeds %d remaining cards", n, len(d.cards)))
	}
	out := make([]cardutil.Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out
}

// Remaining reports how many cards are left to deal.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
