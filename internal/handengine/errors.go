package handengine

import "errors"

// Sentinel errors. Callers that need to distinguish a contract violation
// (spec §7b — no state change, reply error to sender) from a fatal
// invariant violation (spec §7d — abort hand, refund, emit game-over)
// should use errors.Is against these.
var (
	// ErrUnknownSeat is returned when an action names a seat not part of
	// the current hand.
	ErrUnknownSeat = errors.New("handengine: unknown seat")

	// ErrNotYourTurn is returned when an action arrives for a seat other
	// than the one at CurrentIndex.
	ErrNotYourTurn = errors.New("handengine: not this seat's turn")

	// ErrIllegalAction is returned when the action type or amount is not
	// among the seat's legal actions for the current state.
	ErrIllegalAction = errors.New("handengine: illegal action")

	// ErrHandComplete is returned when an action arrives after the hand
	// has already resolved.
	ErrHandComplete = errors.New("handengine: hand already complete")

	// ErrNotEnoughSeats is returned when StartHand is given fewer than
	// two eligible (chips > 0) seats.
	ErrNotEnoughSeats = errors.New("handengine: fewer than two eligible seats")

	// ErrInvariant marks a fatal invariant violation (spec §7d): pot not
	// equal to the sum of contributions, currentIndex pointing at a
	// non-active seat, or similar. Any error wrapping ErrInvariant means
	// the Room Controller must abort the hand and refund contributions.
	ErrInvariant = errors.New("handengine: invariant violation")
)
