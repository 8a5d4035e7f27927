package room

import "github.com/ThomasDillard1/realtime-poker/internal/handengine"

// Seat is the Room Controller's view of a seated player: the engine's
// per-hand record plus the connection-layer concerns (which connection
// it is currently bound to, and whether it is away) that the Hand
// Engine has no business knowing about.
type Seat struct {
	*handengine.Seat

	ConnID string // "" when no connection is currently bound
	Away   bool
}

func newSeat(id, displayName string, startChips int) *Seat {
	return &Seat{
		Seat: &handengine.Seat{
			ID:          id,
			DisplayName: displayName,
			Chips:       startChips,
			Status:      handengine.Waiting,
		},
	}
}
