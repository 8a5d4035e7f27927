// Package room implements the Room Controller: the per-room coordinator
// that owns a hand's lifecycle, connection<->seat binding, turn timers,
// inter-hand pacing, and personalized view fan-out. Grounded on the
// corpus's internal/server/game_service.go and internal/game/events.go.
package room

import "github.com/ThomasDillard1/realtime-poker/internal/protocol"

// Event is one outbound occurrence produced by a Controller call. It
// carries one already-rendered Message per seat that should receive
// something: a broadcast event has the same Message under every seat,
// a personalized event (game-started or game-updated, whose GameView
// carries only the recipient's own hole cards) has a different Message
// per seat. Rejecting an individual intent is
// not an Event at all — the Router replies to that sender directly.
type Event struct {
	RoomID     string
	Deliveries map[string]protocol.Message
}

// Subscriber receives every Event a Controller emits, in production
// order. The Router is the only intended subscriber; tests may attach
// their own to assert on emitted events without a transport.
type Subscriber func(Event)

func broadcastEvent(roomID string, msg protocol.Message, seatIDs []string) Event {
	deliveries := make(map[string]protocol.Message, len(seatIDs))
	for _, id := range seatIDs {
		deliveries[id] = msg
	}
	return Event{RoomID: roomID, Deliveries: deliveries}
}
