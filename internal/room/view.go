package room

import (
	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
)

// renderView builds the GameView personalized for forSeatID: every
// seat's public fields, plus MyCards populated only for forSeatID
// itself (spec §4.E View materialization).
func (c *Controller) renderView(forSeatID string) protocol.GameView {
	view := protocol.GameView{}
	if c.hand != nil {
		view.Phase = c.hand.Phase.String()
		view.CommunityCards = c.hand.CommunityCards
		view.Pot = c.hand.Pot
		view.CurrentBet = c.hand.CurrentBet
		view.CurrentSeatID = c.hand.CurrentSeatID()
	}

	for _, s := range c.seats {
		sv := protocol.SeatView{
			SeatID:       s.ID,
			DisplayName:  s.DisplayName,
			Chips:        s.Chips,
			Status:       s.Status.String(),
			IsDealer:     s.IsDealer,
			IsSmallBlind: s.IsSmallBlind,
			IsBigBlind:   s.IsBigBlind,
			HoleCardsLen: len(s.HoleCards),
		}
		if c.hand != nil {
			sv.Bet = c.hand.RoundBets[s.ID]
		}
		if s.ID == forSeatID {
			sv.MyCards = s.HoleCards
		}
		view.Seats = append(view.Seats, sv)
	}
	return view
}

// broadcastGameEvent publishes t with a per-seat-rendered GameView
// under payloadFor, to every current seat.
func (c *Controller) broadcastGameEvent(t protocol.MessageType, payloadFor func(view protocol.GameView) any) {
	deliveries := make(map[string]protocol.Message, len(c.seats))
	for _, s := range c.seats {
		view := c.renderView(s.ID)
		msg, err := protocol.Encode(t, payloadFor(view))
		if err != nil {
			c.log.Error().Err(err).Str("seat", s.ID).Msg("encode game event")
			continue
		}
		deliveries[s.ID] = msg
	}
	c.publish(Event{RoomID: c.id, Deliveries: deliveries})
}

func (c *Controller) publishBroadcastLocked(t protocol.MessageType, payload any) {
	msg, err := protocol.Encode(t, payload)
	if err != nil {
		c.log.Error().Err(err).Msg("encode broadcast event")
		return
	}
	ids := make([]string, len(c.seats))
	for i, s := range c.seats {
		ids[i] = s.ID
	}
	c.publish(broadcastEvent(c.id, msg, ids))
}

func legalActionStrings(hs *handengine.HandState, seatID string) []string {
	actions := handengine.LegalActions(hs, seatID)
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.String()
	}
	return out
}
