package room

import (
	"time"

	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
)

// armTurnTimerLocked emits action-required for the seat now due to act
// and arms its single-shot auto-action timer (spec §4.E Turn timer).
// Called with mu held.
func (c *Controller) armTurnTimerLocked() {
	if c.hand == nil || c.hand.Phase == handengine.Complete {
		return
	}
	seatID := c.hand.CurrentSeatID()
	if seatID == "" {
		return
	}

	deadline := c.turnDeadline()
	c.publishBroadcastLocked(protocol.TypeActionRequired, protocol.ActionRequiredPayload{
		SeatID:         seatID,
		LegalActions:   legalActionStrings(c.hand, seatID),
		TurnDeadlineMS: deadline,
	})

	c.turnTimer = c.clock.AfterFunc(time.Duration(c.cfg.TurnTimeout)*time.Second, func() {
		c.onTurnExpired(seatID)
	})
}

// cancelTurnTimerLocked cancels any outstanding turn timer. Idempotent
// per spec §5 Cancellation.
func (c *Controller) cancelTurnTimerLocked() {
	if c.turnTimer != nil {
		c.turnTimer.Stop()
		c.turnTimer = nil
	}
}

// onTurnExpired synthesizes the auto-action for a seat that let its
// timer run out: check if legal, else fold (spec §4.E, §8 scenario 6).
func (c *Controller) onTurnExpired(seatID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hand == nil || c.hand.Phase == handengine.Complete || c.hand.CurrentSeatID() != seatID {
		return
	}

	auto := handengine.Check
	if !legalActionsContain(c.hand, seatID, handengine.Check) {
		auto = handengine.Fold
	}

	result, err := handengine.ApplyAction(c.hand, seatID, handengine.Action{Type: auto})
	if err != nil {
		c.log.Error().Err(err).Str("seat", seatID).Msg("auto-action on turn expiry")
		return
	}
	if result != nil {
		c.handleHandCompleteLocked(result)
		return
	}
	c.broadcastGameEvent(protocol.TypeGameUpdated, func(v protocol.GameView) any {
		return protocol.GameUpdatedPayload{GameView: v}
	})
	c.armTurnTimerLocked()
}

func legalActionsContain(hs *handengine.HandState, seatID string, want handengine.ActionType) bool {
	for _, a := range handengine.LegalActions(hs, seatID) {
		if a == want {
			return true
		}
	}
	return false
}

// scheduleInterHandLocked arms the fixed inter-hand pacing delay (spec
// §4.E Inter-hand pacing). startHand intents are rejected while it is
// outstanding via ErrAlreadyPlaying-style gating in StartHand — here we
// simply don't auto-start until the delay fires.
func (c *Controller) scheduleInterHandLocked() {
	if c.interHand != nil {
		c.interHand.Stop()
	}
	c.interHand = c.clock.AfterFunc(time.Duration(c.cfg.InterHandPacing)*time.Second, c.onInterHandElapsed)
}

func (c *Controller) onInterHandElapsed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.interHand = nil

	eligible := 0
	for _, s := range c.seats {
		if s.Chips > 0 {
			eligible++
		}
	}

	switch {
	case eligible >= 2:
		if err := c.startHandLocked(); err != nil {
			c.log.Error().Err(err).Msg("auto-start next hand")
		}
	case eligible == 1:
		c.emitGameOverLocked()
	default:
		c.publishBroadcastLocked(protocol.TypeGameOver, protocol.GameOverPayload{})
	}
}

func (c *Controller) emitGameOverLocked() {
	var winner string
	var standings []protocol.StandingPayload
	for _, s := range c.seats {
		if s.Chips > 0 {
			winner = s.ID
		}
		status := s.Status
		if s.Chips == 0 {
			status = handengine.Out
		}
		s.Status = status
		standings = append(standings, protocol.StandingPayload{
			SeatID: s.ID, DisplayName: s.DisplayName, Chips: s.Chips,
		})
	}
	c.publishBroadcastLocked(protocol.TypeGameOver, protocol.GameOverPayload{
		Winner: winner, FinalStandings: standings,
	})
}

// Shutdown cancels every outstanding timer (spec §5 Cancellation). Safe
// to call more than once. It sets shuttingDown, but no intent method
// reads that flag, so intents that arrive afterwards are still processed.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shuttingDown = true
	c.cancelTurnTimerLocked()
	if c.interHand != nil {
		c.interHand.Stop()
		c.interHand = nil
	}
}
