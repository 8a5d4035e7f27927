package room

import (
	"errors"
	"fmt"
	"time"

	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
)

// StartHand begins a new hand if at least two seats have chips (spec
// §4.D.1, §4.E). It is a no-op error, not a panic, if a hand is
// already running or too few seats are eligible.
func (c *Controller) StartHand() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startHandLocked()
}

func (c *Controller) startHandLocked() error {
	if c.hand != nil && c.hand.Phase != handengine.Complete {
		return ErrAlreadyPlaying
	}
	if c.interHand != nil {
		return ErrAlreadyPlaying
	}

	eligible := 0
	for _, s := range c.seats {
		if s.Chips > 0 {
			eligible++
		}
	}
	if eligible < 2 {
		return ErrNotEnoughPlayers
	}

	dealerID := c.nextDealerLocked()

	engineSeats := make([]*handengine.Seat, len(c.seats))
	for i, s := range c.seats {
		engineSeats[i] = s.Seat
	}

	hand, err := handengine.StartHand(engineSeats, dealerID, c.cfg.SmallBlind, c.cfg.BigBlind)
	if err != nil {
		return fmt.Errorf("room: start hand: %w", err)
	}
	c.hand = hand
	c.handNumber++

	c.broadcastGameEvent(protocol.TypeGameStarted, func(v protocol.GameView) any {
		return protocol.GameStartedPayload{GameView: v}
	})
	c.armTurnTimerLocked()
	return nil
}

// nextDealerLocked rotates the dealer button to the next eligible seat
// clockwise of the previous dealer. On the room's first hand the button
// goes to the first eligible seat in seating order.
func (c *Controller) nextDealerLocked() string {
	if len(c.seats) == 0 {
		return ""
	}
	start := c.dealerIdx % len(c.seats)
	first := 1
	if c.handNumber == 0 {
		first = 0
	}
	for i := first; i < first+len(c.seats); i++ {
		idx := (start + i) % len(c.seats)
		if c.seats[idx].Chips > 0 {
			c.dealerIdx = idx
			return c.seats[idx].ID
		}
	}
	return c.seats[start].ID
}

// ApplyAction validates and applies one seat's action (spec §4.D.3,
// §4.E). It is the Room Controller's single entry point for gameplay
// intents.
func (c *Controller) ApplyAction(seatID string, actionType string, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hand == nil || c.hand.Phase == handengine.Complete {
		return ErrNoHandInProgress
	}

	at, err := parseActionType(actionType)
	if err != nil {
		return err
	}

	c.cancelTurnTimerLocked()

	result, err := handengine.ApplyAction(c.hand, seatID, handengine.Action{Type: at, Amount: amount})
	if err != nil {
		// the router's single reply path delivers this error to the
		// sender; we only need to react to it here.
		if errors.Is(err, handengine.ErrInvariant) {
			c.abortHandLocked(err)
		} else {
			// re-arm: the turn did not advance, same seat is still due.
			c.armTurnTimerLocked()
		}
		switch {
		case errors.Is(err, handengine.ErrNotYourTurn):
			err = fmt.Errorf("%w: %w", ErrNotYourTurn, err)
		case errors.Is(err, handengine.ErrIllegalAction):
			err = fmt.Errorf("%w: %w", ErrIllegalAction, err)
		case errors.Is(err, handengine.ErrHandComplete):
			err = fmt.Errorf("%w: %w", ErrHandComplete, err)
		}
		return err
	}

	if result != nil {
		c.handleHandCompleteLocked(result)
		return nil
	}

	c.broadcastGameEvent(protocol.TypeGameUpdated, func(v protocol.GameView) any {
		return protocol.GameUpdatedPayload{GameView: v}
	})
	c.armTurnTimerLocked()
	return nil
}

func parseActionType(s string) (handengine.ActionType, error) {
	switch s {
	case "fold":
		return handengine.Fold, nil
	case "check":
		return handengine.Check, nil
	case "call":
		return handengine.Call, nil
	case "bet":
		return handengine.Bet, nil
	case "raise":
		return handengine.Raise, nil
	case "all-in":
		return handengine.AllInAction, nil
	default:
		return 0, fmt.Errorf("room: unrecognized action %q: %w", s, ErrIllegalAction)
	}
}

// forceFoldLocked applies a synthetic fold for seatID, used when a
// seat leaves mid-hand. It does nothing unless seatID is the seat due
// to act.
func (c *Controller) forceFoldLocked(seatID string) {
	if c.hand == nil || c.hand.Phase == handengine.Complete {
		return
	}
	if c.hand.CurrentSeatID() != seatID {
		return
	}
	result, err := handengine.ApplyAction(c.hand, seatID, handengine.Action{Type: handengine.Fold})
	if err != nil {
		c.log.Error().Err(err).Str("seat", seatID).Msg("force fold")
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

// handleHandCompleteLocked emits hand-complete and schedules the
// inter-hand pacing delay (spec §4.E).
func (c *Controller) handleHandCompleteLocked(result *handengine.Result) {
	c.cancelTurnTimerLocked()

	var winners []protocol.WinnerPayload
	for _, w := range result.Winners {
		winners = append(winners, protocol.WinnerPayload{SeatID: w.SeatID, Amount: w.Amount})
	}

	var revealed []protocol.RevealedSeat
	if result.IsShowdown {
		for _, seatID := range c.hand.PlayerOrder {
			seat := c.findSeat(seatID)
			if seat == nil {
				continue
			}
			if seat.Status != handengine.Active && seat.Status != handengine.AllIn {
				continue
			}
			rank := result.Revealed[seatID]
			revealed = append(revealed, protocol.RevealedSeat{
				SeatID:    seatID,
				HoleCards: seat.HoleCards,
				HandRank:  rank.String(),
			})
		}
	}

	payload := protocol.HandCompletePayload{
		Winners:        winners,
		Players:        revealed,
		CommunityCards: c.hand.CommunityCards,
		Pot:            c.hand.Pot,
		IsShowdown:     result.IsShowdown,
	}
	c.publishBroadcastLocked(protocol.TypeHandComplete, payload)

	c.markEliminatedLocked()
	c.hand = nil
	c.scheduleInterHandLocked()
}

// markEliminatedLocked sets status Out for any seat at 0 chips at a
// hand boundary (spec Open Question (b): elimination is evaluated at
// the hand boundary, not mid-hand, to avoid visual desync).
func (c *Controller) markEliminatedLocked() {
	for _, s := range c.seats {
		if s.Chips == 0 {
			s.Status = handengine.Out
		} else {
			s.Status = handengine.Waiting
		}
	}
}

// abortHandLocked implements the fatal-invariant recovery path of spec
// §7d: refund contributions to every player and end the game.
func (c *Controller) abortHandLocked(cause error) {
	if c.hand != nil {
		for seatID, amount := range c.hand.Contributions {
			if seat := c.findSeat(seatID); seat != nil {
				seat.Chips += amount
			}
		}
	}
	c.log.Error().Err(cause).Str("room", c.id).Msg("fatal invariant violation, aborting hand")
	c.cancelTurnTimerLocked()
	c.hand = nil

	c.publishBroadcastLocked(protocol.TypeError, protocol.ErrorPayload{Message: "hand aborted: " + cause.Error()})
	c.publishBroadcastLocked(protocol.TypeGameOver, protocol.GameOverPayload{})
}

// turnDeadline returns the epoch-millisecond deadline for the current
// turn timer, for the action-required payload.
func (c *Controller) turnDeadline() int64 {
	return c.clock.Now().Add(time.Duration(c.cfg.TurnTimeout) * time.Second).UnixMilli()
}
