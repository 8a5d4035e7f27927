package room

import (
	"fmt"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/ThomasDillard1/realtime-poker/internal/handengine"
	"github.com/ThomasDillard1/realtime-poker/internal/idgen"
	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
)

// Config fixes the gameplay parameters a Room is created with; these
// mirror the CLI flags in cmd/pokerserver (spec §6).
type Config struct {
	MaxSeats        int
	StartChips      int
	SmallBlind      int
	BigBlind        int
	TurnTimeout     int // seconds
	InterHandPacing int // seconds
}

// Controller owns exactly one HandState at a time for one Room (spec
// §4.E). All mutation happens under mu, satisfying the single-writer
// discipline of spec §5.
type Controller struct {
	mu sync.Mutex

	id   string
	name string
	cfg  Config

	seats      []*Seat // insertion order = seating order
	dealerIdx  int
	handNumber int
	hand       *handengine.HandState

	clock        quartz.Clock
	turnTimer    *quartz.Timer
	interHand    *quartz.Timer
	subscribers  []Subscriber
	log          zerolog.Logger
	shuttingDown bool
}

// New constructs a Controller for a freshly created room identified by
// id. The Registry is responsible for collision-avoidance on id (spec
// §4.F), the same way Join regenerates a colliding seat ID.
func New(id, name string, cfg Config, clock quartz.Clock, log zerolog.Logger) *Controller {
	return &Controller{
		id:    id,
		name:  name,
		cfg:   cfg,
		clock: clock,
		log:   log.With().Str("room", id).Logger(),
	}
}

// ID returns the room's identifier.
func (c *Controller) ID() string { return c.id }

// Subscribe registers a Subscriber to receive every future Event.
func (c *Controller) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, s)
}

func (c *Controller) publish(e Event) {
	for _, s := range c.subscribers {
		s(e)
	}
}

// Summary renders the room's RoomSummary (spec's own §8 admin extra).
func (c *Controller) Summary() protocol.RoomSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summaryLocked()
}

func (c *Controller) summaryLocked() protocol.RoomSummary {
	return protocol.RoomSummary{
		RoomID:     c.id,
		Name:       c.name,
		SeatCount:  len(c.seats),
		MaxSeats:   c.cfg.MaxSeats,
		HandNumber: c.handNumber,
	}
}

// IsEmpty reports whether the room has no seats left (Registry uses
// this to decide dissolution, spec §4.F).
func (c *Controller) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seats) == 0
}

// HandInProgress reports whether a hand is currently live.
func (c *Controller) HandInProgress() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hand != nil && c.hand.Phase != handengine.Complete
}

// Join seats a new player between hands (spec §3 Lifecycles). It
// returns the new seat's ID.
func (c *Controller) Join(displayName string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hand != nil && c.hand.Phase != handengine.Complete {
		return "", fmt.Errorf("room: cannot join while a hand is in progress: %w", ErrRoomBusy)
	}
	if len(c.seats) >= c.cfg.MaxSeats {
		return "", fmt.Errorf("room: room %q is full: %w", c.id, ErrRoomFull)
	}

	id := idgen.New()
	for c.findSeat(id) != nil {
		id = idgen.New()
	}
	seat := newSeat(id, displayName, c.cfg.StartChips)
	c.seats = append(c.seats, seat)

	c.publishBroadcastLocked(protocol.TypePlayerJoined, protocol.PlayerJoinedPayload{
		RoomID: c.id, SeatID: id, DisplayName: displayName,
	})
	return id, nil
}

// Leave removes a seat (spec §3 Lifecycles). Mid-hand, a seat still in
// the hand (Active or AllIn) is retained until the hand ends instead of
// being removed outright. An Active seat is force-folded only if it is
// the seat due to act; otherwise it is just marked Away, and the turn
// timer's auto-action applies when its turn comes.
func (c *Controller) Leave(seatID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seat := c.findSeat(seatID)
	if seat == nil {
		return fmt.Errorf("room: leave: %w", ErrUnknownSeat)
	}

	if c.hand != nil && c.hand.Phase != handengine.Complete &&
		(seat.Status == handengine.Active || seat.Status == handengine.AllIn) {
		if seat.Status == handengine.Active {
			c.forceFoldLocked(seatID)
		}
		seat.Away = true
		return nil
	}

	c.removeSeatLocked(seatID)
	c.publishBroadcastLocked(protocol.TypePlayerLeft, protocol.PlayerLeftPayload{RoomID: c.id, SeatID: seatID})
	return nil
}

func (c *Controller) removeSeatLocked(seatID string) {
	for i, s := range c.seats {
		if s.ID == seatID {
			c.seats = append(c.seats[:i], c.seats[i+1:]...)
			return
		}
	}
}

func (c *Controller) findSeat(seatID string) *Seat {
	for _, s := range c.seats {
		if s.ID == seatID {
			return s
		}
	}
	return nil
}

// BindConnection associates an inbound connection with a seat, e.g. on
// initial join or a best-effort reconnect (spec §4.E disconnect policy).
func (c *Controller) BindConnection(seatID, connID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	seat := c.findSeat(seatID)
	if seat == nil {
		return fmt.Errorf("room: bind connection: %w", ErrUnknownSeat)
	}
	seat.ConnID = connID
	seat.Away = false
	return nil
}

// Disconnect marks every seat bound to connID as away. Between hands
// this is equivalent to Leave; mid-hand the seat stays seated and its
// turn timer auto-action covers it.
func (c *Controller) Disconnect(connID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.seats {
		if s.ConnID != connID {
			continue
		}
		s.ConnID = ""
		if c.hand != nil && c.hand.Phase != handengine.Complete {
			s.Away = true
			continue
		}
		c.removeSeatLocked(s.ID)
		c.publishBroadcastLocked(protocol.TypePlayerLeft, protocol.PlayerLeftPayload{RoomID: c.id, SeatID: s.ID})
	}
}
