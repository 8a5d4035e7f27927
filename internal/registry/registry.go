// Package registry implements the Room Registry: the process-wide
// mapping from room identifier to Room Controller, grounded on the
// corpus's internal/server/game_manager.go.
package registry

import (
	"fmt"
	"sync"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ThomasDillard1/realtime-poker/internal/idgen"
	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
	"github.com/ThomasDillard1/realtime-poker/internal/room"
)

// ErrUnknownRoom is returned when a room ID does not resolve to a live
// Controller.
var ErrUnknownRoom = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "registry: unknown room" }

// Registry owns the process-wide room map. Its own lock is held only
// to read/write the map itself; it never holds that lock while calling
// into a Controller (spec §5).
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*room.Controller

	cfg   room.Config
	clock quartz.Clock
	log   zerolog.Logger

	// onEvent is invoked for every event emitted by any room this
	// Registry created; the Router supplies this callback.
	onEvent room.Subscriber
}

// New constructs an empty Registry. onEvent is attached to every
// Controller this Registry creates.
func New(cfg room.Config, clock quartz.Clock, log zerolog.Logger, onEvent room.Subscriber) *Registry {
	return &Registry{
		rooms:   make(map[string]*room.Controller),
		cfg:     cfg,
		clock:   clock,
		log:     log,
		onEvent: onEvent,
	}
}

// CreateRoom makes a new Controller for a room named name and returns
// it, along with the seat of the first player to join it.
func (r *Registry) CreateRoom(name, creatorDisplayName string) (*room.Controller, string, error) {
	id := idgen.New()
	r.mu.Lock()
	for {
		if _, exists := r.rooms[id]; !exists {
			break
		}
		id = idgen.New()
	}
	r.rooms[id] = nil // reserve it while we build the Controller
	r.mu.Unlock()

	ctrl := room.New(id, name, r.cfg, r.clock, r.log)
	if r.onEvent != nil {
		ctrl.Subscribe(r.onEvent)
	}

	seatID, err := ctrl.Join(creatorDisplayName)
	if err != nil {
		r.mu.Lock()
		delete(r.rooms, id)
		r.mu.Unlock()
		return nil, "", fmt.Errorf("registry: create room: %w", err)
	}

	r.mu.Lock()
	r.rooms[id] = ctrl
	r.mu.Unlock()

	return ctrl, seatID, nil
}

// Get resolves a room ID to its Controller.
func (r *Registry) Get(roomID string) (*room.Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.rooms[roomID]
	if !ok || ctrl == nil {
		return nil, fmt.Errorf("registry: room %q: %w", roomID, ErrUnknownRoom)
	}
	return ctrl, nil
}

// ReapIfEmpty removes roomID from the registry if its Controller has
// no seats left and no hand in progress (spec §4.F dissolution rule).
// Called after any Leave/Disconnect that might have emptied the room.
func (r *Registry) ReapIfEmpty(roomID string) {
	r.mu.RLock()
	ctrl, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if !ok || ctrl == nil {
		return
	}
	if ctrl.IsEmpty() && !ctrl.HandInProgress() {
		ctrl.Shutdown()
		r.mu.Lock()
		delete(r.rooms, roomID)
		r.mu.Unlock()
	}
}

// List returns a RoomSummary for every live room, for the get-rooms
// intent and the /rooms admin endpoint (spec's own §8 admin extra).
func (r *Registry) List() []protocol.RoomSummary {
	r.mu.RLock()
	ctrls := make([]*room.Controller, 0, len(r.rooms))
	for _, c := range r.rooms {
		if c == nil {
			continue // reserved while CreateRoom is still constructing it
		}
		ctrls = append(ctrls, c)
	}
	r.mu.RUnlock()

	summaries := make([]protocol.RoomSummary, len(ctrls))
	for i, c := range ctrls {
		summaries[i] = c.Summary()
	}
	return summaries
}

// Broadcast fans a delivery map out to connection-send functions
// concurrently, aggregating delivery errors as one unit of work (spec
// §5's "parallel threads may exist for I/O" clause), grounded on the
// corpus's use of goroutines per connection in server.go's broadcast
// helpers but generalized to errgroup for aggregated error capture.
func Broadcast(deliveries map[string]protocol.Message, send func(seatID string, msg protocol.Message) error) error {
	var g errgroup.Group
	for seatID, msg := range deliveries {
		seatID, msg := seatID, msg
		g.Go(func() error {
			return send(seatID, msg)
		})
	}
	return g.Wait()
}
