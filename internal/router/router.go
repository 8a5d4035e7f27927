// Package router implements the Message Router: it translates each
// inbound client intent into exactly one Room Controller call, and
// translates each Controller-emitted Event into outbound per-connection
// deliveries. Grounded on the corpus's internal/server/connection.go
// message-type switch, generalized from one room per process to the
// Registry's many.
package router

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
	"github.com/ThomasDillard1/realtime-poker/internal/registry"
	"github.com/ThomasDillard1/realtime-poker/internal/room"
	"github.com/ThomasDillard1/realtime-poker/internal/transport"
)

// Router owns the connection registry and the room<->seat<->connection
// binding table. It holds no game state of its own.
type Router struct {
	mu    sync.Mutex
	conns map[string]*transport.Connection
	// bindings[roomID][seatID] = connID
	bindings map[string]map[string]string
	// connRooms[connID] = roomID, for cleanup on disconnect. A
	// connection is bound to at most one room at a time in this
	// implementation (spec §5 notes multi-room per recipient is
	// possible but leaves interleaving unspecified; we do not need it
	// to satisfy per-room ordering).
	connRooms map[string]string

	reg *registry.Registry
	log zerolog.Logger
}

// New constructs a Router bound to reg. Call reg's onEvent callback
// parameter with router.HandleEvent so Controllers route events
// through this Router.
func New(reg *registry.Registry, log zerolog.Logger) *Router {
	return &Router{
		conns:     make(map[string]*transport.Connection),
		bindings:  make(map[string]map[string]string),
		connRooms: make(map[string]string),
		reg:       reg,
		log:       log,
	}
}

// Attach registers a newly accepted connection and wires its OnMessage
// and OnClose callbacks to this Router.
func (r *Router) Attach(conn *transport.Connection) {
	r.mu.Lock()
	r.conns[conn.ID] = conn
	r.mu.Unlock()

	conn.OnMessage = r.handleMessage
	conn.OnClose = r.handleDisconnect
}

func (r *Router) bind(roomID, seatID, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.bindings[roomID] == nil {
		r.bindings[roomID] = make(map[string]string)
	}
	r.bindings[roomID][seatID] = connID
	r.connRooms[connID] = roomID
}

func (r *Router) unbind(roomID, seatID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if seats, ok := r.bindings[roomID]; ok {
		delete(seats, seatID)
		if len(seats) == 0 {
			delete(r.bindings, roomID)
		}
	}
}

// handleMessage dispatches one inbound frame to exactly one Controller
// call, per spec §4.G.
func (r *Router) handleMessage(conn *transport.Connection, msg protocol.Message) {
	var err error
	switch msg.Type {
	case protocol.TypeCreateRoom:
		err = r.handleCreateRoom(conn, msg)
	case protocol.TypeJoinRoom:
		err = r.handleJoinRoom(conn, msg)
	case protocol.TypeLeaveRoom:
		err = r.handleLeaveRoom(conn, msg)
	case protocol.TypeStartGame:
		err = r.handleStartGame(msg)
	case protocol.TypePlayerAction:
		err = r.handlePlayerAction(msg)
	case protocol.TypeGetRooms:
		err = r.handleGetRooms(conn)
	default:
		err = fmt.Errorf("router: unrecognized message type %q", msg.Type)
	}
	if err != nil {
		r.replyError(conn, err)
	}
}

func (r *Router) replyError(conn *transport.Connection, err error) {
	out, encErr := protocol.Encode(protocol.TypeError, protocol.ErrorPayload{Message: err.Error()})
	if encErr != nil {
		return
	}
	_ = conn.Send(out)
}

func (r *Router) handleCreateRoom(conn *transport.Connection, msg protocol.Message) error {
	var p protocol.CreateRoomPayload
	if err := protocol.Decode(msg, &p); err != nil {
		return err
	}
	ctrl, seatID, err := r.reg.CreateRoom(p.RoomName, p.PlayerName)
	if err != nil {
		return err
	}
	if err := ctrl.BindConnection(seatID, conn.ID); err != nil {
		return err
	}
	r.bind(ctrl.ID(), seatID, conn.ID)

	out, err := protocol.Encode(protocol.TypeRoomCreated, protocol.RoomCreatedPayload{Room: ctrl.Summary()})
	if err != nil {
		return err
	}
	return conn.Send(out)
}

func (r *Router) handleJoinRoom(conn *transport.Connection, msg protocol.Message) error {
	var p protocol.JoinRoomPayload
	if err := protocol.Decode(msg, &p); err != nil {
		return err
	}
	ctrl, err := r.reg.Get(p.RoomID)
	if err != nil {
		return err
	}
	seatID, err := ctrl.Join(p.PlayerName)
	if err != nil {
		return err
	}
	if err := ctrl.BindConnection(seatID, conn.ID); err != nil {
		return err
	}
	r.bind(ctrl.ID(), seatID, conn.ID)

	out, err := protocol.Encode(protocol.TypeRoomJoined, protocol.RoomJoinedPayload{Room: ctrl.Summary(), SeatID: seatID})
	if err != nil {
		return err
	}
	return conn.Send(out)
}

func (r *Router) handleLeaveRoom(conn *transport.Connection, msg protocol.Message) error {
	var p protocol.LeaveRoomPayload
	if err := protocol.Decode(msg, &p); err != nil {
		return err
	}
	ctrl, err := r.reg.Get(p.RoomID)
	if err != nil {
		return err
	}
	if err := ctrl.Leave(p.SeatID); err != nil {
		return err
	}
	r.unbind(p.RoomID, p.SeatID)
	r.reg.ReapIfEmpty(p.RoomID)
	return nil
}

func (r *Router) handleStartGame(msg protocol.Message) error {
	var p protocol.StartGamePayload
	if err := protocol.Decode(msg, &p); err != nil {
		return err
	}
	ctrl, err := r.reg.Get(p.RoomID)
	if err != nil {
		return err
	}
	return ctrl.StartHand()
}

func (r *Router) handlePlayerAction(msg protocol.Message) error {
	var p protocol.PlayerActionPayload
	if err := protocol.Decode(msg, &p); err != nil {
		return err
	}
	ctrl, err := r.reg.Get(p.RoomID)
	if err != nil {
		return err
	}
	return ctrl.ApplyAction(p.SeatID, p.Action.Type, p.Action.Amount)
}

func (r *Router) handleGetRooms(conn *transport.Connection) error {
	out, err := protocol.Encode(protocol.TypeRoomsList, protocol.RoomsListPayload{Rooms: r.reg.List()})
	if err != nil {
		return err
	}
	return conn.Send(out)
}

// handleDisconnect is wired as every Connection's OnClose.
func (r *Router) handleDisconnect(connID string) {
	r.mu.Lock()
	roomID, ok := r.connRooms[connID]
	delete(r.connRooms, connID)
	delete(r.conns, connID)
	r.mu.Unlock()
	if !ok {
		return
	}

	ctrl, err := r.reg.Get(roomID)
	if err != nil {
		return
	}
	ctrl.Disconnect(connID)
	r.reg.ReapIfEmpty(roomID)
}

// HandleEvent is the room.Subscriber the Registry wires into every
// Controller it creates: it routes each per-seat delivery to that
// seat's currently bound connection, silently dropping deliveries for
// seats with no live connection (spec §7c transient delivery failure;
// spec §5 "a disconnect cancels only the connection's subscription,
// in-flight events for that connection are dropped silently").
func (r *Router) HandleEvent(e room.Event) {
	r.mu.Lock()
	seats := r.bindings[e.RoomID]
	sends := make(map[string]*transport.Connection, len(e.Deliveries))
	for seatID := range e.Deliveries {
		connID, ok := seats[seatID]
		if !ok {
			continue
		}
		if conn, ok := r.conns[connID]; ok {
			sends[seatID] = conn
		}
	}
	r.mu.Unlock()

	deliveries := make(map[string]protocol.Message, len(sends))
	for seatID := range sends {
		deliveries[seatID] = e.Deliveries[seatID]
	}

	if err := registry.Broadcast(deliveries, func(seatID string, msg protocol.Message) error {
		return sends[seatID].Send(msg)
	}); err != nil {
		r.log.Debug().Err(err).Msg("drop event delivery")
	}
}
