package room_test

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThomasDillard1/realtime-poker/internal/protocol"
	"github.com/ThomasDillard1/realtime-poker/internal/room"
)

func newTestController(t *testing.T) (*room.Controller, *[]protocol.Message, quartz.Clock) {
	clock := quartz.NewMock(t)
	var events []protocol.Message
	ctrl := room.New("room1", "test room", room.Config{
		MaxSeats:        6,
		StartChips:      1000,
		SmallBlind:      10,
		BigBlind:        20,
		TurnTimeout:     30,
		InterHandPacing: 6,
	}, clock, zerolog.Nop())

	ctrl.Subscribe(func(e room.Event) {
		for _, msg := range e.Deliveries {
			events = append(events, msg)
		}
	})
	return ctrl, &events, clock
}

func TestJoinThenStartHandEmitsGameStarted(t *testing.T) {
	ctrl, events, _ := newTestController(t)

	seatA, err := ctrl.Join("alice")
	require.NoError(t, err)
	seatB, err := ctrl.Join("bob")
	require.NoError(t, err)

	require.NoError(t, ctrl.BindConnection(seatA, "connA"))
	require.NoError(t, ctrl.BindConnection(seatB, "connB"))

	require.NoError(t, ctrl.StartHand())

	assert.NotEmpty(t, *events)
	found := false
	for _, msg := range *events {
		if msg.Type == protocol.TypeGameStarted {
			found = true
		}
	}
	assert.True(t, found, "expected a game-started event")
}

func TestJoinRejectsBeyondMaxSeats(t *testing.T) {
	clock := quartz.NewMock(t)
	ctrl := room.New("room2", "tiny", room.Config{MaxSeats: 1, StartChips: 100, SmallBlind: 1, BigBlind: 2, TurnTimeout: 30, InterHandPacing: 6}, clock, zerolog.Nop())

	_, err := ctrl.Join("alice")
	require.NoError(t, err)
	_, err = ctrl.Join("bob")
	assert.ErrorIs(t, err, room.ErrRoomFull)
}

func TestStartHandFailsWithFewerThanTwoPlayers(t *testing.T) {
	clock := quartz.NewMock(t)
	ctrl := room.New("room3", "lonely", room.Config{MaxSeats: 6, StartChips: 100, SmallBlind: 1, BigBlind: 2, TurnTimeout: 30, InterHandPacing: 6}, clock, zerolog.Nop())

	_, err := ctrl.Join("alice")
	require.NoError(t, err)
	assert.ErrorIs(t, ctrl.StartHand(), room.ErrNotEnoughPlayers)
}

// spec §4.E: a start-game intent arriving during the fixed inter-hand
// pacing delay is ignored, not honored early.
func TestStartHandIgnoredDuringInterHandPacing(t *testing.T) {
	ctrl, events, clock := newTestController(t)
	mockClock := clock.(*quartz.Mock)

	seatA, err := ctrl.Join("alice")
	require.NoError(t, err)
	seatB, err := ctrl.Join("bob")
	require.NoError(t, err)
	require.NoError(t, ctrl.BindConnection(seatA, "connA"))
	require.NoError(t, ctrl.BindConnection(seatB, "connB"))

	require.NoError(t, ctrl.StartHand())
	handsAtStart := ctrl.Summary().HandNumber

	// heads-up: the dealer (alice, first seat) is the small blind and
	// acts first pre-flop. Folding ends the hand immediately and arms
	// the inter-hand pacing timer.
	require.NoError(t, ctrl.ApplyAction(seatA, "fold", 0))
	assert.Equal(t, handsAtStart, ctrl.Summary().HandNumber)

	assert.ErrorIs(t, ctrl.StartHand(), room.ErrAlreadyPlaying,
		"start-game during the pacing delay must be rejected, not start a hand early")

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	mockClock.Advance(6 * time.Second).MustWait(ctx)

	assert.Equal(t, handsAtStart+1, ctrl.Summary().HandNumber,
		"next hand should auto-start once the pacing delay elapses")

	found := false
	for _, msg := range *events {
		if msg.Type == protocol.TypeGameStarted {
			found = true
		}
	}
	assert.True(t, found)
}

// spec §3 Lifecycles: a seat that is already all-in (committed, waiting
// on showdown) must be retained until the hand ends, the same as an
// Active seat, rather than removed outright.
func TestLeaveRetainsAllInSeatUntilHandEnd(t *testing.T) {
	ctrl, events, _ := newTestController(t)

	seatA, err := ctrl.Join("alice")
	require.NoError(t, err)
	seatB, err := ctrl.Join("bob")
	require.NoError(t, err)
	require.NoError(t, ctrl.BindConnection(seatA, "connA"))
	require.NoError(t, ctrl.BindConnection(seatB, "connB"))

	require.NoError(t, ctrl.StartHand())
	require.NoError(t, ctrl.ApplyAction(seatA, "all-in", 0))
	require.Equal(t, 2, ctrl.Summary().SeatCount)

	beforeLeave := len(*events)
	require.NoError(t, ctrl.Leave(seatA))

	assert.Equal(t, 2, ctrl.Summary().SeatCount,
		"an all-in seat must stay seated until the hand ends")
	for _, msg := range (*events)[beforeLeave:] {
		assert.NotEqual(t, protocol.TypePlayerLeft, msg.Type,
			"leaving mid-hand while all-in must not emit player-left yet")
	}
}
