// Package protocol defines the JSON wire envelope shared by every
// client-server message, grounded on the corpus's internal/server
// message.go/message_types.go pair rather than its msgpack-based
// internal/protocol package (see DESIGN.md for why JSON was chosen).
package protocol

import (
	"encoding/json"
	"fmt"
)

// MessageType tags the payload carried by a Message.
type MessageType string

const (
	// Client -> server intents.
	TypeCreateRoom   MessageType = "create-room"
	TypeJoinRoom     MessageType = "join-room"
	TypeLeaveRoom    MessageType = "leave-room"
	TypeStartGame    MessageType = "start-game"
	TypePlayerAction MessageType = "player-action"
	TypeGetRooms     MessageType = "get-rooms"

	// Server -> client events.
	TypeRoomCreated    MessageType = "room-created"
	TypeRoomJoined     MessageType = "room-joined"
	TypePlayerJoined   MessageType = "player-joined"
	TypePlayerLeft     MessageType = "player-left"
	TypeRoomsList      MessageType = "rooms-list"
	TypeGameStarted    MessageType = "game-started"
	TypeGameUpdated    MessageType = "game-updated"
	TypeActionRequired MessageType = "action-required"
	TypeHandComplete   MessageType = "hand-complete"
	TypeGameOver       MessageType = "game-over"
	TypeError          MessageType = "error"
)

// Message is the envelope every inbound and outbound frame uses: a
// discriminator plus a raw payload the caller decodes once it knows
// the type, matching the corpus's Message{Type, Data, ...} shape.
type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// Encode builds a Message by marshaling payload into its Payload field.
func Encode(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("protocol: encode %s: %w", t, err)
	}
	return Message{Type: t, Payload: raw}, nil
}

// Decode unmarshals m's Payload into out, which must be a pointer.
func Decode(m Message, out any) error {
	if err := json.Unmarshal(m.Payload, out); err != nil {
		return fmt.Errorf("protocol: decode %s: %w", m.Type, err)
	}
	return nil
}
