package protocol

import "github.com/ThomasDillard1/realtime-poker/internal/cardutil"

// --- client -> server intent payloads ---

type CreateRoomPayload struct {
	RoomName   string `json:"roomName"`
	PlayerName string `json:"playerName"`
}

type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type LeaveRoomPayload struct {
	RoomID string `json:"roomId"`
	SeatID string `json:"seatId"`
}

type StartGamePayload struct {
	RoomID string `json:"roomId"`
}

type ActionPayload struct {
	Type   string `json:"type"` // fold|check|call|bet|raise|all-in
	Amount int    `json:"amount,omitempty"`
}

type PlayerActionPayload struct {
	RoomID string        `json:"roomId"`
	SeatID string        `json:"seatId"`
	Action ActionPayload `json:"action"`
}

type GetRoomsPayload struct{}

// --- server -> client event payloads ---

// SeatView is one seat as rendered into an outbound view: public to
// every recipient, except MyCards which the Room Controller only
// populates for the message's own recipient.
type SeatView struct {
	SeatID       string          `json:"seatId"`
	DisplayName  string          `json:"displayName"`
	Chips        int             `json:"chips"`
	Bet          int             `json:"bet"`
	Status       string          `json:"status"`
	IsDealer     bool            `json:"isDealer"`
	IsSmallBlind bool            `json:"isSmallBlind"`
	IsBigBlind   bool            `json:"isBigBlind"`
	HoleCardsLen int             `json:"holeCardsLen"`
	MyCards      []cardutil.Card `json:"myCards,omitempty"`
}

// GameView is the personalized per-seat render of a HandState, built
// fresh for every recipient so that MyCards never leaks another
// seat's hole cards (spec §4.E).
type GameView struct {
	Phase          string          `json:"phase"`
	CommunityCards []cardutil.Card `json:"communityCards"`
	Pot            int             `json:"pot"`
	CurrentBet     int             `json:"currentBet"`
	Seats          []SeatView      `json:"seats"`
	CurrentSeatID  string          `json:"currentSeatId,omitempty"`
}

type RoomSummary struct {
	RoomID     string `json:"roomId"`
	Name       string `json:"name"`
	SeatCount  int    `json:"seatCount"`
	MaxSeats   int    `json:"maxSeats"`
	HandNumber int    `json:"handNumber"`
}

type RoomCreatedPayload struct {
	Room RoomSummary `json:"room"`
}

type RoomJoinedPayload struct {
	Room   RoomSummary `json:"room"`
	SeatID string      `json:"seatId"`
}

type PlayerJoinedPayload struct {
	RoomID      string `json:"roomId"`
	SeatID      string `json:"seatId"`
	DisplayName string `json:"displayName"`
}

type PlayerLeftPayload struct {
	RoomID string `json:"roomId"`
	SeatID string `json:"seatId"`
}

type RoomsListPayload struct {
	Rooms []RoomSummary `json:"rooms"`
}

type GameStartedPayload struct {
	GameView GameView `json:"gameView"`
}

type GameUpdatedPayload struct {
	GameView GameView `json:"gameView"`
}

type ActionRequiredPayload struct {
	SeatID        string   `json:"seatId"`
	LegalActions  []string `json:"legalActions"`
	TurnDeadlineMS int64   `json:"turnDeadline"`
}

// RevealedSeat is one showdown participant's revealed hand.
type RevealedSeat struct {
	SeatID    string          `json:"seatId"`
	HoleCards []cardutil.Card `json:"holeCards"`
	HandRank  string          `json:"handRank,omitempty"`
}

type WinnerPayload struct {
	SeatID string `json:"seatId"`
	Amount int    `json:"amount"`
}

type HandCompletePayload struct {
	Winners        []WinnerPayload `json:"winners"`
	Players        []RevealedSeat  `json:"players"`
	CommunityCards []cardutil.Card `json:"communityCards"`
	Pot            int             `json:"pot"`
	IsShowdown     bool            `json:"isShowdown"`
}

type StandingPayload struct {
	SeatID      string `json:"seatId"`
	DisplayName string `json:"displayName"`
	Chips       int    `json:"chips"`
}

type GameOverPayload struct {
	Winner         string            `json:"winner,omitempty"`
	FinalStandings []StandingPayload `json:"finalStandings"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
