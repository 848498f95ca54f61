package service

import (
	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

//go:generate mockgen -destination=mocks/notifier_mock.go -package=mocks github.com/immxrtalbeast/meetrelay/internal/service Notifier

// Notifier is the transport contract the relay sends through. Group names are
// room tokens.
type Notifier interface {
	// Send delivers event to one connection and reports whether it was registered.
	Send(connectionID string, event domain.Event) bool
	// Broadcast delivers event to every group member except exclude and
	// returns how many connections it was queued for.
	Broadcast(group string, event domain.Event, exclude string) int
	JoinGroup(group, connectionID string)
	LeaveGroup(group, connectionID string)
}

type RoomInteractor interface {
	HandleEvent(connectionID string, event domain.Event) error
	Disconnect(connectionID string)
	ListRooms() []domain.RoomInfo
	Participants(token string) ([]domain.Member, error)
	GenerateRoomToken() (string, error)
}
