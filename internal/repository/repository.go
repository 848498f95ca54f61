package repository

import (
	"time"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

// RoomDirectory maps room tokens to their member sets. A room disappears as
// soon as its last member is removed.
type RoomDirectory interface {
	AddMember(token, connectionID string)
	RemoveMember(token, connectionID string) (roomDeleted bool, err error)
	Members(token string) ([]string, error)
	ChatTimestamp(token string, now time.Time) (int64, error)
	List() []domain.RoomInfo
}

// ParticipantStore maps connection ids to participant metadata.
type ParticipantStore interface {
	Get(connectionID string) (*domain.Participant, error)
	Save(participant *domain.Participant)
	Delete(connectionID string) error
}
