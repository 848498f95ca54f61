package repository

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrMemberNotFound = errors.New("member not found")
)

type InMemoryRoomDirectory struct {
	mu    sync.RWMutex
	rooms map[string]*domain.Room
}

func NewInMemoryRoomDirectory() *InMemoryRoomDirectory {
	return &InMemoryRoomDirectory{
		rooms: make(map[string]*domain.Room),
	}
}

func (d *InMemoryRoomDirectory) AddMember(token, connectionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[token]
	if !ok {
		room = domain.NewRoom(token)
		d.rooms[token] = room
	}
	room.Members[connectionID] = struct{}{}
}

func (d *InMemoryRoomDirectory) RemoveMember(token, connectionID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[token]
	if !ok {
		return false, ErrRoomNotFound
	}
	if _, ok := room.Members[connectionID]; !ok {
		return false, ErrMemberNotFound
	}

	delete(room.Members, connectionID)
	if len(room.Members) == 0 {
		delete(d.rooms, token)
		return true, nil
	}
	return false, nil
}

func (d *InMemoryRoomDirectory) Members(token string) ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	room, ok := d.rooms[token]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room.MemberIDs(), nil
}

func (d *InMemoryRoomDirectory) ChatTimestamp(token string, now time.Time) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	room, ok := d.rooms[token]
	if !ok {
		return 0, ErrRoomNotFound
	}
	return room.ChatTimestamp(now), nil
}

// List returns every live room ordered by token.
func (d *InMemoryRoomDirectory) List() []domain.RoomInfo {
	d.mu.RLock()
	defer d.mu.RUnlock()

	result := make([]domain.RoomInfo, 0, len(d.rooms))
	for _, room := range d.rooms {
		result = append(result, domain.RoomInfo{
			Token:        room.Token,
			Participants: len(room.Members),
			CreatedAt:    room.CreatedAt,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Token < result[j].Token
	})
	return result
}
