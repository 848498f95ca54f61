package repository

import (
	"errors"
	"sync"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

var ErrParticipantNotFound = errors.New("participant not found")

type InMemoryParticipantStore struct {
	mu           sync.RWMutex
	participants map[string]*domain.Participant
}

func NewInMemoryParticipantStore() *InMemoryParticipantStore {
	return &InMemoryParticipantStore{
		participants: make(map[string]*domain.Participant),
	}
}

func (s *InMemoryParticipantStore) Get(connectionID string) (*domain.Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.participants[connectionID]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

func (s *InMemoryParticipantStore) Save(participant *domain.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.participants[participant.ConnectionID] = participant
}

func (s *InMemoryParticipantStore) Delete(connectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.participants[connectionID]; !ok {
		return ErrParticipantNotFound
	}
	delete(s.participants, connectionID)
	return nil
}
