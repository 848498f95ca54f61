package service

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/immxrtalbeast/meetrelay/internal/repository"
	"github.com/immxrtalbeast/meetrelay/lib/logger/sl"
)

var (
	ErrInvalidEvent    = errors.New("invalid event")
	ErrUnexpectedEvent = errors.New("event is not accepted from clients")
	ErrRoomNotFound    = errors.New("room not found")
	ErrTokenExhausted  = errors.New("could not find a free room token")
)

const maxTokenAttempts = 16

// RoomService is the signaling relay. It is the only writer of the room
// directory and the participant store; every mutating operation runs under mu
// so a join never observes a half-applied join or departure.
type RoomService struct {
	rooms        repository.RoomDirectory
	participants repository.ParticipantStore
	notifier     Notifier
	validate     *validator.Validate
	log          *slog.Logger
	now          func() time.Time

	mu      sync.Mutex
	joinSeq uint64
}

func NewRoomService(
	rooms repository.RoomDirectory,
	participants repository.ParticipantStore,
	notifier Notifier,
	log *slog.Logger,
) *RoomService {
	if log == nil {
		log = slog.Default()
	}
	return &RoomService{
		rooms:        rooms,
		participants: participants,
		notifier:     notifier,
		validate:     domain.NewValidator(),
		log:          log,
		now:          time.Now,
	}
}

// HandleEvent dispatches one inbound client event. Returned errors describe a
// rejected event; the connection that sent it stays usable.
func (s *RoomService) HandleEvent(connectionID string, event domain.Event) error {
	const op = "service.room.HandleEvent"

	switch e := event.(type) {
	case *domain.Join:
		return s.Join(connectionID, *e)
	case *domain.RelaySignal:
		return s.RelaySignal(connectionID, *e)
	case *domain.ReturnSignal:
		return s.ReturnSignal(connectionID, *e)
	case *domain.ChatMessage:
		return s.Chat(connectionID, *e)
	case nil:
		return fmt.Errorf("%s: %w: empty event", op, ErrInvalidEvent)
	default:
		return fmt.Errorf("%s: %w: %s", op, ErrUnexpectedEvent, event.Type())
	}
}

// Join adds the connection to a room. The joiner receives the members present
// before it, then everyone else is told about the joiner. A connection that
// already sits in a room leaves it first.
func (s *RoomService) Join(connectionID string, req domain.Join) error {
	const op = "service.room.Join"

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidEvent, err)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("connection_id", connectionID),
		slog.String("room", req.RoomID),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, err := s.participants.Get(connectionID); err == nil {
		log.Info("connection joined again, leaving previous room", slog.String("previous_room", prev.RoomToken))
		s.depart(prev)
	}

	participant := domain.NewParticipant(connectionID, req.UserName, req.RoomID)
	s.joinSeq++
	participant.Seq = s.joinSeq

	snapshot := s.snapshot(req.RoomID)
	s.notifier.Send(connectionID, domain.MemberSnapshot{Members: snapshot})

	s.rooms.AddMember(req.RoomID, connectionID)
	s.participants.Save(participant)
	s.notifier.JoinGroup(req.RoomID, connectionID)

	notified := s.notifier.Broadcast(req.RoomID, domain.PeerJoined{
		SocketID: connectionID,
		UserName: participant.DisplayName,
	}, connectionID)

	log.Info("participant joined",
		slog.String("display_name", participant.DisplayName),
		slog.Int("existing_members", len(snapshot)),
		slog.Int("notified", notified),
	)
	return nil
}

// RelaySignal forwards a handshake payload to one connection. A target that is
// no longer connected is not an error.
func (s *RoomService) RelaySignal(connectionID string, req domain.RelaySignal) error {
	const op = "service.room.RelaySignal"

	req.UserToSignal = strings.TrimSpace(req.UserToSignal)
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidEvent, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(req.CallerName)
	if name == "" {
		name = s.displayName(connectionID)
	}

	delivered := s.notifier.Send(req.UserToSignal, domain.PeerSignal{
		Signal:     req.Signal,
		CallerID:   connectionID,
		CallerName: domain.DisplayNameOrDefault(name),
	})

	s.log.Debug("signal relayed",
		slog.String("op", op),
		slog.String("from", connectionID),
		slog.String("to", req.UserToSignal),
		slog.String("kind", string(domain.ClassifySignal(req.Signal))),
		slog.Bool("delivered", delivered),
	)
	return nil
}

// ReturnSignal forwards the answer to a RelaySignal back to its originator.
func (s *RoomService) ReturnSignal(connectionID string, req domain.ReturnSignal) error {
	const op = "service.room.ReturnSignal"

	req.CallerID = strings.TrimSpace(req.CallerID)
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidEvent, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delivered := s.notifier.Send(req.CallerID, domain.ReturnedSignal{
		Signal: req.Signal,
		ID:     connectionID,
	})

	s.log.Debug("signal returned",
		slog.String("op", op),
		slog.String("from", connectionID),
		slog.String("to", req.CallerID),
		slog.String("kind", string(domain.ClassifySignal(req.Signal))),
		slog.Bool("delivered", delivered),
	)
	return nil
}

// Chat fans a message out to every member of the room, sender included,
// stamped with server time. The text is relayed as typed.
func (s *RoomService) Chat(connectionID string, req domain.ChatMessage) error {
	const op = "service.room.Chat"

	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrInvalidEvent, err)
	}
	if strings.TrimSpace(req.Message) == "" {
		return fmt.Errorf("%s: %w: blank message", op, ErrInvalidEvent)
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("connection_id", connectionID),
		slog.String("room", req.RoomID),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.rooms.ChatTimestamp(req.RoomID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			log.Debug("chat for a room without members dropped")
			return nil
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	name := strings.TrimSpace(req.UserName)
	if name == "" {
		name = s.displayName(connectionID)
	}

	delivered := s.notifier.Broadcast(req.RoomID, domain.ChatBroadcast{
		Message:   req.Message,
		UserName:  domain.DisplayNameOrDefault(name),
		Timestamp: ts,
	}, "")

	log.Debug("chat relayed", slog.Int("delivered", delivered))
	return nil
}

// Disconnect performs departure cleanup for a closed connection. Connections
// that never joined are ignored.
func (s *RoomService) Disconnect(connectionID string) {
	const op = "service.room.Disconnect"

	s.mu.Lock()
	defer s.mu.Unlock()

	participant, err := s.participants.Get(connectionID)
	if err != nil {
		s.log.Debug("connection closed before joining",
			slog.String("op", op),
			slog.String("connection_id", connectionID),
		)
		return
	}

	s.depart(participant)
	s.log.Info("participant left",
		slog.String("op", op),
		slog.String("connection_id", connectionID),
		slog.String("room", participant.RoomToken),
	)
}

func (s *RoomService) ListRooms() []domain.RoomInfo {
	return s.rooms.List()
}

// Participants lists the current members of a room in join order.
func (s *RoomService) Participants(token string) ([]domain.Member, error) {
	const op = "service.room.Participants"

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rooms.Members(token); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrRoomNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.snapshot(token), nil
}

// GenerateRoomToken returns a meeting code that does not name a live room.
func (s *RoomService) GenerateRoomToken() (string, error) {
	const op = "service.room.GenerateRoomToken"

	for i := 0; i < maxTokenAttempts; i++ {
		token, err := domain.GenerateToken()
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		if _, err := s.rooms.Members(token); errors.Is(err, repository.ErrRoomNotFound) {
			return token, nil
		}
	}
	return "", fmt.Errorf("%s: %w", op, ErrTokenExhausted)
}

// depart removes p from its room and tells the remaining members. Callers hold mu.
func (s *RoomService) depart(p *domain.Participant) {
	log := s.log.With(
		slog.String("connection_id", p.ConnectionID),
		slog.String("room", p.RoomToken),
	)

	roomDeleted, err := s.rooms.RemoveMember(p.RoomToken, p.ConnectionID)
	if err != nil {
		log.Warn("participant missing from room directory", sl.Err(err))
	}
	s.notifier.LeaveGroup(p.RoomToken, p.ConnectionID)

	if roomDeleted {
		log.Info("room closed")
	} else {
		s.notifier.Broadcast(p.RoomToken, domain.PeerLeft{SocketID: p.ConnectionID}, p.ConnectionID)
	}

	if err := s.participants.Delete(p.ConnectionID); err != nil {
		log.Warn("participant already deleted", sl.Err(err))
	}
}

// snapshot returns the members of token in join order. Callers hold mu.
func (s *RoomService) snapshot(token string) []domain.Member {
	ids, err := s.rooms.Members(token)
	if err != nil {
		return []domain.Member{}
	}

	participants := make([]*domain.Participant, 0, len(ids))
	for _, id := range ids {
		p, err := s.participants.Get(id)
		if err != nil {
			p = domain.NewParticipant(id, "", token)
		}
		participants = append(participants, p)
	}

	sort.Slice(participants, func(i, j int) bool {
		if participants[i].Seq == participants[j].Seq {
			return participants[i].ConnectionID < participants[j].ConnectionID
		}
		return participants[i].Seq < participants[j].Seq
	})

	members := make([]domain.Member, 0, len(participants))
	for _, p := range participants {
		members = append(members, p.Member())
	}
	return members
}

func (s *RoomService) displayName(connectionID string) string {
	p, err := s.participants.Get(connectionID)
	if err != nil {
		return domain.DefaultDisplayName
	}
	return p.DisplayName
}
