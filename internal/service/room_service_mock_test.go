package service

import (
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/immxrtalbeast/meetrelay/internal/repository"
	"github.com/immxrtalbeast/meetrelay/internal/service/mocks"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockedService(t *testing.T) (*RoomService, *mocks.MockNotifier) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	svc := NewRoomService(
		repository.NewInMemoryRoomDirectory(),
		repository.NewInMemoryParticipantStore(),
		notifier,
		slog.New(slog.DiscardHandler),
	)
	return svc, notifier
}

func TestRelaySignal_IsUnicastOnly(t *testing.T) {
	svc, notifier := newMockedService(t)
	payload := json.RawMessage(`{"type":"offer","sdp":"v=0"}`)

	notifier.EXPECT().
		Send("target", domain.PeerSignal{Signal: payload, CallerID: "origin", CallerName: "Olga"}).
		Return(true).
		Times(1)

	require.NoError(t, svc.RelaySignal("origin", domain.RelaySignal{
		UserToSignal: "target",
		Signal:       payload,
		CallerName:   "Olga",
	}))
}

func TestRelaySignal_UnknownTargetIsSilent(t *testing.T) {
	svc, notifier := newMockedService(t)

	notifier.EXPECT().Send("gone", gomock.Any()).Return(false)

	require.NoError(t, svc.RelaySignal("origin", domain.RelaySignal{
		UserToSignal: "gone",
		Signal:       json.RawMessage(`{"candidate":{"candidate":"candidate:1 1 udp 1 10.0.0.1 5000 typ host"}}`),
	}))
}

func TestReturnSignal_IsUnicastOnly(t *testing.T) {
	svc, notifier := newMockedService(t)
	payload := json.RawMessage(`{"type":"answer","sdp":"v=0"}`)

	notifier.EXPECT().
		Send("initiator", domain.ReturnedSignal{Signal: payload, ID: "replier"}).
		Return(false)

	require.NoError(t, svc.ReturnSignal("replier", domain.ReturnSignal{CallerID: "initiator", Signal: payload}))
}

func TestJoin_TransportCallOrder(t *testing.T) {
	svc, notifier := newMockedService(t)

	gomock.InOrder(
		notifier.EXPECT().Send("a", domain.MemberSnapshot{Members: []domain.Member{}}).Return(true),
		notifier.EXPECT().JoinGroup("room", "a"),
		notifier.EXPECT().Broadcast("room", domain.PeerJoined{SocketID: "a", UserName: "Ann"}, "a").Return(0),
	)

	require.NoError(t, svc.Join("a", domain.Join{RoomID: "room", UserName: "Ann"}))
}

func TestDisconnect_LastMemberLeavesGroupWithoutBroadcast(t *testing.T) {
	svc, notifier := newMockedService(t)

	notifier.EXPECT().Send("a", gomock.Any()).Return(true)
	notifier.EXPECT().JoinGroup("room", "a")
	notifier.EXPECT().Broadcast("room", gomock.Any(), "a").Return(0)
	require.NoError(t, svc.Join("a", domain.Join{RoomID: "room"}))

	notifier.EXPECT().LeaveGroup("room", "a")
	svc.Disconnect("a")
}

func TestDisconnect_NeverJoinedTouchesNothing(t *testing.T) {
	svc, _ := newMockedService(t)

	// any notifier call fails the test
	svc.Disconnect("stranger")
}
