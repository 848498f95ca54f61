package converter

import (
	"time"

	"github.com/immxrtalbeast/meetrelay/internal/domain"
)

type RoomResponse struct {
	Token        string    `json:"token"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}

type ParticipantResponse struct {
	SocketID string `json:"socketId"`
	UserName string `json:"userName"`
}

func RoomsToApi(rooms []domain.RoomInfo) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, RoomResponse{
			Token:        r.Token,
			Participants: r.Participants,
			CreatedAt:    r.CreatedAt,
		})
	}
	return out
}

func ParticipantsToApi(members []domain.Member) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(members))
	for _, m := range members {
		out = append(out, ParticipantResponse{
			SocketID: m.SocketID,
			UserName: m.UserName,
		})
	}
	return out
}
