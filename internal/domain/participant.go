package domain

import (
	"strings"
	"time"
)

const (
	DefaultDisplayName  = "Guest"
	MaxDisplayNameRunes = 255
)

// Participant is the metadata bound to a connection once it has joined a room.
// Seq orders joins across the whole relay and never repeats.
type Participant struct {
	ConnectionID string
	DisplayName  string
	RoomToken    string
	JoinedAt     time.Time
	Seq          uint64
}

func NewParticipant(connectionID, displayName, roomToken string) *Participant {
	return &Participant{
		ConnectionID: connectionID,
		DisplayName:  DisplayNameOrDefault(displayName),
		RoomToken:    roomToken,
		JoinedAt:     time.Now(),
	}
}

// DisplayNameOrDefault trims name, cuts it to MaxDisplayNameRunes and
// substitutes DefaultDisplayName when nothing is left.
func DisplayNameOrDefault(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultDisplayName
	}
	if runes := []rune(name); len(runes) > MaxDisplayNameRunes {
		name = strings.TrimSpace(string(runes[:MaxDisplayNameRunes]))
	}
	return name
}

// Member converts the participant into its wire view.
func (p *Participant) Member() Member {
	return Member{
		SocketID: p.ConnectionID,
		UserName: p.DisplayName,
	}
}
