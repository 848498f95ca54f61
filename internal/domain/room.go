package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// Room is a named group of connections. It only exists while it has members.
type Room struct {
	Token     string
	Members   map[string]struct{}
	CreatedAt time.Time

	lastChatAt int64
}

func NewRoom(token string) *Room {
	return &Room{
		Token:     token,
		Members:   make(map[string]struct{}),
		CreatedAt: time.Now().UTC(),
	}
}

// MemberIDs returns a copy of the member set in no particular order.
func (r *Room) MemberIDs() []string {
	ids := make([]string, 0, len(r.Members))
	for id := range r.Members {
		ids = append(ids, id)
	}
	return ids
}

// ChatTimestamp returns now in unix milliseconds, never earlier than the
// previous value handed out for this room.
func (r *Room) ChatTimestamp(now time.Time) int64 {
	ts := now.UnixMilli()
	if ts < r.lastChatAt {
		ts = r.lastChatAt
	}
	r.lastChatAt = ts
	return ts
}

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyz"

// GenerateToken builds a meeting code shaped like "abc-defg-hij".
func GenerateToken() (string, error) {
	parts := [3]int{3, 4, 3}
	buf := make([]byte, 0, 12)
	for i, n := range parts {
		if i > 0 {
			buf = append(buf, '-')
		}
		for j := 0; j < n; j++ {
			idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenAlphabet))))
			if err != nil {
				return "", fmt.Errorf("generate room token: %w", err)
			}
			buf = append(buf, tokenAlphabet[idx.Int64()])
		}
	}
	return string(buf), nil
}

// RoomInfo is a read-only summary of a live room.
type RoomInfo struct {
	Token        string    `json:"token"`
	Participants int       `json:"participants"`
	CreatedAt    time.Time `json:"created_at"`
}
