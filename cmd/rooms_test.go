package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/immxrtalbeast/meetrelay/internal/api/http/converter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchRooms(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"rooms":[{"token":"abc-defg-hij","participants":3,"created_at":"2026-01-02T03:04:05Z"}]}`))
	}))
	defer srv.Close()

	rooms, err := fetchRooms(context.Background(), srv.Client(), srv.URL+"/")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "abc-defg-hij", rooms[0].Token)
	assert.Equal(t, 3, rooms[0].Participants)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), rooms[0].CreatedAt.UTC())
}

func TestFetchRooms_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := fetchRooms(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestRenderRooms(t *testing.T) {
	var buf bytes.Buffer
	renderRooms(&buf, []converter.RoomResponse{
		{Token: "abc-defg-hij", Participants: 2, CreatedAt: time.Now()},
		{Token: "xyz-wxyz-abc", Participants: 1, CreatedAt: time.Now()},
	})

	out := buf.String()
	assert.Contains(t, out, "abc-defg-hij")
	assert.Contains(t, out, "xyz-wxyz-abc")
	assert.Contains(t, strings.ToUpper(out), "2 ROOMS")
}

func TestCodeCommand(t *testing.T) {
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"code"})

	require.NoError(t, cmd.Execute())
	assert.Regexp(t, `^[a-z]{3}-[a-z]{4}-[a-z]{3}\n$`, buf.String())
}

func TestFetchRooms_ListingDisabled(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := fetchRooms(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disabled")
}
