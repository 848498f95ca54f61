package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadPath(t *testing.T) {
	path := writeConfig(t, `
env: prod
http:
  address: ":8080"
  shutdown_timeout: 3s
  allow_origins:
    - "https://meet.example.org"
  expose_room_list: true
websocket:
  pong_wait: 30s
  send_buffer: 16
webrtc:
  turn_servers:
    - "turn:turn.example.org:3478"
  turn_username: meet
  turn_credential: secret
`)

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, []string{"https://meet.example.org"}, cfg.HTTP.AllowOrigins)
	assert.True(t, cfg.HTTP.ExposeRoomList)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PongWait)
	assert.Equal(t, 27*time.Second, cfg.WebSocket.PingPeriod)
	assert.Equal(t, 16, cfg.WebSocket.SendBuffer)
	assert.Equal(t, []string{"turn:turn.example.org:3478"}, cfg.WebRTC.TURNServers)
	assert.Equal(t, "meet", cfg.WebRTC.TURNUsername)
	assert.Equal(t, []string{"stun:stun.l.google.com:19302"}, cfg.WebRTC.STUNServers)
}

func TestLoadPath_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  address: \":8080\"\n")
	t.Setenv("HTTP_ADDRESS", ":9090")
	t.Setenv("TURN_USERNAME", "from-env")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Address)
	assert.Equal(t, "from-env", cfg.WebRTC.TURNUsername)
	assert.False(t, cfg.HTTP.ExposeRoomList)

	t.Setenv("HTTP_EXPOSE_ROOM_LIST", "true")
	cfg, err = LoadPath(path)
	require.NoError(t, err)
	assert.True(t, cfg.HTTP.ExposeRoomList)
}

func TestLoadPath_MissingFile(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "absent.yaml"))

	var pathErr *PathError
	require.True(t, errors.As(err, &pathErr))
	assert.Contains(t, pathErr.Error(), "absent.yaml")
}

func TestLoadPath_BrokenFile(t *testing.T) {
	path := writeConfig(t, "http: [unterminated\n")

	_, err := LoadPath(path)

	var readErr *ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Equal(t, path, readErr.Path)
	assert.NotNil(t, errors.Unwrap(readErr))
}

func TestMustLoad_PanicsWithoutFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "absent.yaml"))

	assert.Panics(t, func() { MustLoad("") })
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, []string{"*"}, cfg.HTTP.AllowOrigins)
	assert.False(t, cfg.HTTP.ExposeRoomList)
	assert.Equal(t, int64(64*1024), cfg.WebSocket.ReadLimit)
	assert.Equal(t, 60*time.Second, cfg.WebSocket.PongWait)
	assert.Equal(t, 54*time.Second, cfg.WebSocket.PingPeriod)
	assert.Equal(t, 256, cfg.WebSocket.SendBuffer)
}

func TestPingPeriodStaysBelowPongWait(t *testing.T) {
	path := writeConfig(t, "websocket:\n  pong_wait: 10s\n  ping_period: 20s\n")

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, 9*time.Second, cfg.WebSocket.PingPeriod)
}
