package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	HTTP      HTTPConfig      `yaml:"http"`
	WebSocket WebSocketConfig `yaml:"websocket"`
	WebRTC    WebRTCConfig    `yaml:"webrtc"`
}

type HTTPConfig struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:""`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	AllowOrigins    []string      `yaml:"allow_origins" env:"HTTP_ALLOW_ORIGINS" env-separator:","`
	// ExposeRoomList serves GET /api/rooms, which reveals every live token.
	ExposeRoomList  bool          `yaml:"expose_room_list" env:"HTTP_EXPOSE_ROOM_LIST"`
}

// WebSocketConfig tunes the per-connection read and write pumps.
type WebSocketConfig struct {
	ReadBufferSize  int           `yaml:"read_buffer_size" env-default:"1024"`
	WriteBufferSize int           `yaml:"write_buffer_size" env-default:"1024"`
	ReadLimit       int64         `yaml:"read_limit" env-default:"65536"`
	WriteWait       time.Duration `yaml:"write_wait" env-default:"10s"`
	PongWait        time.Duration `yaml:"pong_wait" env-default:"60s"`
	PingPeriod      time.Duration `yaml:"ping_period" env-default:"54s"`
	SendBuffer      int           `yaml:"send_buffer" env-default:"256"`
}

type WebRTCConfig struct {
	STUNServers    []string `yaml:"stun_servers" env:"STUN_SERVERS" env-separator:","`
	TURNServers    []string `yaml:"turn_servers" env:"TURN_SERVERS" env-separator:","`
	TURNUsername   string   `yaml:"turn_username" env:"TURN_USERNAME"`
	TURNCredential string   `yaml:"turn_credential" env:"TURN_CREDENTIAL"`
}

// MustLoad reads the config from path, or from CONFIG_PATH when path is empty,
// falling back to config/local.yaml.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/local.yaml"
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := LoadPath(configPath)
	if err != nil {
		panic(err.Error())
	}
	return cfg
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, &ReadError{Path: configPath, Err: err}
	}

	cfg.setDefaults()

	return &cfg, nil
}

// Default returns a config populated only with defaults.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Env == "" {
		c.Env = "local"
	}
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":3000"
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}
	if len(c.HTTP.AllowOrigins) == 0 {
		c.HTTP.AllowOrigins = []string{"*"}
	}

	ws := &c.WebSocket
	if ws.ReadBufferSize <= 0 {
		ws.ReadBufferSize = 1024
	}
	if ws.WriteBufferSize <= 0 {
		ws.WriteBufferSize = 1024
	}
	if ws.ReadLimit <= 0 {
		ws.ReadLimit = 64 * 1024
	}
	if ws.WriteWait <= 0 {
		ws.WriteWait = 10 * time.Second
	}
	if ws.PongWait <= 0 {
		ws.PongWait = 60 * time.Second
	}
	// ping must fire before the peer's read deadline expires
	if ws.PingPeriod <= 0 || ws.PingPeriod >= ws.PongWait {
		ws.PingPeriod = (ws.PongWait * 9) / 10
	}
	if ws.SendBuffer <= 0 {
		ws.SendBuffer = 256
	}

	if len(c.WebRTC.STUNServers) == 0 {
		c.WebRTC.STUNServers = []string{"stun:stun.l.google.com:19302"}
	}
}
