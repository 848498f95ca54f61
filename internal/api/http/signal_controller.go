package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/immxrtalbeast/meetrelay/internal/config"
	"github.com/immxrtalbeast/meetrelay/internal/domain"
	"github.com/immxrtalbeast/meetrelay/internal/transport"
	"github.com/immxrtalbeast/meetrelay/lib/logger/sl"
)

// SignalController upgrades requests to websocket connections and hands them
// to the hub for the lifetime of the connection.
type SignalController struct {
	hub      *transport.Hub
	handler  transport.EventHandler
	upgrader websocket.Upgrader
	opts     transport.Options
	log      *slog.Logger
}

func NewSignalController(hub *transport.Hub, handler transport.EventHandler, cfg config.WebSocketConfig, log *slog.Logger) *SignalController {
	if log == nil {
		log = slog.Default()
	}
	return &SignalController{
		hub:     hub,
		handler: handler,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			Subprotocols:    []string{transport.SubprotocolMsgpack, transport.SubprotocolJSON},
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		opts: transport.Options{
			ReadLimit:  cfg.ReadLimit,
			WriteWait:  cfg.WriteWait,
			PongWait:   cfg.PongWait,
			PingPeriod: cfg.PingPeriod,
			SendBuffer: cfg.SendBuffer,
		},
		log: log,
	}
}

func (c *SignalController) ServeWS(ctx *gin.Context) {
	const op = "api.http.signal.ServeWS"

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warn("failed to upgrade connection", slog.String("op", op), sl.Err(err))
		return
	}

	codec := transport.CodecFor(conn.Subprotocol(), domain.NewInbound)
	client := transport.NewClient(c.hub, conn, codec, c.handler, c.opts, c.log)

	c.log.Info("connection accepted",
		slog.String("op", op),
		slog.String("connection_id", client.ID),
		slog.String("remote_addr", conn.RemoteAddr().String()),
		slog.String("codec", codec.Name()),
	)

	client.Run()
}
