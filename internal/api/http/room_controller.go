package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/meetrelay/internal/api/http/converter"
	"github.com/immxrtalbeast/meetrelay/internal/config"
	"github.com/immxrtalbeast/meetrelay/internal/service"
)

type RoomController struct {
	rooms  service.RoomInteractor
	webrtc config.WebRTCConfig
}

func NewRoomController(rooms service.RoomInteractor, webrtc config.WebRTCConfig) *RoomController {
	return &RoomController{
		rooms:  rooms,
		webrtc: webrtc,
	}
}

func (c *RoomController) ListRooms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"rooms": converter.RoomsToApi(c.rooms.ListRooms())})
}

func (c *RoomController) NewRoomToken(ctx *gin.Context) {
	token, err := c.rooms.GenerateRoomToken()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

func (c *RoomController) ListParticipants(ctx *gin.Context) {
	members, err := c.rooms.Participants(ctx.Param("token"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrRoomNotFound) {
			status = http.StatusNotFound
		}
		ctx.JSON(status, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"participants": converter.ParticipantsToApi(members)})
}

func (c *RoomController) ICEServers(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"iceServers": converter.ICEServers(c.webrtc)})
}
