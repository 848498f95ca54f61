package http

import (
	"slices"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/immxrtalbeast/meetrelay/internal/config"
)

func SetupRouter(roomController *RoomController, signalController *SignalController, httpCfg config.HTTPConfig) *gin.Engine {
	router := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(httpCfg.AllowOrigins) == 0 || slices.Contains(httpCfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = httpCfg.AllowOrigins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{
		"Content-Type",
		"Origin",
		"Accept",
	}
	corsCfg.AllowMethods = []string{"GET", "HEAD", "OPTIONS"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	if signalController != nil {
		router.GET("/ws", signalController.ServeWS)
	}

	api := router.Group("/api")

	if roomController != nil {
		api.GET("/ice-servers", roomController.ICEServers)

		rooms := api.Group("/rooms")
		if httpCfg.ExposeRoomList {
			rooms.GET("", roomController.ListRooms)
		}
		rooms.GET("/new", roomController.NewRoomToken)
		rooms.GET("/:token/participants", roomController.ListParticipants)
	}

	return router
}
