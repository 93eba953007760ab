package router

import (
	"github.com/gin-gonic/gin"

	"go-splendor/controller"
	"go-splendor/middleware"
	"go-splendor/ws"
)

type Handlers struct {
	Rooms *controller.RoomController
	Games *controller.GameController
	Hub   *ws.Hub
	Auth  gin.HandlerFunc
}

func InitRouter(r *gin.Engine, h Handlers) {
	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	// 房间接口路由（只读）
	room := r.Group("/room")
	{
		room.GET("/list", h.Rooms.GetRoomList)
		room.GET("/:roomID", h.Rooms.GetRoomInfo)
	}

	game := r.Group("/game", h.Auth)
	{
		game.GET("/:roomID", h.Games.GetGame)
		game.POST("/:roomID/start", h.Games.StartGame)
	}

	// WebSocket 路由
	r.GET("/ws", h.Auth, h.Hub.HandleWebSocket)
}

// NewEngine 带上通用中间件的 gin 实例
func NewEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	r.Use(middlewares...)
	return r
}
