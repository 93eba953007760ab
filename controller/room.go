package controller

import (
	"github.com/gin-gonic/gin"

	"go-splendor/dto"
	"go-splendor/service"
)

type RoomController struct {
	rooms *service.RoomService
}

func NewRoomController(rooms *service.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

func (rc *RoomController) GetRoomList(c *gin.Context) {
	rooms, err := rc.rooms.GetRoomList(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	writeData(c, "获取成功", dto.GetRoomList{Rooms: rooms})
}

func (rc *RoomController) GetRoomInfo(c *gin.Context) {
	info, err := rc.rooms.GetRoomInfo(c.Request.Context(), c.Param("roomID"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeData(c, "获取成功", info)
}
