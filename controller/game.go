package controller

import (
	"github.com/gin-gonic/gin"

	"go-splendor/dto"
	"go-splendor/service"
)

type GameController struct {
	game *service.GameService
}

func NewGameController(game *service.GameService) *GameController {
	return &GameController{game: game}
}

func (gc *GameController) GetGame(c *gin.Context) {
	ctx := c.Request.Context()
	roomID := c.Param("roomID")

	state, err := gc.game.GetState(ctx, roomID)
	if err != nil {
		writeError(c, err)
		return
	}
	pending, err := gc.game.GetPendingSelections(ctx, roomID)
	if err != nil {
		writeError(c, err)
		return
	}
	writeData(c, "获取成功", dto.NewGameView(state, pending))
}

func (gc *GameController) StartGame(c *gin.Context) {
	state, err := gc.game.StartGame(c.Request.Context(), c.Param("roomID"))
	if err != nil {
		writeError(c, err)
		return
	}
	writeData(c, "游戏开始", dto.NewGameView(state, nil))
}
