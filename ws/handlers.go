package ws

import (
	"context"
	"fmt"

	"go-splendor/dto"
	"go-splendor/entities"
)

// 消息处理函数类型，返回的 data 会放进回包
type messageHandler func(ctx context.Context, h *Hub, roomID, playerID string, payload map[string]interface{}) (interface{}, error)

// 消息处理函数映射
var messageHandlers = map[string]messageHandler{
	TypeStartGame:    handleStartGame,
	TypeSelectToken:  handleSelectToken,
	TypeSelectCard:   handleSelectCard,
	TypeDiscardToken: handleDiscardToken,
	TypeEndTurn:      handleEndTurn,
	TypeSync:         handleSync,
}

// privateTypes 成功后只回给发起者，不广播
var privateTypes = map[string]bool{
	TypeSync: true,
}

func handleStartGame(ctx context.Context, h *Hub, roomID, _ string, _ map[string]interface{}) (interface{}, error) {
	state, err := h.game.StartGame(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return dto.NewGameView(state, nil), nil
}

func handleSelectToken(ctx context.Context, h *Hub, roomID, playerID string, payload map[string]interface{}) (interface{}, error) {
	var req dto.SelectTokenRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, badPayload("payload 解析失败: %v", err)
	}
	picks, err := h.game.StageTokenPick(ctx, roomID, playerID, req.Gem, req.Status)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(picks))
	for gem, n := range picks {
		out[string(gem)] = n
	}
	return tokenPicksData{PlayerID: playerID, Picks: out}, nil
}

func handleSelectCard(ctx context.Context, h *Hub, roomID, playerID string, payload map[string]interface{}) (interface{}, error) {
	var req dto.SelectCardRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, badPayload("payload 解析失败: %v", err)
	}
	if req.CardID == 0 {
		return nil, badPayload("缺少 cardId")
	}
	return h.game.StageCardSelection(ctx, roomID, playerID, req.CardID, req.Selected)
}

func handleDiscardToken(ctx context.Context, h *Hub, roomID, playerID string, payload map[string]interface{}) (interface{}, error) {
	var req dto.DiscardTokenRequest
	if err := decodePayload(payload, &req); err != nil {
		return nil, badPayload("payload 解析失败: %v", err)
	}
	state, err := h.game.DiscardToken(ctx, roomID, playerID, req.Gem)
	if err != nil {
		return nil, err
	}
	return h.view(ctx, state)
}

func handleEndTurn(ctx context.Context, h *Hub, roomID, playerID string, _ map[string]interface{}) (interface{}, error) {
	state, err := h.game.EndTurnAs(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}
	if state.IsGameOver {
		return dto.NewGameView(state, nil), nil
	}
	return h.view(ctx, state)
}

func handleSync(ctx context.Context, h *Hub, roomID, _ string, _ map[string]interface{}) (interface{}, error) {
	state, err := h.game.GetState(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return h.view(ctx, state)
}

func (h *Hub) view(ctx context.Context, state *entities.GameState) (dto.GameView, error) {
	pending, err := h.game.GetPendingSelections(ctx, state.RoomID)
	if err != nil {
		return dto.GameView{}, fmt.Errorf("获取暂存选择失败: %w", err)
	}
	return dto.NewGameView(state, pending), nil
}
