package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-splendor/entities"
	"go-splendor/middleware"
)

// GameEngine hub 用到的回合引擎操作
type GameEngine interface {
	StartGame(ctx context.Context, roomID string) (*entities.GameState, error)
	StageTokenPick(ctx context.Context, roomID, playerID string, gem entities.Gem, status entities.SelectStatus) (map[entities.Gem]int, error)
	StageCardSelection(ctx context.Context, roomID, playerID string, cardID int, selected bool) (*entities.PendingCardSelection, error)
	DiscardToken(ctx context.Context, roomID, playerID string, gem entities.Gem) (*entities.GameState, error)
	EndTurnAs(ctx context.Context, roomID, playerID string) (*entities.GameState, error)
	GetState(ctx context.Context, roomID string) (*entities.GameState, error)
	GetPendingSelections(ctx context.Context, roomID string) (*entities.PendingSelections, error)
}

type MemberChecker interface {
	IsMember(ctx context.Context, roomID, playerID string) (bool, error)
}

// Conn 真实连接和测试用假连接都实现它
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// PlayerConn 玩家连接，写操作串行化（gorilla 不支持并发写）
type PlayerConn struct {
	PlayerID string
	ConnID   string
	Online   bool

	conn    Conn
	writeMu sync.Mutex
}

func (pc *PlayerConn) write(data []byte) error {
	pc.writeMu.Lock()
	defer pc.writeMu.Unlock()
	return pc.conn.WriteMessage(websocket.TextMessage, data)
}

type Hub struct {
	game    GameEngine
	members MemberChecker
	log     *zap.Logger

	upgrader websocket.Upgrader

	roomLock sync.Mutex
	rooms    map[string][]*PlayerConn
}

func NewHub(game GameEngine, members MemberChecker, log *zap.Logger) *Hub {
	return &Hub{
		game:    game,
		members: members,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		rooms: make(map[string][]*PlayerConn),
	}
}

// HandleWebSocket ws 主入口，玩家身份由鉴权中间件写入
func (h *Hub) HandleWebSocket(c *gin.Context) {
	roomID := c.Query("roomID")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "缺少 roomID"})
		return
	}
	playerID := middleware.UserID(c)
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "未授权"})
		return
	}

	ok, err := h.members.IsMember(c.Request.Context(), roomID, playerID)
	if err != nil {
		h.log.Error("❌ 获取房间信息失败", zap.String("room_id", roomID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "获取房间信息失败"})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"message": "不是该房间的玩家"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket 升级失败", zap.Error(err))
		return
	}
	h.Serve(roomID, playerID, conn)
}

// Serve 加入房间并阻塞读取消息，直到连接断开
func (h *Hub) Serve(roomID, playerID string, conn Conn) {
	defer conn.Close()

	pc := h.join(roomID, playerID, conn)
	defer h.leave(roomID, pc)

	log := h.log.With(zap.String("room_id", roomID), zap.String("player_id", playerID), zap.String("conn_id", pc.ConnID))
	log.Info("玩家加入房间")

	h.sendTo(pc, successMessage(TypeInit, initData{PlayerID: playerID, Online: h.onlinePlayers(roomID)}))
	h.broadcast(roomID, successMessage(TypePlayerOnline, presenceData{PlayerID: playerID, Online: h.onlinePlayers(roomID)}))

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			log.Info("读取消息结束", zap.Error(err))
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Warn("消息解析失败", zap.Error(err))
			h.sendTo(pc, badRequest("", "消息格式错误"))
			continue
		}
		h.dispatch(context.Background(), pc, roomID, msg)
	}
}

func (h *Hub) dispatch(ctx context.Context, pc *PlayerConn, roomID string, msg inboundMessage) {
	handler, found := messageHandlers[msg.Type]
	if !found {
		h.log.Warn("⚠️ 未知的消息类型", zap.String("type", msg.Type))
		h.sendTo(pc, badRequest(msg.Type, "未知的消息类型"))
		return
	}

	data, err := handler(ctx, h, roomID, pc.PlayerID, msg.Payload)
	if err != nil {
		h.sendTo(pc, h.errorMessage(msg.Type, roomID, pc.PlayerID, err))
		return
	}
	if privateTypes[msg.Type] {
		h.sendTo(pc, successMessage(msg.Type, data))
		return
	}
	h.broadcast(roomID, successMessage(msg.Type, data))
}

func (h *Hub) errorMessage(msgType, roomID, playerID string, err error) outboundMessage {
	var pe *payloadError
	if errors.As(err, &pe) {
		return badRequest(msgType, pe.Error())
	}
	var ge *entities.GameError
	if errors.As(err, &ge) {
		return outboundMessage{Type: msgType, Status: StatusError, Message: ge.Error(), Code: string(ge.Kind)}
	}
	h.log.Error("❌ 处理消息失败",
		zap.String("type", msgType),
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
		zap.Error(err),
	)
	return outboundMessage{Type: msgType, Status: StatusError, Message: "服务器内部错误", Code: CodeInternal}
}

// join 同一玩家重连时替换旧连接
func (h *Hub) join(roomID, playerID string, conn Conn) *PlayerConn {
	h.roomLock.Lock()
	defer h.roomLock.Unlock()

	pc := &PlayerConn{PlayerID: playerID, ConnID: uuid.NewString(), Online: true, conn: conn}
	for i, existing := range h.rooms[roomID] {
		if existing.PlayerID == playerID {
			if existing.Online {
				existing.conn.Close()
			}
			h.rooms[roomID][i] = pc
			return pc
		}
	}
	h.rooms[roomID] = append(h.rooms[roomID], pc)
	return pc
}

// leave 玩家断开后标记离线，房间里没有在线玩家时回收
func (h *Hub) leave(roomID string, pc *PlayerConn) {
	h.roomLock.Lock()
	allOffline, replaced := true, true
	for _, existing := range h.rooms[roomID] {
		if existing == pc {
			existing.Online = false
			replaced = false
		}
		if existing.Online {
			allOffline = false
		}
	}
	if allOffline {
		delete(h.rooms, roomID)
	}
	h.roomLock.Unlock()

	// 已被重连替换的旧连接不通知下线
	if replaced {
		return
	}
	h.log.Info("玩家离开房间", zap.String("room_id", roomID), zap.String("player_id", pc.PlayerID))
	if !allOffline {
		h.broadcast(roomID, successMessage(TypePlayerOffline, presenceData{PlayerID: pc.PlayerID, Online: h.onlinePlayers(roomID)}))
	}
}

func (h *Hub) onlinePlayers(roomID string) []string {
	h.roomLock.Lock()
	defer h.roomLock.Unlock()

	online := []string{}
	for _, pc := range h.rooms[roomID] {
		if pc.Online {
			online = append(online, pc.PlayerID)
		}
	}
	return online
}

// broadcast 发给房间内所有在线玩家，写失败的连接关闭并标记离线
func (h *Hub) broadcast(roomID string, msg outboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("❌ 编码 JSON 失败", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.roomLock.Lock()
	targets := make([]*PlayerConn, 0, len(h.rooms[roomID]))
	for _, pc := range h.rooms[roomID] {
		if pc.Online {
			targets = append(targets, pc)
		}
	}
	h.roomLock.Unlock()

	for _, pc := range targets {
		if err := pc.write(data); err != nil {
			h.log.Warn("广播失败，关闭连接", zap.String("room_id", roomID), zap.String("player_id", pc.PlayerID), zap.Error(err))
			pc.conn.Close()
			h.roomLock.Lock()
			pc.Online = false
			h.roomLock.Unlock()
		}
	}
}

func (h *Hub) sendTo(pc *PlayerConn, msg outboundMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.log.Error("❌ 编码 JSON 失败", zap.String("type", msg.Type), zap.Error(err))
		return
	}
	if err := pc.write(data); err != nil {
		h.log.Warn("发送失败", zap.String("player_id", pc.PlayerID), zap.Error(err))
	}
}
