package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
	"go.uber.org/zap/zaptest"

	"go-splendor/catalog"
	"go-splendor/config"
	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/middleware"
	"go-splendor/repository"
	"go-splendor/service"
	"go-splendor/utils"
)

type staticRooms map[string]*entities.Room

func (s staticRooms) FindRoom(_ context.Context, roomID string) (*entities.Room, error) {
	return s[roomID], nil
}

func (s staticRooms) ListRooms(_ context.Context) ([]entities.Room, error) {
	var out []entities.Room
	for _, r := range s {
		out = append(out, *r)
	}
	return out, nil
}

type received struct {
	Type    string          `json:"type"`
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

func setupWSTest(t *testing.T) *httptest.Server {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cat, err := catalog.New(1)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	rooms := staticRooms{
		"r1": {RoomID: "r1", Name: "r1", Participants: []entities.Participant{
			{PlayerID: "p1", Nickname: "one", Hosted: true},
			{PlayerID: "p2", Nickname: "two"},
		}},
	}
	log := zaptest.NewLogger(t)
	store := repository.NewRedisSessionStore(rdb)
	game := service.NewGameService(store, cat, rooms, config.DefaultRules(), log, service.WithSeed(3))
	hub := NewHub(game, service.NewRoomService(rooms, store, log), log)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", middleware.AuthMiddleware(utils.NewTokenSigner("secret", time.Minute), true), hub.HandleWebSocket)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server, roomID, userID string) string {
	return strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws?roomID=" + roomID + "&userID=" + userID
}

func dial(t *testing.T, ts *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "r1", userID), nil)
	if err != nil {
		t.Fatalf("dial %s: %v", userID, err)
	}
	t.Cleanup(func() { conn.Close() })
	readType(t, conn, TypeInit)
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msgType string, payload map[string]interface{}) {
	t.Helper()
	if err := conn.WriteJSON(map[string]interface{}{"type": msgType, "payload": payload}); err != nil {
		t.Fatalf("ws write: %v", err)
	}
}

// readType 读到指定类型为止，跳过上下线通知等其他消息
func readType(t *testing.T, conn *websocket.Conn, want string) received {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var msg received
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("waiting for %s: %v", want, err)
		}
		if msg.Type == want {
			return msg
		}
	}
}

func decodeView(t *testing.T, msg received) dto.GameView {
	t.Helper()
	var view dto.GameView
	if err := json.Unmarshal(msg.Data, &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	return view
}

func TestWSGameFlow(t *testing.T) {
	ts := setupWSTest(t)
	conns := map[string]*websocket.Conn{
		"p1": dial(t, ts, "p1"),
		"p2": dial(t, ts, "p2"),
	}

	send(t, conns["p1"], TypeStartGame, nil)
	started := readType(t, conns["p1"], TypeStartGame)
	if started.Status != StatusSuccess {
		t.Fatalf("start failed: %+v", started)
	}
	view := decodeView(t, started)
	if len(view.Board.DeckSizes) != 3 || view.Board.DeckSizes[0] != 36 {
		t.Fatalf("unexpected deck sizes: %v", view.Board.DeckSizes)
	}
	if decodeView(t, readType(t, conns["p2"], TypeStartGame)).CurrentPlayerID != view.CurrentPlayerID {
		t.Fatal("expected both players to see the same state")
	}

	currentID := view.CurrentPlayerID
	otherID := "p1"
	if currentID == "p1" {
		otherID = "p2"
	}
	current, other := conns[currentID], conns[otherID]

	send(t, other, TypeSelectToken, map[string]interface{}{"gem": "DIAMOND", "status": "select"})
	rejected := readType(t, other, TypeSelectToken)
	if rejected.Status != StatusError || rejected.Code != string(entities.KindNotCurrentTurn) {
		t.Fatalf("expected NOT_CURRENT_TURN, got %+v", rejected)
	}

	send(t, current, TypeSelectToken, map[string]interface{}{"gem": "DIAMOND", "status": "select"})
	accepted := readType(t, current, TypeSelectToken)
	if accepted.Status != StatusSuccess {
		t.Fatalf("errors must only reach the sender, got %+v", accepted)
	}
	var picks tokenPicksData
	if err := json.Unmarshal(readType(t, other, TypeSelectToken).Data, &picks); err != nil {
		t.Fatalf("decode picks: %v", err)
	}
	if picks.PlayerID != currentID || picks.Picks["DIAMOND"] != 1 {
		t.Fatalf("unexpected broadcast picks: %+v", picks)
	}

	cardID := view.Board.Cards[0][0].ID
	send(t, current, TypeSelectCard, map[string]interface{}{"cardId": strconv.Itoa(cardID), "selected": true})
	exclusive := readType(t, current, TypeSelectCard)
	if exclusive.Code != string(entities.KindInvalidTokenAction) {
		t.Fatalf("expected card staging to be refused while tokens are picked, got %+v", exclusive)
	}

	send(t, current, TypeEndTurn, nil)
	ended := decodeView(t, readType(t, current, TypeEndTurn))
	if ended.CurrentPlayerID != otherID {
		t.Fatalf("expected turn to pass to %s, got %s", otherID, ended.CurrentPlayerID)
	}
	if ended.LastAction == nil || ended.LastAction.Tokens[entities.GemDiamond] != 1 {
		t.Fatalf("unexpected last action: %+v", ended.LastAction)
	}
	readType(t, other, TypeEndTurn)

	send(t, other, TypeSync, nil)
	synced := decodeView(t, readType(t, other, TypeSync))
	if synced.Board.BankTokens[entities.GemDiamond] != 3 {
		t.Fatalf("expected bank diamond 3, got %d", synced.Board.BankTokens[entities.GemDiamond])
	}
}

func TestWSBadMessages(t *testing.T) {
	ts := setupWSTest(t)
	conn := dial(t, ts, "p1")

	send(t, conn, "fly", nil)
	if msg := readType(t, conn, "fly"); msg.Code != CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST for unknown type, got %+v", msg)
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{oops")); err != nil {
		t.Fatalf("ws write: %v", err)
	}
	if msg := readType(t, conn, ""); msg.Code != CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST for malformed json, got %+v", msg)
	}

	send(t, conn, TypeSelectCard, map[string]interface{}{"selected": true})
	if msg := readType(t, conn, TypeSelectCard); msg.Code != CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST for missing cardId, got %+v", msg)
	}

	send(t, conn, TypeSelectCard, map[string]interface{}{"cardId": "seven", "selected": true})
	if msg := readType(t, conn, TypeSelectCard); msg.Code != CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST for non-numeric cardId, got %+v", msg)
	}

	send(t, conn, TypeDiscardToken, map[string]interface{}{"gem": []int{1}})
	if msg := readType(t, conn, TypeDiscardToken); msg.Code != CodeBadRequest {
		t.Fatalf("expected BAD_REQUEST for malformed gem, got %+v", msg)
	}

	send(t, conn, TypeSync, nil)
	if msg := readType(t, conn, TypeSync); msg.Code != string(entities.KindNotFound) {
		t.Fatalf("expected NOT_FOUND before start, got %+v", msg)
	}
}

func TestWSRejectsNonMember(t *testing.T) {
	ts := setupWSTest(t)
	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "r1", "p9"), nil)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %+v", resp)
	}
}

func TestDecodePayload(t *testing.T) {
	var req dto.SelectCardRequest
	if err := decodePayload(map[string]interface{}{"cardId": "12", "selected": true}, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.CardID != 12 || !req.Selected {
		t.Fatalf("unexpected request: %+v", req)
	}

	req = dto.SelectCardRequest{}
	if err := decodePayload(map[string]interface{}{"cardId": float64(7)}, &req); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if req.CardID != 7 {
		t.Fatalf("expected 7, got %d", req.CardID)
	}

	if err := decodePayload(map[string]interface{}{"cardId": "seven"}, &req); err == nil {
		t.Fatal("expected error for non-numeric card id")
	}
}
