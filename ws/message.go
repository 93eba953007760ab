package ws

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	TypeInit          = "init"
	TypePlayerOnline  = "player_online"
	TypePlayerOffline = "player_offline"

	TypeStartGame    = "start_game"
	TypeSelectToken  = "select_token"
	TypeSelectCard   = "select_card"
	TypeDiscardToken = "discard_token"
	TypeEndTurn      = "end_turn"
	TypeSync         = "sync"
)

const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"

	CodeBadRequest = "BAD_REQUEST"
	CodeInternal   = "INTERNAL"
)

// inboundMessage 客户端消息 {"type": ..., "payload": {...}}
type inboundMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload"`
}

// outboundMessage 服务端消息，失败时只发给发起者
type outboundMessage struct {
	Type    string      `json:"type"`
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Code    string      `json:"code,omitempty"`
}

type initData struct {
	PlayerID string   `json:"playerId"`
	Online   []string `json:"online"`
}

type presenceData struct {
	PlayerID string   `json:"playerId"`
	Online   []string `json:"online"`
}

type tokenPicksData struct {
	PlayerID string         `json:"playerId"`
	Picks    map[string]int `json:"picks"`
}

func successMessage(msgType string, data interface{}) outboundMessage {
	return outboundMessage{Type: msgType, Status: StatusSuccess, Data: data}
}

func badRequest(msgType, message string) outboundMessage {
	return outboundMessage{Type: msgType, Status: StatusError, Message: message, Code: CodeBadRequest}
}

// payloadError 客户端发来的 payload 不合法，回 BAD_REQUEST
type payloadError struct {
	msg string
}

func (e *payloadError) Error() string { return e.msg }

func badPayload(format string, args ...interface{}) error {
	return &payloadError{msg: fmt.Sprintf(format, args...)}
}

// 自定义 HookFunc，把字符串转换成 int
func stringToIntHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from == reflect.String && to == reflect.Int {
			return strconv.Atoi(data.(string))
		}
		return data, nil
	}
}

// decodePayload 按 json tag 把 payload 解析到结构体
func decodePayload(payload map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToIntHookFunc(),
		Result:     out,
		TagName:    "json",
	})
	if err != nil {
		return err
	}
	return decoder.Decode(payload)
}
