package entities

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindNotFound                   ErrorKind = "NOT_FOUND"
	KindNotCurrentTurn             ErrorKind = "NOT_CURRENT_TURN"
	KindInvalidTokenAction         ErrorKind = "INVALID_TOKEN_ACTION"
	KindTooManyTokenTypes          ErrorKind = "TOO_MANY_TOKEN_TYPES"
	KindInvalidTwoTokenRule        ErrorKind = "INVALID_TWO_TOKEN_RULE"
	KindNotEnoughBoardToken        ErrorKind = "NOT_ENOUGH_BOARD_TOKEN"
	KindNotEnoughTokens            ErrorKind = "NOT_ENOUGH_TOKENS"
	KindCardNotAvailable           ErrorKind = "CARD_NOT_AVAILABLE"
	KindAnotherCardAlreadySelected ErrorKind = "ANOTHER_CARD_ALREADY_SELECTED"
	KindInvalidPlayerCount         ErrorKind = "INVALID_PLAYER_COUNT"
	KindGameInProgress             ErrorKind = "GAME_IN_PROGRESS"
)

var kindMessages = map[ErrorKind]string{
	KindNotFound:                   "房间、玩家或卡牌不存在",
	KindNotCurrentTurn:             "不是当前玩家的回合",
	KindInvalidTokenAction:         "无效的宝石操作",
	KindTooManyTokenTypes:          "一次最多拿三种宝石",
	KindInvalidTwoTokenRule:        "拿两颗同色宝石时，该宝石需至少剩余 4 颗",
	KindNotEnoughBoardToken:        "桌面宝石不足",
	KindNotEnoughTokens:            "玩家宝石不足，无法购买该卡牌",
	KindCardNotAvailable:           "卡牌不可用",
	KindAnotherCardAlreadySelected: "已经选择了一张卡牌",
	KindInvalidPlayerCount:         "玩家人数不符合规则",
	KindGameInProgress:             "游戏已经开始",
}

// GameError 领域错误：同步产生、不可重试，原样返回给调用方
type GameError struct {
	Kind   ErrorKind
	Detail string
}

func (e *GameError) Error() string {
	msg := kindMessages[e.Kind]
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", msg, e.Detail)
	}
	return msg
}

// Is 按 Kind 比较，errors.Is(err, ErrNotFound) 对任意 Detail 都成立
func (e *GameError) Is(target error) bool {
	var t *GameError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Message 不带细节的提示文案
func (e *GameError) Message() string {
	if msg, ok := kindMessages[e.Kind]; ok {
		return msg
	}
	return string(e.Kind)
}

func NewError(kind ErrorKind, format string, args ...interface{}) *GameError {
	return &GameError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

var (
	ErrNotFound                   = &GameError{Kind: KindNotFound}
	ErrNotCurrentTurn             = &GameError{Kind: KindNotCurrentTurn}
	ErrInvalidTokenAction         = &GameError{Kind: KindInvalidTokenAction}
	ErrTooManyTokenTypes          = &GameError{Kind: KindTooManyTokenTypes}
	ErrInvalidTwoTokenRule        = &GameError{Kind: KindInvalidTwoTokenRule}
	ErrNotEnoughBoardToken        = &GameError{Kind: KindNotEnoughBoardToken}
	ErrNotEnoughTokens            = &GameError{Kind: KindNotEnoughTokens}
	ErrCardNotAvailable           = &GameError{Kind: KindCardNotAvailable}
	ErrAnotherCardAlreadySelected = &GameError{Kind: KindAnotherCardAlreadySelected}
	ErrInvalidPlayerCount         = &GameError{Kind: KindInvalidPlayerCount}
	ErrGameInProgress             = &GameError{Kind: KindGameInProgress}
)

// KindOf 取出错误类型，非领域错误返回 false
func KindOf(err error) (ErrorKind, bool) {
	var ge *GameError
	if errors.As(err, &ge) {
		return ge.Kind, true
	}
	return "", false
}
