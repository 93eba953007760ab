package entities

// Board 桌面：翻开的卡牌、剩余牌堆、贵族、银行宝石
type Board struct {
	Cards      [][]CardDef `json:"cards"` // 下标 = level-1
	Decks      [][]CardDef `json:"decks"` // 每一级剩余的已洗牌堆，用于补牌
	Nobles     []NobleDef  `json:"nobles"`
	BankTokens map[Gem]int `json:"bankTokens"`
}

type PlayerState struct {
	ID                 string      `json:"id"`
	DisplayName        string      `json:"displayName"`
	Score              int         `json:"score"`
	Tokens             map[Gem]int `json:"tokens"`
	Bonuses            map[Gem]int `json:"bonuses"`
	PurchasedCardCount int         `json:"purchasedCardCount"`
	NobleCount         int         `json:"nobleCount"`
	TurnOrder          int         `json:"turnOrder"` // 开局确定后不再变化
}

func (p *PlayerState) TotalTokens() int {
	return SumTokens(p.Tokens)
}

type PlayerRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type ActionType string

const (
	ActionGetGem  ActionType = "get_gem"
	ActionBuyCard ActionType = "buy_card"
	ActionPass    ActionType = "pass"
)

// LastAction 上一次结束回合时提交的动作
type LastAction struct {
	Action   ActionType  `json:"action"`
	PlayerID string      `json:"playerID"`
	Tokens   map[Gem]int `json:"tokens,omitempty"`  // get_gem 拿到的宝石 / buy_card 支付的宝石
	CardID   int         `json:"cardId,omitempty"`  // buy_card
	NobleID  int         `json:"nobleId,omitempty"` // 本回合来访的贵族
}

// GameState 单个房间的完整游戏状态
type GameState struct {
	RoomID           string        `json:"roomId"`
	Board            Board         `json:"board"`
	Players          []PlayerState `json:"players"`
	CurrentPlayerID  string        `json:"currentPlayerId"`
	StartingPlayerID string        `json:"startingPlayerId"`
	IsFinalRound     bool          `json:"isFinalRound"`
	IsGameOver       bool          `json:"isGameOver"`
	Winner           *PlayerRef    `json:"winner,omitempty"`
	LastAction       *LastAction   `json:"lastAction,omitempty"`
}

func (s *GameState) Player(playerID string) *PlayerState {
	for i := range s.Players {
		if s.Players[i].ID == playerID {
			return &s.Players[i]
		}
	}
	return nil
}

func (s *GameState) PlayerByTurnOrder(order int) *PlayerState {
	for i := range s.Players {
		if s.Players[i].TurnOrder == order {
			return &s.Players[i]
		}
	}
	return nil
}

// FaceUpCard 在桌面上查找翻开的卡牌，返回 level 下标与槽位
func (b *Board) FaceUpCard(cardID int) (levelIdx, slot int, ok bool) {
	for li, cards := range b.Cards {
		for si, c := range cards {
			if c.ID == cardID {
				return li, si, true
			}
		}
	}
	return -1, -1, false
}
