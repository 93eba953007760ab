package entities

type SelectStatus string

const (
	StatusSelect   SelectStatus = "select"
	StatusDeselect SelectStatus = "deselect"
)

func (s SelectStatus) Valid() bool {
	return s == StatusSelect || s == StatusDeselect
}

// PendingTokenSelection 当前回合正在挑选、尚未提交的宝石
type PendingTokenSelection struct {
	RoomID   string      `json:"roomId"`
	PlayerID string      `json:"playerId"`
	Picks    map[Gem]int `json:"picks"`
}

func (p *PendingTokenSelection) Total() int {
	if p == nil {
		return 0
	}
	return SumTokens(p.Picks)
}

// PendingCardSelection 当前回合准备购买的卡牌
type PendingCardSelection struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
	CardID   *int   `json:"cardId"`
}

func (p *PendingCardSelection) HasCard() bool {
	return p != nil && p.CardID != nil
}

// PendingSelections 房间当前两条暂存记录的只读视图
type PendingSelections struct {
	Tokens *PendingTokenSelection `json:"tokens,omitempty"`
	Card   *PendingCardSelection  `json:"card,omitempty"`
}
