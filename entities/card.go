package entities

const (
	MinCardLevel = 1
	MaxCardLevel = 3
)

type CardDef struct {
	ID     int         `json:"id"`       // 卡牌ID
	Level  int         `json:"level"`    // 1/2/3
	Points int         `json:"points"`   // 荣誉分
	Bonus  Gem         `json:"bonusGem"` // 折扣颜色
	Cost   map[Gem]int `json:"cost"`     // 五色费用
}

type NobleDef struct {
	ID     int         `json:"id"`
	Points int         `json:"points"` // 固定 3 分
	Cost   map[Gem]int `json:"cost"`   // 需要的折扣卡数量，如 {DIAMOND:4, EMERALD:4}
}

// CoveredBy 玩家折扣卡是否满足贵族条件
func (n NobleDef) CoveredBy(bonuses map[Gem]int) bool {
	for gem, required := range n.Cost {
		if bonuses[gem] < required {
			return false
		}
	}
	return true
}
