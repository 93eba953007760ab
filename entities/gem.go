package entities

type Gem string

const (
	GemDiamond  Gem = "DIAMOND"
	GemSapphire Gem = "SAPPHIRE"
	GemEmerald  Gem = "EMERALD"
	GemRuby     Gem = "RUBY"
	GemOnyx     Gem = "ONYX"
	GemGold     Gem = "GOLD" // 万能宝石，只能通过支付替代使用
)

// OrdinaryGems 五种普通宝石，顺序固定（计算支付时按此顺序遍历）
var OrdinaryGems = []Gem{GemDiamond, GemSapphire, GemEmerald, GemRuby, GemOnyx}

// AllGems 普通宝石 + 黄金
var AllGems = []Gem{GemDiamond, GemSapphire, GemEmerald, GemRuby, GemOnyx, GemGold}

func (g Gem) Valid() bool {
	for _, v := range AllGems {
		if v == g {
			return true
		}
	}
	return false
}

func (g Gem) IsWildcard() bool {
	return g == GemGold
}

// SumTokens 统计所有宝石数量
func SumTokens(tokens map[Gem]int) int {
	total := 0
	for _, n := range tokens {
		total += n
	}
	return total
}

// CopyTokens 返回一个新 map，去掉数量为 0 的条目
func CopyTokens(tokens map[Gem]int) map[Gem]int {
	out := make(map[Gem]int, len(tokens))
	for g, n := range tokens {
		if n != 0 {
			out[g] = n
		}
	}
	return out
}
