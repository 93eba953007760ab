package rules

import (
	"go-splendor/entities"
)

// CalculatePayment 计算购买卡牌实际需要支付的宝石（已扣除折扣卡，不足部分用黄金补）。
// 只计算不修改，扣除由调用方在提交时完成。
func CalculatePayment(player *entities.PlayerState, card entities.CardDef) (map[entities.Gem]int, error) {
	payment := make(map[entities.Gem]int)
	goldNeeded := 0

	for _, gem := range entities.OrdinaryGems {
		netCost := card.Cost[gem] - player.Bonuses[gem]
		if netCost <= 0 {
			continue
		}

		held := player.Tokens[gem]
		if held >= netCost {
			payment[gem] = netCost
			continue
		}
		if held > 0 {
			payment[gem] = held
		}
		goldNeeded += netCost - held
	}

	if goldHeld := player.Tokens[entities.GemGold]; goldHeld < goldNeeded {
		return nil, entities.NewError(entities.KindNotEnoughTokens, "卡牌 %d 还差 %d 颗黄金", card.ID, goldNeeded-goldHeld)
	}
	if goldNeeded > 0 {
		payment[entities.GemGold] = goldNeeded
	}
	return payment, nil
}
