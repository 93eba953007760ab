package service

import (
	"sort"

	"go-splendor/entities"
)

// rankPlayers 按胜负顺序排序：分数高、买卡少、贵族多、剩余宝石多、行动顺序靠后
func rankPlayers(players []entities.PlayerState) []entities.PlayerState {
	ranked := make([]entities.PlayerState, len(players))
	copy(ranked, players)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.PurchasedCardCount != b.PurchasedCardCount {
			return a.PurchasedCardCount < b.PurchasedCardCount
		}
		if a.NobleCount != b.NobleCount {
			return a.NobleCount > b.NobleCount
		}
		if ta, tb := a.TotalTokens(), b.TotalTokens(); ta != tb {
			return ta > tb
		}
		return a.TurnOrder > b.TurnOrder
	})
	return ranked
}

func determineWinner(players []entities.PlayerState) *entities.PlayerRef {
	if len(players) == 0 {
		return nil
	}
	top := rankPlayers(players)[0]
	return &entities.PlayerRef{ID: top.ID, DisplayName: top.DisplayName}
}
