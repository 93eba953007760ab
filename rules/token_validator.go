package rules

import (
	"go-splendor/entities"
)

const (
	MaxTokensPerTurn     = 3
	MaxTokenTypesPerTurn = 3
	// DefaultDoubleTakeMinBank 拿两颗同色宝石时，银行里该颜色至少要有的数量
	DefaultDoubleTakeMinBank = 4
)

// TokenValidator 拿宝石规则校验，纯函数，不修改任何状态
type TokenValidator struct {
	DoubleTakeMinBank int
}

func NewTokenValidator(doubleTakeMinBank int) TokenValidator {
	if doubleTakeMinBank <= 0 {
		doubleTakeMinBank = DefaultDoubleTakeMinBank
	}
	return TokenValidator{DoubleTakeMinBank: doubleTakeMinBank}
}

// ValidatePartial 每选一颗宝石后调用，校验到目前为止的选择；返回第一个违反的规则
func (v TokenValidator) ValidatePartial(picks, bank map[entities.Gem]int) error {
	if picks[entities.GemGold] > 0 {
		return entities.NewError(entities.KindInvalidTokenAction, "黄金不能直接拿取")
	}

	valid := positive(picks)
	total := entities.SumTokens(valid)
	if total > MaxTokensPerTurn {
		return entities.NewError(entities.KindInvalidTokenAction, "一回合最多拿 %d 颗宝石", MaxTokensPerTurn)
	}

	return v.checkShape(valid, bank)
}

// ValidateFinal 结束回合提交前再次校验，额外要求总数在 [1,3]
func (v TokenValidator) ValidateFinal(picks, bank map[entities.Gem]int) error {
	if picks[entities.GemGold] > 0 {
		return entities.NewError(entities.KindInvalidTokenAction, "黄金不能直接拿取")
	}

	valid := positive(picks)
	total := entities.SumTokens(valid)
	if total < 1 || total > MaxTokensPerTurn {
		return entities.NewError(entities.KindInvalidTokenAction, "拿取数量必须在 1 到 %d 之间", MaxTokensPerTurn)
	}

	return v.checkShape(valid, bank)
}

func (v TokenValidator) checkShape(valid, bank map[entities.Gem]int) error {
	distinct := len(valid)
	if distinct > MaxTokenTypesPerTurn {
		return entities.ErrTooManyTokenTypes
	}

	switch {
	case distinct == 1:
		for gem, count := range valid {
			if count == 2 && bank[gem] < v.DoubleTakeMinBank {
				return entities.NewError(entities.KindInvalidTwoTokenRule, "%s 只剩 %d 颗", gem, bank[gem])
			}
			if count > 2 {
				return entities.NewError(entities.KindInvalidTokenAction, "同色宝石最多拿 2 颗")
			}
		}
	case distinct >= 2:
		for gem, count := range valid {
			if count != 1 {
				return entities.NewError(entities.KindInvalidTokenAction, "拿不同颜色时每种只能拿 1 颗 (%s=%d)", gem, count)
			}
		}
	}

	for gem, count := range valid {
		if bank[gem] < count {
			return entities.NewError(entities.KindNotEnoughBoardToken, "%s 只剩 %d 颗，想拿 %d 颗", gem, bank[gem], count)
		}
	}
	return nil
}

func positive(picks map[entities.Gem]int) map[entities.Gem]int {
	out := make(map[entities.Gem]int, len(picks))
	for gem, n := range picks {
		if n > 0 {
			out[gem] = n
		}
	}
	return out
}
