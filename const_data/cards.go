package const_data

import "go-splendor/entities"

func card(id, level, points int, bonus entities.Gem, diamond, sapphire, emerald, ruby, onyx int) entities.CardDef {
	return entities.CardDef{
		ID:     id,
		Level:  level,
		Points: points,
		Bonus:  bonus,
		Cost:   costOf(diamond, sapphire, emerald, ruby, onyx),
	}
}

func noble(id, points int, diamond, sapphire, emerald, ruby, onyx int) entities.NobleDef {
	return entities.NobleDef{
		ID:     id,
		Points: points,
		Cost:   costOf(diamond, sapphire, emerald, ruby, onyx),
	}
}

func costOf(diamond, sapphire, emerald, ruby, onyx int) map[entities.Gem]int {
	cost := make(map[entities.Gem]int)
	for gem, n := range map[entities.Gem]int{
		entities.GemDiamond:  diamond,
		entities.GemSapphire: sapphire,
		entities.GemEmerald:  emerald,
		entities.GemRuby:     ruby,
		entities.GemOnyx:     onyx,
	} {
		if n > 0 {
			cost[gem] = n
		}
	}
	return cost
}

const (
	d = entities.GemDiamond
	s = entities.GemSapphire
	e = entities.GemEmerald
	r = entities.GemRuby
	o = entities.GemOnyx
)

// SplendorCards 按等级分组的全部发展卡，下标 = level-1
// 费用参数顺序：钻石、蓝宝石、祖母绿、红宝石、黑玛瑙
var SplendorCards = [][]entities.CardDef{
	{
		card(1, 1, 0, d, 0, 1, 1, 1, 1),
		card(2, 1, 0, d, 0, 1, 2, 1, 1),
		card(3, 1, 0, d, 0, 1, 2, 2, 0),
		card(4, 1, 0, d, 0, 2, 0, 2, 1),
		card(5, 1, 0, d, 3, 0, 0, 0, 0),
		card(6, 1, 1, d, 0, 4, 0, 0, 0),
		card(7, 1, 0, d, 2, 1, 3, 0, 0),
		card(8, 1, 0, d, 2, 0, 0, 0, 2),
		card(9, 1, 0, s, 1, 0, 1, 1, 1),
		card(10, 1, 0, s, 0, 0, 1, 1, 2),
		card(11, 1, 0, s, 0, 0, 2, 2, 1),
		card(12, 1, 0, s, 0, 0, 2, 1, 2),
		card(13, 1, 0, s, 0, 0, 3, 0, 0),
		card(14, 1, 1, s, 0, 0, 4, 0, 0),
		card(15, 1, 0, s, 0, 0, 2, 1, 3),
		card(16, 1, 0, s, 2, 0, 0, 2, 0),
		card(17, 1, 0, e, 1, 1, 0, 1, 1),
		card(18, 1, 0, e, 1, 1, 0, 1, 2),
		card(19, 1, 0, e, 0, 2, 0, 1, 2),
		card(20, 1, 0, e, 2, 1, 0, 2, 0),
		card(21, 1, 0, e, 0, 3, 0, 0, 0),
		card(22, 1, 1, e, 0, 0, 0, 4, 0),
		card(23, 1, 0, e, 0, 2, 0, 3, 1),
		card(24, 1, 0, e, 0, 2, 0, 0, 2),
		card(25, 1, 0, r, 1, 1, 1, 0, 1),
		card(26, 1, 0, r, 1, 1, 2, 0, 1),
		card(27, 1, 0, r, 1, 2, 2, 0, 0),
		card(28, 1, 0, r, 0, 2, 1, 0, 2),
		card(29, 1, 0, r, 0, 0, 0, 0, 3),
		card(30, 1, 1, r, 4, 0, 0, 0, 0),
		card(31, 1, 0, r, 1, 2, 3, 0, 0),
		card(32, 1, 0, r, 0, 2, 2, 0, 0),
		card(33, 1, 0, o, 1, 1, 1, 1, 0),
		card(34, 1, 0, o, 1, 2, 1, 1, 0),
		card(35, 1, 0, o, 2, 0, 2, 1, 0),
		card(36, 1, 0, o, 0, 2, 2, 1, 0),
		card(37, 1, 0, o, 0, 0, 0, 3, 0),
		card(38, 1, 1, o, 0, 0, 0, 4, 0),
		card(39, 1, 0, o, 3, 0, 0, 1, 2),
		card(40, 1, 0, o, 2, 0, 2, 0, 0),
	},
	{
		card(41, 2, 1, d, 0, 2, 0, 3, 2),
		card(42, 2, 2, d, 5, 0, 0, 0, 0),
		card(43, 2, 2, d, 3, 0, 3, 2, 0),
		card(44, 2, 2, d, 0, 1, 4, 0, 2),
		card(45, 2, 3, d, 6, 0, 0, 0, 0),
		card(46, 2, 1, d, 3, 0, 5, 0, 0),
		card(47, 2, 1, s, 3, 0, 2, 2, 0),
		card(48, 2, 2, s, 0, 5, 0, 0, 0),
		card(49, 2, 2, s, 0, 0, 3, 2, 3),
		card(50, 2, 2, s, 0, 3, 0, 5, 0),
		card(51, 2, 3, s, 0, 6, 0, 0, 0),
		card(52, 2, 1, s, 0, 3, 0, 0, 5),
		card(53, 2, 1, e, 2, 2, 0, 3, 0),
		card(54, 2, 2, e, 0, 0, 5, 0, 0),
		card(55, 2, 2, e, 2, 0, 3, 3, 0),
		card(56, 2, 2, e, 1, 2, 0, 4, 0),
		card(57, 2, 3, e, 0, 0, 6, 0, 0),
		card(58, 2, 1, e, 0, 0, 3, 5, 0),
		card(59, 2, 1, r, 0, 2, 3, 0, 2),
		card(60, 2, 2, r, 0, 0, 0, 5, 0),
		card(61, 2, 2, r, 3, 2, 0, 0, 3),
		card(62, 2, 2, r, 2, 4, 0, 1, 0),
		card(63, 2, 3, r, 0, 0, 0, 6, 0),
		card(64, 2, 1, r, 0, 5, 0, 3, 0),
		card(65, 2, 1, o, 0, 0, 2, 2, 3),
		card(66, 2, 2, o, 0, 0, 0, 0, 5),
		card(67, 2, 2, o, 0, 3, 0, 3, 2),
		card(68, 2, 2, o, 0, 0, 1, 2, 4),
		card(69, 2, 3, o, 0, 0, 0, 0, 6),
		card(70, 2, 1, o, 0, 3, 0, 5, 0),
	},
	{
		card(71, 3, 3, d, 0, 3, 5, 3, 3),
		card(72, 3, 4, d, 7, 0, 0, 0, 0),
		card(73, 3, 4, d, 0, 3, 3, 0, 6),
		card(74, 3, 5, d, 7, 0, 0, 0, 3),
		card(75, 3, 3, s, 3, 0, 3, 3, 5),
		card(76, 3, 4, s, 0, 7, 0, 0, 0),
		card(77, 3, 4, s, 0, 0, 6, 3, 3),
		card(78, 3, 5, s, 3, 7, 0, 0, 0),
		card(79, 3, 3, e, 3, 3, 5, 0, 3),
		card(80, 3, 4, e, 0, 0, 7, 0, 0),
		card(81, 3, 4, e, 3, 6, 3, 0, 0),
		card(82, 3, 5, e, 0, 0, 7, 3, 0),
		card(83, 3, 3, r, 3, 5, 3, 3, 0),
		card(84, 3, 4, r, 0, 0, 0, 7, 0),
		card(85, 3, 4, r, 0, 3, 0, 6, 3),
		card(86, 3, 5, r, 0, 0, 0, 7, 3),
		card(87, 3, 3, o, 3, 3, 3, 5, 0),
		card(88, 3, 4, o, 0, 0, 0, 0, 7),
		card(89, 3, 4, o, 0, 0, 3, 3, 6),
		card(90, 3, 5, o, 0, 0, 7, 0, 3),
	},
}

// NobleTilesList 全部贵族，固定 3 分
var NobleTilesList = []entities.NobleDef{
	noble(101, 3, 4, 0, 4, 0, 0),
	noble(102, 3, 3, 3, 3, 0, 0),
	noble(103, 3, 4, 0, 0, 4, 0),
	noble(104, 3, 0, 0, 4, 0, 4),
	noble(105, 3, 0, 3, 3, 0, 3),
	noble(106, 3, 0, 3, 0, 3, 3),
	noble(107, 3, 0, 0, 3, 3, 3),
	noble(108, 3, 0, 0, 0, 4, 4),
	noble(109, 3, 3, 3, 0, 3, 0),
	noble(110, 3, 0, 4, 0, 4, 0),
}
