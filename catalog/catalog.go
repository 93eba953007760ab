// Package catalog 静态卡牌与贵族的只读注册表，启动时加载一次，所有房间共享。
package catalog

import (
	"fmt"
	"sync"
	"time"

	"go-splendor/const_data"
	"go-splendor/entities"

	"golang.org/x/exp/rand"
)

type Catalog struct {
	cards  []entities.CardDef
	nobles []entities.NobleDef
	byID   map[int]entities.CardDef

	mu  sync.Mutex // rand.Rand 不是并发安全的
	rng *rand.Rand
}

// New 使用内置卡牌数据；seed 为 0 时用当前时间
func New(seed uint64) (*Catalog, error) {
	var cards []entities.CardDef
	for _, level := range const_data.SplendorCards {
		cards = append(cards, level...)
	}
	return NewWithData(cards, const_data.NobleTilesList, seed)
}

func NewWithData(cards []entities.CardDef, nobles []entities.NobleDef, seed uint64) (*Catalog, error) {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	c := &Catalog{
		cards:  make([]entities.CardDef, 0, len(cards)),
		nobles: make([]entities.NobleDef, 0, len(nobles)),
		byID:   make(map[int]entities.CardDef, len(cards)),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for _, card := range cards {
		if card.Level < entities.MinCardLevel || card.Level > entities.MaxCardLevel {
			return nil, fmt.Errorf("卡牌 %d 等级非法: %d", card.ID, card.Level)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("卡牌 %d 重复", card.ID)
		}
		c.byID[card.ID] = card
		c.cards = append(c.cards, card)
	}
	c.nobles = append(c.nobles, nobles...)
	return c, nil
}

// AllCards 返回副本，调用方修改不影响注册表
func (c *Catalog) AllCards() []entities.CardDef {
	out := make([]entities.CardDef, len(c.cards))
	copy(out, c.cards)
	return out
}

func (c *Catalog) AllNobles() []entities.NobleDef {
	out := make([]entities.NobleDef, len(c.nobles))
	copy(out, c.nobles)
	return out
}

func (c *Catalog) Card(id int) (entities.CardDef, bool) {
	card, ok := c.byID[id]
	return card, ok
}

// ShuffledLevel 某一等级的全部卡牌，洗好的新切片
func (c *Catalog) ShuffledLevel(level int) []entities.CardDef {
	var deck []entities.CardDef
	for _, card := range c.cards {
		if card.Level == level {
			deck = append(deck, card)
		}
	}

	c.mu.Lock()
	c.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	c.mu.Unlock()
	return deck
}
