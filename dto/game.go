package dto

import "go-splendor/entities"

// BoardView 发给客户端的桌面，牌堆只给数量
type BoardView struct {
	Cards      [][]entities.CardDef `json:"cards"`
	DeckSizes  []int                `json:"deckSizes"`
	Nobles     []entities.NobleDef  `json:"nobles"`
	BankTokens map[entities.Gem]int `json:"bankTokens"`
}

type GameView struct {
	RoomID           string                      `json:"roomId"`
	Board            BoardView                   `json:"board"`
	Players          []entities.PlayerState      `json:"players"`
	CurrentPlayerID  string                      `json:"currentPlayerId"`
	StartingPlayerID string                      `json:"startingPlayerId"`
	IsFinalRound     bool                        `json:"isFinalRound"`
	IsGameOver       bool                        `json:"isGameOver"`
	Winner           *entities.PlayerRef         `json:"winner,omitempty"`
	LastAction       *entities.LastAction        `json:"lastAction,omitempty"`
	Pending          *entities.PendingSelections `json:"pending,omitempty"`
}

func NewGameView(state *entities.GameState, pending *entities.PendingSelections) GameView {
	deckSizes := make([]int, len(state.Board.Decks))
	for i, deck := range state.Board.Decks {
		deckSizes[i] = len(deck)
	}
	return GameView{
		RoomID: state.RoomID,
		Board: BoardView{
			Cards:      state.Board.Cards,
			DeckSizes:  deckSizes,
			Nobles:     state.Board.Nobles,
			BankTokens: state.Board.BankTokens,
		},
		Players:          state.Players,
		CurrentPlayerID:  state.CurrentPlayerID,
		StartingPlayerID: state.StartingPlayerID,
		IsFinalRound:     state.IsFinalRound,
		IsGameOver:       state.IsGameOver,
		Winner:           state.Winner,
		LastAction:       state.LastAction,
		Pending:          pending,
	}
}

// ws 请求 payload，用 mapstructure 按 json tag 解析

type SelectTokenRequest struct {
	Gem    entities.Gem          `json:"gem"`
	Status entities.SelectStatus `json:"status"`
}

type SelectCardRequest struct {
	CardID   int  `json:"cardId"`
	Selected bool `json:"selected"`
}

type DiscardTokenRequest struct {
	Gem entities.Gem `json:"gem"`
}
