package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"

	"go-splendor/config"
	"go-splendor/entities"
	"go-splendor/repository"
	"go-splendor/rules"
)

// CatalogProvider 卡牌与贵族的只读目录
type CatalogProvider interface {
	AllCards() []entities.CardDef
	AllNobles() []entities.NobleDef
	ShuffledLevel(level int) []entities.CardDef
	Card(id int) (entities.CardDef, bool)
}

// RoomProvider 大厅房间信息，不存在时返回 nil, nil
type RoomProvider interface {
	FindRoom(ctx context.Context, roomID string) (*entities.Room, error)
	ListRooms(ctx context.Context) ([]entities.Room, error)
}

// GameService 回合引擎：每个写操作都在房间锁内完成 读取 → 校验 → 修改 → 保存
type GameService struct {
	store     repository.SessionStore
	catalog   CatalogProvider
	rooms     RoomProvider
	rules     config.RulesConfig
	validator rules.TokenValidator
	log       *zap.Logger
	locks     *roomLocks

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*GameService)

// WithSeed 固定行动顺序的随机种子
func WithSeed(seed uint64) Option {
	return func(s *GameService) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

func NewGameService(store repository.SessionStore, catalog CatalogProvider, rooms RoomProvider, cfg config.RulesConfig, log *zap.Logger, opts ...Option) *GameService {
	s := &GameService{
		store:     store,
		catalog:   catalog,
		rooms:     rooms,
		rules:     cfg,
		validator: rules.NewTokenValidator(cfg.DoubleTakeMinBank),
		log:       log,
		locks:     newRoomLocks(),
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartGame 按房间成员初始化桌面和玩家，随机决定行动顺序
func (s *GameService) StartGame(ctx context.Context, roomID string) (*entities.GameState, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	room, err := s.rooms.FindRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if room == nil {
		return nil, entities.NewError(entities.KindNotFound, "房间 %s 不存在", roomID)
	}

	existing, err := s.store.LoadGame(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, entities.NewError(entities.KindGameInProgress, "房间 %s 已在游戏中", roomID)
	}

	playerCount := len(room.Participants)
	gemsPerColor, ok := s.rules.GemTokensFor(playerCount)
	if !ok {
		return nil, entities.NewError(entities.KindInvalidPlayerCount, "不支持 %d 人游戏", playerCount)
	}

	state := &entities.GameState{
		RoomID: roomID,
		Board:  s.newBoard(gemsPerColor),
	}

	order := s.permutation(playerCount)
	for i, p := range room.Participants {
		state.Players = append(state.Players, entities.PlayerState{
			ID:          p.PlayerID,
			DisplayName: p.Nickname,
			Tokens:      zeroTokens(entities.AllGems),
			Bonuses:     zeroTokens(entities.OrdinaryGems),
			TurnOrder:   order[i],
		})
	}
	first := state.PlayerByTurnOrder(0)
	state.CurrentPlayerID = first.ID
	state.StartingPlayerID = first.ID

	if err := s.store.CommitTurn(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info("🎮 游戏开始",
		zap.String("room_id", roomID),
		zap.Int("players", playerCount),
		zap.String("starting_player", first.ID),
	)
	return state, nil
}

func (s *GameService) newBoard(gemsPerColor int) entities.Board {
	board := entities.Board{
		Cards:      make([][]entities.CardDef, entities.MaxCardLevel),
		Decks:      make([][]entities.CardDef, entities.MaxCardLevel),
		Nobles:     s.catalog.AllNobles(),
		BankTokens: make(map[entities.Gem]int, len(entities.AllGems)),
	}
	for level := entities.MinCardLevel; level <= entities.MaxCardLevel; level++ {
		deck := s.catalog.ShuffledLevel(level)
		n := min(s.rules.FaceUpPerLevel, len(deck))
		board.Cards[level-1] = append([]entities.CardDef{}, deck[:n]...)
		board.Decks[level-1] = append([]entities.CardDef{}, deck[n:]...)
	}
	for _, gem := range entities.OrdinaryGems {
		board.BankTokens[gem] = gemsPerColor
	}
	board.BankTokens[entities.GemGold] = s.rules.GoldTokens
	return board
}

func (s *GameService) permutation(n int) []int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Perm(n)
}

// StageTokenPick 选择或取消一颗宝石，返回当前已选的宝石
func (s *GameService) StageTokenPick(ctx context.Context, roomID, playerID string, gem entities.Gem, status entities.SelectStatus) (map[entities.Gem]int, error) {
	if !gem.Valid() {
		return nil, entities.NewError(entities.KindInvalidTokenAction, "未知宝石 %q", gem)
	}
	if !status.Valid() {
		return nil, entities.NewError(entities.KindInvalidTokenAction, "未知操作 %q", status)
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	state, err := s.loadTurn(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}

	if status == entities.StatusSelect {
		cardSel, err := s.store.LoadCardSelection(ctx, roomID)
		if err != nil {
			return nil, err
		}
		if cardSel = ownCard(cardSel, playerID); cardSel.HasCard() {
			return nil, entities.NewError(entities.KindInvalidTokenAction, "已选择卡牌 %d，不能再拿宝石", *cardSel.CardID)
		}
	}

	sel, err := s.store.LoadTokenSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if sel == nil || sel.PlayerID != playerID {
		sel = &entities.PendingTokenSelection{RoomID: roomID, PlayerID: playerID, Picks: map[entities.Gem]int{}}
	}

	switch status {
	case entities.StatusSelect:
		proposed := entities.CopyTokens(sel.Picks)
		proposed[gem]++
		if err := s.validator.ValidatePartial(proposed, state.Board.BankTokens); err != nil {
			return nil, err
		}
		sel.Picks = proposed
	case entities.StatusDeselect:
		if sel.Picks[gem] <= 0 {
			return entities.CopyTokens(sel.Picks), nil
		}
		sel.Picks[gem]--
		if sel.Picks[gem] == 0 {
			delete(sel.Picks, gem)
		}
	}

	if len(sel.Picks) == 0 {
		err = s.store.DeleteTokenSelection(ctx, roomID)
	} else {
		err = s.store.SaveTokenSelection(ctx, sel)
	}
	if err != nil {
		return nil, err
	}

	s.log.Debug("宝石选择",
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
		zap.String("gem", string(gem)),
		zap.String("status", string(status)),
		zap.Any("picks", sel.Picks),
	)
	return entities.CopyTokens(sel.Picks), nil
}

// StageCardSelection 选中或取消一张准备购买的卡牌
func (s *GameService) StageCardSelection(ctx context.Context, roomID, playerID string, cardID int, selected bool) (*entities.PendingCardSelection, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	state, err := s.loadTurn(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}

	tokenSel, err := s.store.LoadTokenSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if ownTokens(tokenSel, playerID).Total() > 0 {
		return nil, entities.NewError(entities.KindInvalidTokenAction, "已选择宝石，不能再选卡牌")
	}

	cardSel, err := s.store.LoadCardSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	cardSel = ownCard(cardSel, playerID)

	if !selected {
		if !cardSel.HasCard() || *cardSel.CardID != cardID {
			return nil, entities.NewError(entities.KindInvalidTokenAction, "卡牌 %d 未被选中", cardID)
		}
		if err := s.store.DeleteCardSelection(ctx, roomID); err != nil {
			return nil, err
		}
		return &entities.PendingCardSelection{RoomID: roomID, PlayerID: playerID}, nil
	}

	if _, ok := s.catalog.Card(cardID); !ok {
		return nil, entities.NewError(entities.KindCardNotAvailable, "卡牌 %d 不存在", cardID)
	}
	if _, _, ok := state.Board.FaceUpCard(cardID); !ok {
		return nil, entities.NewError(entities.KindCardNotAvailable, "卡牌 %d 不在桌面上", cardID)
	}
	if cardSel.HasCard() {
		return nil, entities.NewError(entities.KindAnotherCardAlreadySelected, "已选择卡牌 %d", *cardSel.CardID)
	}

	sel := &entities.PendingCardSelection{RoomID: roomID, PlayerID: playerID, CardID: &cardID}
	if err := s.store.SaveCardSelection(ctx, sel); err != nil {
		return nil, err
	}
	return sel, nil
}

// DiscardToken 把一颗宝石退回银行
func (s *GameService) DiscardToken(ctx context.Context, roomID, playerID string, gem entities.Gem) (*entities.GameState, error) {
	if !gem.Valid() {
		return nil, entities.NewError(entities.KindInvalidTokenAction, "未知宝石 %q", gem)
	}

	unlock := s.locks.lock(roomID)
	defer unlock()

	state, err := s.loadTurn(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}

	player := state.Player(playerID)
	if player.Tokens[gem] <= 0 {
		return nil, entities.NewError(entities.KindInvalidTokenAction, "没有可以丢弃的 %s", gem)
	}
	player.Tokens[gem]--
	state.Board.BankTokens[gem]++

	if err := s.store.SaveGame(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// EndTurn 提交当前玩家暂存的动作并切换到下一位玩家
func (s *GameService) EndTurn(ctx context.Context, roomID string) (*entities.GameState, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	state, err := s.loadGame(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.endTurn(ctx, state)
}

// EndTurnAs 与 EndTurn 相同，但要求发起者是当前玩家
func (s *GameService) EndTurnAs(ctx context.Context, roomID, playerID string) (*entities.GameState, error) {
	unlock := s.locks.lock(roomID)
	defer unlock()

	state, err := s.loadTurn(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}
	return s.endTurn(ctx, state)
}

func (s *GameService) endTurn(ctx context.Context, state *entities.GameState) (*entities.GameState, error) {
	roomID := state.RoomID

	tokenSel, err := s.store.LoadTokenSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	cardSel, err := s.store.LoadCardSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}

	current := state.Player(state.CurrentPlayerID)
	if current == nil {
		return nil, entities.NewError(entities.KindNotFound, "当前玩家 %s 不存在", state.CurrentPlayerID)
	}
	ensureTokenMaps(current)
	tokenSel = ownTokens(tokenSel, current.ID)
	cardSel = ownCard(cardSel, current.ID)

	var action *entities.LastAction
	switch {
	case cardSel.HasCard():
		action, err = s.buyCard(state, current, *cardSel.CardID)
	case tokenSel.Total() > 0:
		action, err = s.takeTokens(state, current, tokenSel.Picks)
	default:
		action = &entities.LastAction{Action: entities.ActionPass, PlayerID: current.ID}
	}
	if err != nil {
		return nil, err
	}
	state.LastAction = action

	if !state.IsFinalRound {
		for _, p := range state.Players {
			if p.Score >= s.rules.WinningScore {
				state.IsFinalRound = true
				s.log.Info("🏁 进入最后一轮", zap.String("room_id", roomID), zap.String("player_id", p.ID), zap.Int("score", p.Score))
				break
			}
		}
	}

	next := state.PlayerByTurnOrder((current.TurnOrder + 1) % len(state.Players))
	state.CurrentPlayerID = next.ID

	if state.IsFinalRound && state.CurrentPlayerID == state.StartingPlayerID {
		state.Winner = determineWinner(state.Players)
		state.IsGameOver = true
		if err := s.store.DeleteSession(ctx, roomID); err != nil {
			return nil, fmt.Errorf("结束游戏清理失败: %w", err)
		}
		s.log.Info("🏆 游戏结束", zap.String("room_id", roomID), zap.String("winner", state.Winner.ID))
		return state, nil
	}

	if err := s.store.CommitTurn(ctx, state); err != nil {
		return nil, err
	}

	s.log.Info("回合结束",
		zap.String("room_id", roomID),
		zap.String("player_id", current.ID),
		zap.String("action", string(action.Action)),
		zap.String("next_player", state.CurrentPlayerID),
	)
	return state, nil
}

func (s *GameService) buyCard(state *entities.GameState, player *entities.PlayerState, cardID int) (*entities.LastAction, error) {
	card, ok := s.catalog.Card(cardID)
	if !ok {
		return nil, entities.NewError(entities.KindCardNotAvailable, "卡牌 %d 不存在", cardID)
	}
	levelIdx, slot, ok := state.Board.FaceUpCard(cardID)
	if !ok {
		return nil, entities.NewError(entities.KindCardNotAvailable, "卡牌 %d 不在桌面上", cardID)
	}

	payment, err := rules.CalculatePayment(player, card)
	if err != nil {
		return nil, err
	}

	bank := state.Board.BankTokens
	for gem, n := range payment {
		player.Tokens[gem] -= n
		bank[gem] += n
	}
	player.Bonuses[card.Bonus]++
	player.Score += card.Points
	player.PurchasedCardCount++

	board := &state.Board
	if deck := board.Decks[levelIdx]; len(deck) > 0 {
		board.Cards[levelIdx][slot] = deck[0]
		board.Decks[levelIdx] = deck[1:]
	} else {
		row := board.Cards[levelIdx]
		board.Cards[levelIdx] = append(row[:slot:slot], row[slot+1:]...)
	}

	action := &entities.LastAction{
		Action:   entities.ActionBuyCard,
		PlayerID: player.ID,
		Tokens:   payment,
		CardID:   cardID,
	}

	for i, noble := range board.Nobles {
		if !noble.CoveredBy(player.Bonuses) {
			continue
		}
		player.Score += noble.Points
		player.NobleCount++
		board.Nobles = append(board.Nobles[:i:i], board.Nobles[i+1:]...)
		action.NobleID = noble.ID
		break
	}
	return action, nil
}

func (s *GameService) takeTokens(state *entities.GameState, player *entities.PlayerState, picks map[entities.Gem]int) (*entities.LastAction, error) {
	bank := state.Board.BankTokens
	if err := s.validator.ValidateFinal(picks, bank); err != nil {
		return nil, err
	}
	taken := entities.CopyTokens(picks)
	for gem, n := range taken {
		bank[gem] -= n
		player.Tokens[gem] += n
	}
	return &entities.LastAction{Action: entities.ActionGetGem, PlayerID: player.ID, Tokens: taken}, nil
}

// GetState 只读查询，不加锁
func (s *GameService) GetState(ctx context.Context, roomID string) (*entities.GameState, error) {
	return s.loadGame(ctx, roomID)
}

func (s *GameService) GetPendingSelections(ctx context.Context, roomID string) (*entities.PendingSelections, error) {
	tokens, err := s.store.LoadTokenSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	card, err := s.store.LoadCardSelection(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &entities.PendingSelections{Tokens: tokens, Card: card}, nil
}

func (s *GameService) loadGame(ctx context.Context, roomID string) (*entities.GameState, error) {
	state, err := s.store.LoadGame(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, entities.NewError(entities.KindNotFound, "房间 %s 没有进行中的游戏", roomID)
	}
	return state, nil
}

// loadTurn 读取状态并确认 playerID 是当前玩家
func (s *GameService) loadTurn(ctx context.Context, roomID, playerID string) (*entities.GameState, error) {
	state, err := s.loadGame(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if state.CurrentPlayerID != playerID {
		return nil, entities.NewError(entities.KindNotCurrentTurn, "当前玩家是 %s", state.CurrentPlayerID)
	}
	player := state.Player(playerID)
	if player == nil {
		return nil, entities.NewError(entities.KindNotFound, "玩家 %s 不在游戏中", playerID)
	}
	ensureTokenMaps(player)
	return state, nil
}

// ownTokens 别的玩家留下的暂存记录视为过期
func ownTokens(sel *entities.PendingTokenSelection, playerID string) *entities.PendingTokenSelection {
	if sel == nil || sel.PlayerID != playerID {
		return nil
	}
	return sel
}

func ownCard(sel *entities.PendingCardSelection, playerID string) *entities.PendingCardSelection {
	if sel == nil || sel.PlayerID != playerID {
		return nil
	}
	return sel
}

func ensureTokenMaps(p *entities.PlayerState) {
	if p.Tokens == nil {
		p.Tokens = zeroTokens(entities.AllGems)
	}
	if p.Bonuses == nil {
		p.Bonuses = zeroTokens(entities.OrdinaryGems)
	}
}

func zeroTokens(gems []entities.Gem) map[entities.Gem]int {
	out := make(map[entities.Gem]int, len(gems))
	for _, g := range gems {
		out[g] = 0
	}
	return out
}
