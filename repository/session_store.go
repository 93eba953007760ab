package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"go-splendor/entities"
)

// SessionStore 按房间保存对局状态和两条暂存选择，不存在时 Load 返回 nil, nil
type SessionStore interface {
	LoadGame(ctx context.Context, roomID string) (*entities.GameState, error)
	SaveGame(ctx context.Context, state *entities.GameState) error
	DeleteGame(ctx context.Context, roomID string) error

	LoadTokenSelection(ctx context.Context, roomID string) (*entities.PendingTokenSelection, error)
	SaveTokenSelection(ctx context.Context, sel *entities.PendingTokenSelection) error
	DeleteTokenSelection(ctx context.Context, roomID string) error

	LoadCardSelection(ctx context.Context, roomID string) (*entities.PendingCardSelection, error)
	SaveCardSelection(ctx context.Context, sel *entities.PendingCardSelection) error
	DeleteCardSelection(ctx context.Context, roomID string) error

	// CommitTurn 在一个事务里写入对局并清掉两条暂存选择
	CommitTurn(ctx context.Context, state *entities.GameState) error
	// DeleteSession 一次删除房间的对局和暂存选择
	DeleteSession(ctx context.Context, roomID string) error
}

func gameKey(roomID string) string          { return fmt.Sprintf("room:%s:game", roomID) }
func tokenSelectionKey(roomID string) string { return fmt.Sprintf("room:%s:select_token", roomID) }
func cardSelectionKey(roomID string) string  { return fmt.Sprintf("room:%s:select_card", roomID) }

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) LoadGame(ctx context.Context, roomID string) (*entities.GameState, error) {
	var state entities.GameState
	found, err := s.load(ctx, gameKey(roomID), &state)
	if err != nil || !found {
		return nil, err
	}
	return &state, nil
}

func (s *RedisSessionStore) SaveGame(ctx context.Context, state *entities.GameState) error {
	return s.save(ctx, gameKey(state.RoomID), state)
}

func (s *RedisSessionStore) DeleteGame(ctx context.Context, roomID string) error {
	return s.delete(ctx, gameKey(roomID))
}

func (s *RedisSessionStore) LoadTokenSelection(ctx context.Context, roomID string) (*entities.PendingTokenSelection, error) {
	var sel entities.PendingTokenSelection
	found, err := s.load(ctx, tokenSelectionKey(roomID), &sel)
	if err != nil || !found {
		return nil, err
	}
	if sel.Picks == nil {
		sel.Picks = map[entities.Gem]int{}
	}
	return &sel, nil
}

func (s *RedisSessionStore) SaveTokenSelection(ctx context.Context, sel *entities.PendingTokenSelection) error {
	return s.save(ctx, tokenSelectionKey(sel.RoomID), sel)
}

func (s *RedisSessionStore) DeleteTokenSelection(ctx context.Context, roomID string) error {
	return s.delete(ctx, tokenSelectionKey(roomID))
}

func (s *RedisSessionStore) LoadCardSelection(ctx context.Context, roomID string) (*entities.PendingCardSelection, error) {
	var sel entities.PendingCardSelection
	found, err := s.load(ctx, cardSelectionKey(roomID), &sel)
	if err != nil || !found {
		return nil, err
	}
	return &sel, nil
}

func (s *RedisSessionStore) SaveCardSelection(ctx context.Context, sel *entities.PendingCardSelection) error {
	return s.save(ctx, cardSelectionKey(sel.RoomID), sel)
}

func (s *RedisSessionStore) DeleteCardSelection(ctx context.Context, roomID string) error {
	return s.delete(ctx, cardSelectionKey(roomID))
}

func (s *RedisSessionStore) CommitTurn(ctx context.Context, state *entities.GameState) error {
	key := gameKey(state.RoomID)
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("%s JSON 编码失败: %w", key, err)
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, 0)
		pipe.Del(ctx, tokenSelectionKey(state.RoomID), cardSelectionKey(state.RoomID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("提交 %s 失败: %w", key, err)
	}
	return nil
}

func (s *RedisSessionStore) DeleteSession(ctx context.Context, roomID string) error {
	if err := s.rdb.Del(ctx, gameKey(roomID), tokenSelectionKey(roomID), cardSelectionKey(roomID)).Err(); err != nil {
		return fmt.Errorf("删除房间 %s 会话失败: %w", roomID, err)
	}
	return nil
}

func (s *RedisSessionStore) load(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("读取 %s 失败: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("解析 %s 失败: %w", key, err)
	}
	return true, nil
}

func (s *RedisSessionStore) save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s JSON 编码失败: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", key, err)
	}
	return nil
}

func (s *RedisSessionStore) delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("删除 %s 失败: %w", key, err)
	}
	return nil
}
