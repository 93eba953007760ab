package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"go-splendor/dto"
	"go-splendor/entities"
	"go-splendor/repository"
)

// RoomService 大厅房间的只读查询，附带是否有进行中的对局
type RoomService struct {
	rooms RoomProvider
	store repository.SessionStore
	log   *zap.Logger
}

func NewRoomService(rooms RoomProvider, store repository.SessionStore, log *zap.Logger) *RoomService {
	return &RoomService{rooms: rooms, store: store, log: log}
}

func (s *RoomService) GetRoomList(ctx context.Context) ([]dto.RoomInfo, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取房间列表失败: %w", err)
	}

	list := make([]dto.RoomInfo, 0, len(rooms))
	for i := range rooms {
		info := dto.NewRoomInfo(&rooms[i])
		info.InGame = s.inGame(ctx, rooms[i].RoomID)
		list = append(list, info)
	}
	return list, nil
}

func (s *RoomService) GetRoomInfo(ctx context.Context, roomID string) (*dto.RoomInfo, error) {
	room, err := s.rooms.FindRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if room == nil {
		return nil, entities.NewError(entities.KindNotFound, "房间 %s 不存在", roomID)
	}
	info := dto.NewRoomInfo(room)
	info.InGame = s.inGame(ctx, roomID)
	return &info, nil
}

// IsMember 玩家是否在房间成员中
func (s *RoomService) IsMember(ctx context.Context, roomID, playerID string) (bool, error) {
	room, err := s.rooms.FindRoom(ctx, roomID)
	if err != nil {
		return false, fmt.Errorf("获取房间信息失败: %w", err)
	}
	if room == nil {
		return false, nil
	}
	for _, p := range room.Participants {
		if p.PlayerID == playerID {
			return true, nil
		}
	}
	return false, nil
}

func (s *RoomService) inGame(ctx context.Context, roomID string) bool {
	state, err := s.store.LoadGame(ctx, roomID)
	if err != nil {
		s.log.Warn("❌ 读取对局状态失败", zap.String("room_id", roomID), zap.Error(err))
		return false
	}
	return state != nil
}
