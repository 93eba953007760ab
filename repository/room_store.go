package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"go-splendor/entities"
)

// RoomStore 只读访问大厅服务维护的房间表
type RoomStore struct {
	db *sql.DB
}

// OpenMySQL 打开大厅库连接并 Ping
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开 MySQL 失败: %w", err)
	}
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("MySQL 连接失败: %w", err)
	}
	return db, nil
}

func NewRoomStore(db *sql.DB) *RoomStore {
	return &RoomStore{db: db}
}

// Migrate 建表，生产环境表结构由大厅服务维护，这里主要给测试和本地环境用
func (s *RoomStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
			room_id    VARCHAR(64) PRIMARY KEY,
			name       VARCHAR(128) NOT NULL,
			status     VARCHAR(16) NOT NULL DEFAULT 'waiting',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS room_players (
			room_id   VARCHAR(64) NOT NULL,
			player_id VARCHAR(64) NOT NULL,
			nickname  VARCHAR(64) NOT NULL,
			hosted    BOOLEAN NOT NULL DEFAULT FALSE,
			ready     BOOLEAN NOT NULL DEFAULT FALSE,
			seat      INT NOT NULL DEFAULT 0,
			PRIMARY KEY (room_id, player_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("建表失败: %w", err)
		}
	}
	return nil
}

// FindRoom 房间不存在时返回 nil, nil
func (s *RoomStore) FindRoom(ctx context.Context, roomID string) (*entities.Room, error) {
	row := s.db.QueryRowContext(ctx, "SELECT room_id, name, status FROM rooms WHERE room_id = ?", roomID)
	var room entities.Room
	var status string
	if err := row.Scan(&room.RoomID, &room.Name, &status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询房间 %s 失败: %w", roomID, err)
	}
	room.Status = entities.RoomStatus(status)

	participants, err := s.participants(ctx, roomID)
	if err != nil {
		return nil, err
	}
	room.Participants = participants
	return &room, nil
}

func (s *RoomStore) ListRooms(ctx context.Context) ([]entities.Room, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT room_id, name, status FROM rooms ORDER BY created_at, room_id")
	if err != nil {
		return nil, fmt.Errorf("查询房间列表失败: %w", err)
	}
	defer rows.Close()

	var rooms []entities.Room
	for rows.Next() {
		var room entities.Room
		var status string
		if err := rows.Scan(&room.RoomID, &room.Name, &status); err != nil {
			return nil, fmt.Errorf("读取房间失败: %w", err)
		}
		room.Status = entities.RoomStatus(status)
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历房间失败: %w", err)
	}

	for i := range rooms {
		participants, err := s.participants(ctx, rooms[i].RoomID)
		if err != nil {
			return nil, err
		}
		rooms[i].Participants = participants
	}
	return rooms, nil
}

func (s *RoomStore) participants(ctx context.Context, roomID string) ([]entities.Participant, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player_id, nickname, hosted, ready FROM room_players WHERE room_id = ? ORDER BY seat, player_id",
		roomID,
	)
	if err != nil {
		return nil, fmt.Errorf("查询房间 %s 玩家失败: %w", roomID, err)
	}
	defer rows.Close()

	var out []entities.Participant
	for rows.Next() {
		var p entities.Participant
		if err := rows.Scan(&p.PlayerID, &p.Nickname, &p.Hosted, &p.Ready); err != nil {
			return nil, fmt.Errorf("读取玩家失败: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
