package dto

import "go-splendor/entities"

type RoomInfo struct {
	RoomID       string                 `json:"roomID"`
	Name         string                 `json:"name"`
	Status       entities.RoomStatus    `json:"status"`
	PlayerCount  int                    `json:"playerCount"`
	Host         string                 `json:"host"`
	Participants []entities.Participant `json:"participants"`
	InGame       bool                   `json:"inGame"`
}

type GetRoomList struct {
	Rooms []RoomInfo `json:"rooms"`
}

func NewRoomInfo(room *entities.Room) RoomInfo {
	participants := room.Participants
	if participants == nil {
		participants = []entities.Participant{}
	}
	return RoomInfo{
		RoomID:       room.RoomID,
		Name:         room.Name,
		Status:       room.Status,
		PlayerCount:  len(room.Participants),
		Host:         room.HostName(),
		Participants: participants,
	}
}
