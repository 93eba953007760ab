package entities

type RoomStatus string

const (
	RoomStatusWaiting RoomStatus = "waiting" // 等待玩家加入房间
	RoomStatusPlaying RoomStatus = "playing"
	RoomStatusEnd     RoomStatus = "end"
)

type Participant struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Hosted   bool   `json:"hosted"`
	Ready    bool   `json:"ready"`
}

// Room 大厅侧的房间信息，游戏只读
type Room struct {
	RoomID       string        `json:"roomId"`
	Name         string        `json:"name"`
	Status       RoomStatus    `json:"status"`
	Participants []Participant `json:"participants"`
}

func (r *Room) HostName() string {
	for _, p := range r.Participants {
		if p.Hosted {
			return p.Nickname
		}
	}
	return ""
}
