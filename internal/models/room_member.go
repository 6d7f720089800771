package models

import "time"

// RoomMember is the authoritative member set of a room. A row exists here
// iff the user's RoomID points back at the same room.
type RoomMember struct {
	RoomID   uint64    `gorm:"primarykey" json:"room_id"`
	UserID   uint64    `gorm:"primarykey" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`

	// Relations
	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
