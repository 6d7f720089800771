package models

import (
	"time"
)

type Room struct {
	ID         uint64    `gorm:"primarykey" json:"id"`
	CreatedBy  uint64    `gorm:"not null" json:"created_by"`
	InviteCode string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Members []RoomMember `gorm:"foreignKey:RoomID" json:"members,omitempty"`
	Creator User         `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
