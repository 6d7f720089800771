package models

import (
	"time"

	"gorm.io/gorm"
)

type Expense struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Description string         `gorm:"type:varchar(255);not null" json:"description"`
	AmountCents int64          `gorm:"not null" json:"amount_cents"`
	PaidBy      uint64         `gorm:"not null" json:"paid_by"`
	RoomID      uint64         `gorm:"not null;index" json:"room_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Payer User `gorm:"foreignKey:PaidBy" json:"payer,omitempty"`
	Room  Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
