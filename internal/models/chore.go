package models

import (
	"time"

	"gorm.io/gorm"
)

type ChoreStatus string

const (
	ChoreStatusTodo ChoreStatus = "TODO"
	ChoreStatusDone ChoreStatus = "DONE"
)

type Chore struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      ChoreStatus    `gorm:"type:varchar(20);not null;default:'TODO'" json:"status"`
	DueDate     *time.Time     `json:"due_date"`
	CreatorID   uint64         `gorm:"not null" json:"creator_id"`
	RoomID      uint64         `gorm:"not null" json:"room_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Creator     User              `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Room        Room              `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Assignments []ChoreAssignment `gorm:"foreignKey:ChoreID" json:"assignments,omitempty"`
}
