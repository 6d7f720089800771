package models

import (
	"time"

	"gorm.io/gorm"
)

type ChoreAssignment struct {
	ChoreID   uint64         `gorm:"primarykey" json:"chore_id"`
	UserID    uint64         `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Chore Chore `gorm:"foreignKey:ChoreID" json:"chore,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
