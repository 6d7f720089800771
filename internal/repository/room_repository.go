package repository

import (
	"github.com/roomly/roomly-api/internal/models"
	"gorm.io/gorm"
)

// GormRoomRepository is a GORM implementation of RoomRepository
type GormRoomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &GormRoomRepository{db: db}
}

// Create creates a new room
func (r *GormRoomRepository) Create(room *models.Room) error {
	return r.db.Create(room).Error
}

// FindByID finds a room by ID
func (r *GormRoomRepository) FindByID(id uint64) (*models.Room, error) {
	var room models.Room
	if err := r.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDWithMembers finds a room with members and creator loaded
func (r *GormRoomRepository) FindByIDWithMembers(id uint64) (*models.Room, error) {
	var room models.Room
	if err := r.db.
		Preload("Members").
		Preload("Members.User").
		Preload("Creator").
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByInviteCode finds a room by invite code
func (r *GormRoomRepository) FindByInviteCode(code string) (*models.Room, error) {
	var room models.Room
	if err := r.db.Where("invite_code = ?", code).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Update updates a room
func (r *GormRoomRepository) Update(room *models.Room) error {
	return r.db.Save(room).Error
}

// Delete deletes a room and all related data in a transaction
func (r *GormRoomRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Delete all chores in the room
		if err := tx.Where("room_id = ?", id).Delete(&models.Chore{}).Error; err != nil {
			return err
		}

		// Delete all expenses
		if err := tx.Where("room_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}

		// Delete all member rows
		if err := tx.Where("room_id = ?", id).Delete(&models.RoomMember{}).Error; err != nil {
			return err
		}

		// Delete room
		if err := tx.Delete(&models.Room{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}

// AddMembers inserts member rows in a single batch
func (r *GormRoomRepository) AddMembers(members []models.RoomMember) error {
	if len(members) == 0 {
		return nil
	}
	return r.db.Create(&members).Error
}

// RemoveMember removes a member from a room
func (r *GormRoomRepository) RemoveMember(roomID, userID uint64) error {
	return r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&models.RoomMember{}).Error
}

// FindMember finds a specific room member
func (r *GormRoomRepository) FindMember(roomID, userID uint64) (*models.RoomMember, error) {
	var member models.RoomMember
	if err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// CountMembers counts the members of a room
func (r *GormRoomRepository) CountMembers(roomID uint64) (int64, error) {
	var count int64
	if err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ?", roomID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
