package repository

import (
	"github.com/roomly/roomly-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRoomID lists all users whose room_id points at the given room
func (r *GormUserRepository) ListByRoomID(roomID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("room_id = ?", roomID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Update persists changes to a user. Save writes every column, so a nil
// RoomID clears the back-reference.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ClearRoomByRoomID nulls room_id for the whole roster in one statement.
// Querying by room_id rather than the member rows guarantees cleanup even
// for users whose member row has drifted.
func (r *GormUserRepository) ClearRoomByRoomID(roomID uint64) (int64, error) {
	result := r.db.Model(&models.User{}).
		Where("room_id = ?", roomID).
		Update("room_id", nil)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
