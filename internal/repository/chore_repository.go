package repository

import (
	"github.com/roomly/roomly-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormChoreRepository is a GORM implementation of ChoreRepository
type GormChoreRepository struct {
	db *gorm.DB
}

// NewChoreRepository creates a new ChoreRepository
func NewChoreRepository(db *gorm.DB) ChoreRepository {
	return &GormChoreRepository{db: db}
}

// Create creates a new chore
func (r *GormChoreRepository) Create(chore *models.Chore) error {
	return r.db.Create(chore).Error
}

// FindByID finds a chore by ID with optional preloading
func (r *GormChoreRepository) FindByID(id uint64, preload ...string) (*models.Chore, error) {
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	var chore models.Chore
	if err := query.First(&chore, id).Error; err != nil {
		return nil, err
	}
	return &chore, nil
}

// List retrieves chores with filtering and pagination
func (r *GormChoreRepository) List(filter ChoreFilter) ([]models.Chore, int64, error) {
	query := r.db.Model(&models.Chore{}).Where("room_id = ?", filter.RoomID)

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.AssignedUserID != nil {
		query = query.
			Joins("JOIN chore_assignments ON chore_assignments.chore_id = chores.id").
			Where("chore_assignments.user_id = ? AND chore_assignments.deleted_at IS NULL", *filter.AssignedUserID)
	}
	if filter.DueDateFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueDateFrom)
	}
	if filter.DueDateTo != nil {
		query = query.Where("due_date < ?", *filter.DueDateTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.SortByDueDate {
		query = query.Order("due_date IS NULL, due_date ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var chores []models.Chore
	if err := query.
		Preload("Creator").
		Preload("Assignments").
		Preload("Assignments.User").
		Find(&chores).Error; err != nil {
		return nil, 0, err
	}

	return chores, total, nil
}

// Update updates a chore
func (r *GormChoreRepository) Update(chore *models.Chore) error {
	return r.db.Save(chore).Error
}

// Delete soft deletes a chore
func (r *GormChoreRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Chore{}, id).Error
}

// AssignUsers assigns multiple users to a chore. A conflict with an existing
// row revives it, so re-assigning after an unassign clears the soft delete.
func (r *GormChoreRepository) AssignUsers(choreID uint64, userIDs []uint64) error {
	assignments := make([]models.ChoreAssignment, 0, len(userIDs))
	for _, userID := range userIDs {
		assignments = append(assignments, models.ChoreAssignment{
			ChoreID: choreID,
			UserID:  userID,
		})
	}

	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chore_id"}, {Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"deleted_at": gorm.Expr("NULL")}),
		}).
		Create(&assignments).Error
}

// UnassignUsers removes user assignments from a chore
func (r *GormChoreRepository) UnassignUsers(choreID uint64, userIDs []uint64) error {
	return r.db.Where("chore_id = ? AND user_id IN ?", choreID, userIDs).
		Delete(&models.ChoreAssignment{}).Error
}

// CountUsersByIDs counts how many of the given user IDs belong to the room
func (r *GormChoreRepository) CountUsersByIDs(userIDs []uint64, roomID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ? AND room_id = ?", userIDs, roomID).
		Count(&count).Error
	return count, err
}
